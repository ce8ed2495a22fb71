package feed

import (
	"testing"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

func TestParseMessage_Packet(t *testing.T) {
	msg := []byte(`{
		"type": "arp_packet",
		"data": {
			"timestamp": 1705320000.123,
			"opcode": 2,
			"sender_mac": "AA:BB:CC:DD:EE:FF",
			"sender_ip": "192.168.1.1",
			"target_mac": "ff:ff:ff:ff:ff:ff",
			"target_ip": "192.168.1.1",
			"interface": "eth0"
		}
	}`)

	pkt, err := ParseMessage(msg)
	if err != nil {
		t.Fatalf("ParseMessage failed: %v", err)
	}
	if pkt == nil {
		t.Fatal("Expected packet, got nil")
	}

	if pkt.Opcode != models.OpcodeReply {
		t.Errorf("Expected opcode reply, got %s", pkt.Opcode)
	}
	if pkt.SenderMAC != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("Expected normalized sender MAC, got %s", pkt.SenderMAC)
	}
	if pkt.SenderIP != "192.168.1.1" {
		t.Errorf("Expected sender IP 192.168.1.1, got %s", pkt.SenderIP)
	}
	if pkt.TargetIP != "192.168.1.1" {
		t.Errorf("Expected target IP 192.168.1.1, got %s", pkt.TargetIP)
	}
	if pkt.Interface != "eth0" {
		t.Errorf("Expected interface eth0, got %s", pkt.Interface)
	}
	if pkt.Timestamp.Unix() != 1705320000 {
		t.Errorf("Expected timestamp 1705320000, got %d", pkt.Timestamp.Unix())
	}
}

func TestParseMessage_StringOpcode(t *testing.T) {
	msg := []byte(`{
		"type": "arp_packet",
		"data": {
			"timestamp": 1705320000.0,
			"opcode": "request",
			"sender_mac": "aa:bb:cc:dd:ee:01",
			"sender_ip": "10.0.0.5",
			"target_mac": "00:00:00:00:00:00",
			"target_ip": "10.0.0.1",
			"interface": "eth1"
		}
	}`)

	pkt, err := ParseMessage(msg)
	if err != nil {
		t.Fatalf("ParseMessage failed: %v", err)
	}
	if pkt == nil {
		t.Fatal("Expected packet, got nil")
	}
	if pkt.Opcode != models.OpcodeRequest {
		t.Errorf("Expected opcode request, got %s", pkt.Opcode)
	}
}

func TestParseMessage_NonPacketMessage(t *testing.T) {
	msg := []byte(`{"type": "probe_status", "data": {"message": "capturing"}}`)

	pkt, err := ParseMessage(msg)
	if err != nil {
		t.Fatalf("ParseMessage failed: %v", err)
	}
	if pkt != nil {
		t.Error("Expected nil for non-packet message type")
	}
}

func TestParseMessage_MissingSender(t *testing.T) {
	msg := []byte(`{
		"type": "arp_packet",
		"data": {"timestamp": 1705320000.0, "opcode": 1, "target_ip": "10.0.0.1"}
	}`)

	if _, err := ParseMessage(msg); err == nil {
		t.Error("Expected error for packet without sender fields")
	}
}

func TestParseMessage_AddressProbe(t *testing.T) {
	// RFC 5227 probe: sender IP 0.0.0.0 claims no binding.
	msg := []byte(`{
		"type": "arp_packet",
		"data": {
			"timestamp": 1705320000.0,
			"opcode": 1,
			"sender_mac": "aa:bb:cc:dd:ee:01",
			"sender_ip": "0.0.0.0",
			"target_ip": "10.0.0.9"
		}
	}`)

	pkt, err := ParseMessage(msg)
	if err != nil {
		t.Fatalf("ParseMessage failed: %v", err)
	}
	if pkt != nil {
		t.Error("Expected address probe to be skipped")
	}
}

func TestParseOpcode(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected models.Opcode
	}{
		{"number", "2", models.OpcodeReply},
		{"quoted number", `"2"`, models.OpcodeReply},
		{"symbolic", `"reply"`, models.OpcodeReply},
		{"symbolic uppercase", `"REQUEST"`, models.OpcodeRequest},
		{"rarp", `"rarp_reply"`, models.OpcodeRARPReply},
		{"out of range", "9", models.OpcodeUnknown},
		{"unknown word", `"bogus"`, models.OpcodeUnknown},
		{"empty", "", models.OpcodeUnknown},
		{"null", "null", models.OpcodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := parseOpcode([]byte(tt.input))
			if result != tt.expected {
				t.Errorf("parseOpcode(%s): expected %s, got %s", tt.input, tt.expected, result)
			}
		})
	}
}
