package feed

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hervehildenbrand/arp-radar/pkg/detector"
	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

// ProbeMessage is the top-level message from a probe stream.
type ProbeMessage struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// ProbePacketData is the observation payload of an arp_packet message.
type ProbePacketData struct {
	Timestamp float64         `json:"timestamp"`
	Opcode    json.RawMessage `json:"opcode"` // Can be string or number
	SenderMAC string          `json:"sender_mac"`
	SenderIP  string          `json:"sender_ip"`
	TargetMAC string          `json:"target_mac"`
	TargetIP  string          `json:"target_ip"`
	Interface string          `json:"interface"`
}

// ParseMessage parses a probe WebSocket message into an ArpPacket.
// Returns nil for messages that are not packet observations (e.g., status,
// probe_error) and for RFC 5227 address probes, which claim no binding.
func ParseMessage(data []byte) (*models.ArpPacket, error) {
	var msg ProbeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("unmarshal message: %w", err)
	}

	// Only process arp_packet type
	if msg.Type != "arp_packet" {
		return nil, nil
	}

	var packetData ProbePacketData
	if err := json.Unmarshal(msg.Data, &packetData); err != nil {
		return nil, fmt.Errorf("unmarshal packet data: %w", err)
	}

	// Malformed observations stop here; the core never validates transport.
	if packetData.SenderMAC == "" || packetData.SenderIP == "" {
		return nil, fmt.Errorf("packet missing sender fields")
	}
	if packetData.SenderIP == detector.UnspecifiedIP {
		return nil, nil
	}

	// Convert timestamp (float seconds); probes without clocks send zero.
	timestamp := time.Unix(int64(packetData.Timestamp), int64((packetData.Timestamp-float64(int64(packetData.Timestamp)))*1e9))
	if packetData.Timestamp == 0 {
		timestamp = time.Now()
	}

	return &models.ArpPacket{
		Timestamp: timestamp,
		Opcode:    parseOpcode(packetData.Opcode),
		SenderMAC: detector.NormalizeMAC(packetData.SenderMAC),
		SenderIP:  strings.TrimSpace(packetData.SenderIP),
		TargetMAC: detector.NormalizeMAC(packetData.TargetMAC),
		TargetIP:  strings.TrimSpace(packetData.TargetIP),
		Interface: packetData.Interface,
	}, nil
}

// parseOpcode parses an opcode that can be either a number or a string
// (numeric or symbolic).
func parseOpcode(data json.RawMessage) models.Opcode {
	if len(data) == 0 {
		return models.OpcodeUnknown
	}

	// Try as number first
	var num uint16
	if err := json.Unmarshal(data, &num); err == nil {
		return models.OpcodeFromWire(num)
	}

	// Try as string
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		switch strings.ToLower(strings.TrimSpace(str)) {
		case "1", "request":
			return models.OpcodeRequest
		case "2", "reply":
			return models.OpcodeReply
		case "3", "rarp_request":
			return models.OpcodeRARPRequest
		case "4", "rarp_reply":
			return models.OpcodeRARPReply
		}
	}

	return models.OpcodeUnknown
}
