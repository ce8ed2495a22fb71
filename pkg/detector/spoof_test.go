package detector

import (
	"testing"
	"time"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

func TestSpoofDetector_StaticViolation(t *testing.T) {
	d := NewSpoofDetector(map[string]string{"192.168.1.1": "aa:bb:cc:dd:ee:ff"}, nil)

	pkt := models.ArpPacket{
		Timestamp: time.Now(),
		Opcode:    models.OpcodeReply,
		SenderMAC: "de:ad:be:ef:ca:fe",
		SenderIP:  "192.168.1.1",
		TargetMAC: "ff:ff:ff:ff:ff:ff",
		TargetIP:  "192.168.1.50",
		Interface: "eth0",
	}

	alert := d.Process(pkt)
	if alert == nil {
		t.Fatal("Expected spoof alert, got none")
	}
	if alert.Category != models.AttackArpSpoof {
		t.Errorf("Expected category %s, got %s", models.AttackArpSpoof, alert.Category)
	}
	if alert.Severity != models.SeverityCritical {
		t.Errorf("Expected critical severity, got %s", alert.Severity)
	}
	if alert.Packet == nil || alert.Packet.SenderMAC != "de:ad:be:ef:ca:fe" {
		t.Error("Expected the triggering packet as evidence")
	}
}

func TestSpoofDetector_NoStaticEntry(t *testing.T) {
	d := NewSpoofDetector(map[string]string{"192.168.1.1": "aa:bb:cc:dd:ee:ff"}, nil)

	pkt := models.ArpPacket{
		Opcode:    models.OpcodeReply,
		SenderMAC: "de:ad:be:ef:ca:fe",
		SenderIP:  "192.168.1.99",
		TargetIP:  "192.168.1.50",
	}

	if alert := d.Process(pkt); alert != nil {
		t.Errorf("Expected no alert for an IP without a static binding, got %s", alert.Message)
	}
}

func TestSpoofDetector_MatchingBinding(t *testing.T) {
	d := NewSpoofDetector(map[string]string{"192.168.1.1": "aa:bb:cc:dd:ee:ff"}, nil)

	pkt := models.ArpPacket{
		Opcode:    models.OpcodeReply,
		SenderMAC: "aa:bb:cc:dd:ee:ff",
		SenderIP:  "192.168.1.1",
	}

	if alert := d.Process(pkt); alert != nil {
		t.Errorf("Expected no alert for a matching binding, got %s", alert.Message)
	}
}

func TestSpoofDetector_TrustedMAC(t *testing.T) {
	d := NewSpoofDetector(
		map[string]string{"192.168.1.1": "aa:bb:cc:dd:ee:ff"},
		[]string{"DE:AD:BE:EF:CA:FE"}, // normalized on construction
	)

	pkt := models.ArpPacket{
		Opcode:    models.OpcodeReply,
		SenderMAC: "de:ad:be:ef:ca:fe",
		SenderIP:  "192.168.1.1",
	}

	if alert := d.Process(pkt); alert != nil {
		t.Errorf("Expected no alert for a trusted MAC, got %s", alert.Message)
	}
}

func TestSpoofDetector_NormalizesStaticTable(t *testing.T) {
	d := NewSpoofDetector(map[string]string{"10.0.0.1": "AA-BB-CC-DD-EE-FF"}, nil)

	pkt := models.ArpPacket{
		Opcode:    models.OpcodeRequest,
		SenderMAC: "aa:bb:cc:dd:ee:ff",
		SenderIP:  "10.0.0.1",
	}

	if alert := d.Process(pkt); alert != nil {
		t.Errorf("Expected no alert when only the notation differs, got %s", alert.Message)
	}
}

func TestNormalizeMAC(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"AA:BB:CC:DD:EE:FF", "aa:bb:cc:dd:ee:ff"},
		{"aa-bb-cc-dd-ee-ff", "aa:bb:cc:dd:ee:ff"},
		{"aabb.ccdd.eeff", "aa:bb:cc:dd:ee:ff"},
		{" aa:bb:cc:dd:ee:ff ", "aa:bb:cc:dd:ee:ff"},
		{"aa:bb:cc:dd:ee:ff", "aa:bb:cc:dd:ee:ff"},
		{"garbage", "garbage"},
	}

	for _, tt := range tests {
		if got := NormalizeMAC(tt.in); got != tt.expected {
			t.Errorf("NormalizeMAC(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}

func TestWellKnownMACs(t *testing.T) {
	if !IsBroadcastMAC("FF:FF:FF:FF:FF:FF") {
		t.Error("IsBroadcastMAC should accept uppercase notation")
	}
	if !IsZeroMAC("00-00-00-00-00-00") {
		t.Error("IsZeroMAC should accept dash notation")
	}
	if IsBroadcastMAC("aa:bb:cc:dd:ee:ff") || IsZeroMAC("aa:bb:cc:dd:ee:ff") {
		t.Error("Unicast MAC misclassified as well-known address")
	}
}
