package detector

import (
	"fmt"
	"testing"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

// windowOf builds a packet window with n distinct sender MACs.
func windowOf(n int) []models.ArpPacket {
	window := make([]models.ArpPacket, 0, n)
	for i := 0; i < n; i++ {
		window = append(window, models.ArpPacket{
			Opcode:    models.OpcodeRequest,
			SenderMAC: fmt.Sprintf("aa:bb:cc:dd:ee:%02x", i),
			SenderIP:  fmt.Sprintf("10.0.0.%d", i+1),
			TargetIP:  "10.0.0.254",
		})
	}
	return window
}

func TestFloodDetector_Boundary(t *testing.T) {
	d := NewFloodDetector(10)

	if alert := d.Process(windowOf(10)); alert != nil {
		t.Errorf("Expected no alert at exactly the threshold, got %s", alert.Message)
	}

	alert := d.Process(windowOf(11))
	if alert == nil {
		t.Fatal("Expected flood alert above the threshold, got none")
	}
	if alert.Category != models.AttackMacFlood {
		t.Errorf("Expected category %s, got %s", models.AttackMacFlood, alert.Category)
	}
	if alert.Severity != models.SeverityHigh {
		t.Errorf("Expected high severity, got %s", alert.Severity)
	}
}

func TestFloodDetector_DuplicatesDoNotCount(t *testing.T) {
	d := NewFloodDetector(10)

	// 60 packets but only 3 distinct senders.
	window := make([]models.ArpPacket, 0, 60)
	for i := 0; i < 60; i++ {
		window = append(window, models.ArpPacket{
			SenderMAC: fmt.Sprintf("aa:bb:cc:dd:ee:%02x", i%3),
			SenderIP:  "10.0.0.1",
		})
	}

	if alert := d.Process(window); alert != nil {
		t.Errorf("Expected no alert for repeated senders, got %s", alert.Message)
	}
}

func TestFloodDetector_DefaultThreshold(t *testing.T) {
	d := NewFloodDetector(0)

	if alert := d.Process(windowOf(DefaultFloodThreshold)); alert != nil {
		t.Errorf("Expected no alert at the default threshold, got %s", alert.Message)
	}
	if alert := d.Process(windowOf(DefaultFloodThreshold + 1)); alert == nil {
		t.Error("Expected flood alert above the default threshold")
	}
}

func TestFloodDetector_EmptyWindow(t *testing.T) {
	d := NewFloodDetector(10)

	if alert := d.Process(nil); alert != nil {
		t.Errorf("Expected no alert for an empty window, got %s", alert.Message)
	}
}
