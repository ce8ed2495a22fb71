package detector

import (
	"fmt"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

// DefaultFloodThreshold is the distinct-sender-MAC count above which the
// recent-packet window is reported as a flood.
const DefaultFloodThreshold = 10

// FloodDetector watches for MAC flooding: many distinct sender hardware
// addresses inside the recent-packet window, the signature of a switch
// table exhaustion attack.
type FloodDetector struct {
	threshold int
}

// NewFloodDetector creates a flood detector. A threshold of zero or less
// selects DefaultFloodThreshold.
func NewFloodDetector(threshold int) *FloodDetector {
	if threshold <= 0 {
		threshold = DefaultFloodThreshold
	}
	return &FloodDetector{threshold: threshold}
}

// Process counts the distinct sender MACs across the window and fires when
// the count exceeds the threshold. The count is recomputed from scratch on
// every call.
func (d *FloodDetector) Process(window []models.ArpPacket) *models.Alert {
	senders := make(map[string]bool)
	for _, pkt := range window {
		senders[NormalizeMAC(pkt.SenderMAC)] = true
	}
	if len(senders) <= d.threshold {
		return nil
	}

	return models.NewAlert(models.AttackMacFlood, fmt.Sprintf(
		"possible MAC flooding: %d distinct sender MACs in the last %d packets (threshold %d)",
		len(senders), len(window), d.threshold))
}
