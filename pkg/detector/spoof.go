package detector

import (
	"fmt"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

// SpoofDetector checks sender claims against the operator's static binding
// table, the trust anchor for spoof detection.
type SpoofDetector struct {
	static  map[string]string // ip -> expected MAC, lowercase colon-hex
	trusted map[string]bool   // sender MACs exempt from flagging
}

// NewSpoofDetector creates a spoof detector. staticBindings maps protected
// IPs to their expected MAC; trustedMACs lists hardware addresses never
// flagged (e.g., a router's failover pair). Both are normalized here and
// immutable afterwards.
func NewSpoofDetector(staticBindings map[string]string, trustedMACs []string) *SpoofDetector {
	static := make(map[string]string, len(staticBindings))
	for ip, mac := range staticBindings {
		static[ip] = NormalizeMAC(mac)
	}
	trusted := make(map[string]bool, len(trustedMACs))
	for _, mac := range trustedMACs {
		trusted[NormalizeMAC(mac)] = true
	}
	return &SpoofDetector{static: static, trusted: trusted}
}

// Process checks one packet against the static table. It returns a critical
// alert when the sender IP has a static binding and the claimed MAC differs;
// IPs without a static binding are never flagged.
func (d *SpoofDetector) Process(pkt models.ArpPacket) *models.Alert {
	expected, ok := d.static[pkt.SenderIP]
	if !ok {
		return nil
	}
	claimed := NormalizeMAC(pkt.SenderMAC)
	if claimed == expected {
		return nil
	}
	if d.trusted[claimed] {
		return nil
	}

	alert := models.NewAlert(models.AttackArpSpoof, fmt.Sprintf(
		"ARP spoofing detected: %s claimed by %s, statically bound to %s",
		pkt.SenderIP, claimed, expected))
	p := pkt
	alert.Packet = &p
	return alert
}
