package detector

import (
	"fmt"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

// GratuitousDetector flags self-announcements: ARP replies where sender and
// target protocol address coincide. Hosts send these legitimately after an
// address change, but the same shape primes cache poisoning, so it rates
// Medium rather than Info.
type GratuitousDetector struct{}

// NewGratuitousDetector creates a gratuitous ARP detector.
func NewGratuitousDetector() *GratuitousDetector {
	return &GratuitousDetector{}
}

// Process checks one packet. Only replies qualify; a request with matching
// addresses is an ordinary announcement probe.
func (d *GratuitousDetector) Process(pkt models.ArpPacket) *models.Alert {
	if pkt.Opcode != models.OpcodeReply {
		return nil
	}
	if pkt.SenderIP != pkt.TargetIP {
		return nil
	}

	alert := models.NewAlert(models.AttackGratuitousArp, fmt.Sprintf(
		"gratuitous ARP: %s announced %s", pkt.SenderMAC, pkt.SenderIP))
	p := pkt
	alert.Packet = &p
	return alert
}
