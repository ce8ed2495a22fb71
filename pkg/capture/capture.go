// Package capture produces decoded ArpPacket values from libpcap sources,
// either a live interface or a capture file.
package capture

import (
	"net"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"github.com/hervehildenbrand/arp-radar/pkg/detector"
	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

// Decode extracts the ARP payload from a captured frame. The boolean is
// false for frames the pipeline should never see: no ARP layer, a zero or
// broadcast sender hardware address, or an unspecified sender IP (RFC 5227
// probes claim no binding). Transport validation ends here; the detection
// core accepts addresses as opaque strings.
func Decode(packet gopacket.Packet) (models.ArpPacket, bool) {
	layer := packet.Layer(layers.LayerTypeARP)
	if layer == nil {
		return models.ArpPacket{}, false
	}
	arp, ok := layer.(*layers.ARP)
	if !ok {
		return models.ArpPacket{}, false
	}

	senderMAC := net.HardwareAddr(arp.SourceHwAddress).String()
	senderIP := net.IP(arp.SourceProtAddress).String()
	if senderIP == detector.UnspecifiedIP || senderIP == "<nil>" {
		return models.ArpPacket{}, false
	}
	if senderMAC == "" || detector.IsZeroMAC(senderMAC) || detector.IsBroadcastMAC(senderMAC) {
		return models.ArpPacket{}, false
	}

	timestamp := packet.Metadata().Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	return models.ArpPacket{
		Timestamp: timestamp,
		Opcode:    models.OpcodeFromWire(arp.Operation),
		SenderMAC: senderMAC,
		SenderIP:  senderIP,
		TargetMAC: net.HardwareAddr(arp.DstHwAddress).String(),
		TargetIP:  net.IP(arp.DstProtAddress).String(),
	}, true
}
