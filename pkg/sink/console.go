// Package sink renders alerts for consumption outside the pipeline.
package sink

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
	"github.com/hervehildenbrand/arp-radar/pkg/oui"
)

const colorReset = "\033[0m"

// Console renders alerts as human-readable lines.
type Console struct {
	out     io.Writer
	color   bool
	vendors oui.VendorResolver
}

// NewConsole creates a console sink writing to out. With color enabled,
// lines are tinted by severity tier. vendors may be nil.
func NewConsole(out io.Writer, color bool, vendors oui.VendorResolver) *Console {
	if vendors == nil {
		vendors = oui.NewNullResolver()
	}
	return &Console{out: out, color: color, vendors: vendors}
}

// Write renders one alert:
//
//	2024-01-15T12:00:00Z [CRITICAL] arp_spoof: ARP spoofing detected: ...
//
// The severity column is padded to a fixed width so messages align.
func (c *Console) Write(alert *models.Alert) {
	severity := strings.ToUpper(alert.Severity.String())
	line := fmt.Sprintf("%s [%-8s] %s: %s",
		alert.Timestamp.Format(time.RFC3339), severity, alert.Category, alert.Message)
	if c.color {
		line = alert.Severity.Color() + line + colorReset
	}
	fmt.Fprintln(c.out, line)
}

// WritePacket renders one observed packet, for verbose sessions. The
// sender MAC is annotated with its hardware vendor when known.
func (c *Console) WritePacket(pkt models.ArpPacket) {
	vendor := c.vendors.Resolve(pkt.SenderMAC)
	if vendor == "" && oui.IsLocallyAdministered(pkt.SenderMAC) {
		vendor = "locally administered"
	}
	annotation := ""
	if vendor != "" {
		annotation = " (" + vendor + ")"
	}
	fmt.Fprintf(c.out, "%s %-12s %s%s %s -> %s on %s\n",
		pkt.Timestamp.Format(time.RFC3339), pkt.Opcode,
		pkt.SenderMAC, annotation, pkt.SenderIP, pkt.TargetIP, pkt.Interface)
}
