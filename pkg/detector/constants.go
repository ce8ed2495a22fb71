// Package detector provides ARP anomaly detection logic.
package detector

import "strings"

// BroadcastMAC is the Ethernet broadcast address. An ARP packet claiming it
// as sender hardware address is malformed and dropped at the capture boundary.
const BroadcastMAC = "ff:ff:ff:ff:ff:ff"

// ZeroMAC is the unspecified hardware address, seen as the target of ARP
// requests and RFC 5227 address probes.
const ZeroMAC = "00:00:00:00:00:00"

// UnspecifiedIP is the sender protocol address used by RFC 5227 address probes.
const UnspecifiedIP = "0.0.0.0"

// NormalizeMAC canonicalizes a MAC address to lowercase colon-hex form.
// Dash and dot separators (Cisco style) are converted; the result is the
// form all cache keys, static bindings and trusted sets use.
func NormalizeMAC(mac string) string {
	mac = strings.ToLower(strings.TrimSpace(mac))
	mac = strings.ReplaceAll(mac, "-", ":")
	if strings.Contains(mac, ".") {
		// aabb.ccdd.eeff -> aa:bb:cc:dd:ee:ff
		hex := strings.ReplaceAll(mac, ".", "")
		if len(hex) == 12 {
			parts := make([]string, 0, 6)
			for i := 0; i < 12; i += 2 {
				parts = append(parts, hex[i:i+2])
			}
			return strings.Join(parts, ":")
		}
	}
	return mac
}

// IsBroadcastMAC checks if a MAC address is the Ethernet broadcast address.
func IsBroadcastMAC(mac string) bool {
	return NormalizeMAC(mac) == BroadcastMAC
}

// IsZeroMAC checks if a MAC address is the unspecified hardware address.
func IsZeroMAC(mac string) bool {
	return NormalizeMAC(mac) == ZeroMAC
}
