// Package bindings maintains the IP-to-MAC binding state observed during a
// monitoring session.
package bindings

import (
	"fmt"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

// DefaultHistoryLimit bounds how many entries are retained per IP. Old
// entries are dropped past the limit so a noisy host cannot grow the cache
// without bound over a long session.
const DefaultHistoryLimit = 512

// Cache tracks every binding observed for each IP, plus a reverse index of
// the IPs each MAC has claimed. It is owned by a single monitor and is not
// safe for concurrent use.
type Cache struct {
	history      map[string][]models.ArpEntry
	macToIPs     map[string]map[string]bool
	historyLimit int
}

// New creates an empty cache retaining at most historyLimit entries per IP.
// A limit of zero or less selects DefaultHistoryLimit.
func New(historyLimit int) *Cache {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Cache{
		history:      make(map[string][]models.ArpEntry),
		macToIPs:     make(map[string]map[string]bool),
		historyLimit: historyLimit,
	}
}

// Record stores an observed binding and reports what changed: a MacChange
// alert when the IP's current MAC differs from the entry's, a NewHost alert
// the first time an IP is seen, nil for a benign refresh. The entry is
// appended to the IP's history in every case.
func (c *Cache) Record(entry models.ArpEntry) *models.Alert {
	prev, seen := c.Current(entry.IPAddress)

	ips, ok := c.macToIPs[entry.MACAddress]
	if !ok {
		ips = make(map[string]bool)
		c.macToIPs[entry.MACAddress] = ips
	}
	ips[entry.IPAddress] = true

	hist := append(c.history[entry.IPAddress], entry)
	if len(hist) > c.historyLimit {
		hist = hist[len(hist)-c.historyLimit:]
	}
	c.history[entry.IPAddress] = hist

	if seen && prev.MACAddress != entry.MACAddress {
		alert := models.NewAlert(models.AttackMacChange, fmt.Sprintf(
			"MAC address for %s changed from %s to %s",
			entry.IPAddress, prev.MACAddress, entry.MACAddress))
		alert.OldEntry = &prev
		newEntry := entry
		alert.NewEntry = &newEntry
		return alert
	}
	if !seen {
		alert := models.NewAlert(models.AttackNewHost, fmt.Sprintf(
			"new host detected: %s at %s", entry.IPAddress, entry.MACAddress))
		newEntry := entry
		alert.NewEntry = &newEntry
		return alert
	}
	return nil
}

// Current returns the most recent binding recorded for an IP.
func (c *Cache) Current(ip string) (models.ArpEntry, bool) {
	hist := c.history[ip]
	if len(hist) == 0 {
		return models.ArpEntry{}, false
	}
	return hist[len(hist)-1], true
}

// History returns a copy of the bindings recorded for an IP, oldest first.
func (c *Cache) History(ip string) []models.ArpEntry {
	hist := c.history[ip]
	if len(hist) == 0 {
		return nil
	}
	out := make([]models.ArpEntry, len(hist))
	copy(out, hist)
	return out
}

// IPsForMAC returns every IP a MAC has claimed during the session.
func (c *Cache) IPsForMAC(mac string) []string {
	set := c.macToIPs[mac]
	if len(set) == 0 {
		return nil
	}
	ips := make([]string, 0, len(set))
	for ip := range set {
		ips = append(ips, ip)
	}
	return ips
}

// Size returns the number of distinct IPs ever recorded. History trimming
// never removes an IP, so the count is monotonic for the session.
func (c *Cache) Size() int {
	return len(c.history)
}
