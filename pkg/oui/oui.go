// Package oui resolves MAC address prefixes to hardware vendor names.
package oui

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/hervehildenbrand/arp-radar/pkg/detector"
)

// VendorResolver provides MAC-to-vendor lookups.
type VendorResolver interface {
	// Resolve returns the vendor name for a MAC, or "" if unknown.
	Resolve(mac string) string
	// Count returns the number of prefixes in the mapping.
	Count() int
}

// NullResolver knows no vendors. Use this when no OUI data is available.
type NullResolver struct{}

// NewNullResolver creates a new null resolver.
func NewNullResolver() *NullResolver {
	return &NullResolver{}
}

func (r *NullResolver) Resolve(mac string) string { return "" }
func (r *NullResolver) Count() int                { return 0 }

// FileResolver loads OUI-to-vendor mappings from a file. Two line formats
// are accepted and may be mixed: CSV ("aa:bb:cc,Vendor Name") and the IEEE
// registry form ("AA-BB-CC   (hex)  Vendor Name").
type FileResolver struct {
	filePath string
	mapping  map[string]string // "aa:bb:cc" -> vendor
}

// NewFileResolver creates a resolver that loads mappings from a file.
func NewFileResolver(filePath string) (*FileResolver, error) {
	r := &FileResolver{
		filePath: filePath,
		mapping:  make(map[string]string),
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileResolver) load() error {
	file, err := os.Open(r.filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if prefix, vendor, ok := parseIEEELine(line); ok {
			r.mapping[prefix] = vendor
			continue
		}
		if prefix, vendor, ok := parseCSVLine(line); ok {
			r.mapping[prefix] = vendor
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	log.Printf("Loaded %d OUI prefixes from %s", len(r.mapping), r.filePath)
	return nil
}

// Resolve returns the vendor for the MAC's 24-bit prefix, or "" if unknown.
func (r *FileResolver) Resolve(mac string) string {
	mac = detector.NormalizeMAC(mac)
	if len(mac) < 8 {
		return ""
	}
	return r.mapping[mac[:8]]
}

// Count returns the number of prefixes in the mapping.
func (r *FileResolver) Count() int {
	return len(r.mapping)
}

func parseIEEELine(line string) (prefix, vendor string, ok bool) {
	idx := strings.Index(line, "(hex)")
	if idx < 0 {
		return "", "", false
	}
	prefix = normalizePrefix(strings.TrimSpace(line[:idx]))
	vendor = strings.TrimSpace(line[idx+len("(hex)"):])
	if prefix == "" || vendor == "" {
		return "", "", false
	}
	return prefix, vendor, true
}

func parseCSVLine(line string) (prefix, vendor string, ok bool) {
	parts := strings.SplitN(line, ",", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	prefix = normalizePrefix(strings.TrimSpace(parts[0]))
	vendor = strings.TrimSpace(parts[1])
	if prefix == "" || vendor == "" {
		return "", "", false
	}
	return prefix, vendor, true
}

// normalizePrefix canonicalizes a 24-bit prefix to "aa:bb:cc" form.
func normalizePrefix(s string) string {
	s = detector.NormalizeMAC(s)
	if len(s) != 8 || strings.Count(s, ":") != 2 {
		return ""
	}
	return s
}

// IsLocallyAdministered reports whether a MAC has the locally administered
// bit set. Randomized and software-assigned addresses carry it and have no
// vendor prefix to look up.
func IsLocallyAdministered(mac string) bool {
	mac = detector.NormalizeMAC(mac)
	if len(mac) < 2 {
		return false
	}
	octet, err := strconv.ParseUint(mac[:2], 16, 8)
	if err != nil {
		return false
	}
	return octet&0x02 != 0
}
