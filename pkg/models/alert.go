package models

import (
	"encoding/json"
	"time"
)

// Severity classifies how urgent an alert is. Higher values compare as more severe.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = [...]string{"info", "low", "medium", "high", "critical"}

func (s Severity) String() string {
	if s < SeverityInfo || s > SeverityCritical {
		return "unknown"
	}
	return severityNames[s]
}

// Priority returns the display rank: 1 for Critical down to 5 for Info.
func (s Severity) Priority() int {
	return int(SeverityCritical-s) + 1
}

// Color returns the ANSI escape sequence for rendering this severity tier.
func (s Severity) Color() string {
	switch s {
	case SeverityCritical:
		return "\033[1;31m" // bold red
	case SeverityHigh:
		return "\033[31m"
	case SeverityMedium:
		return "\033[33m"
	case SeverityLow:
		return "\033[36m"
	default:
		return "\033[90m"
	}
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// ParseSeverity maps a severity name back to its tier. Unknown names map
// to Info, the lowest tier.
func ParseSeverity(name string) Severity {
	for i, n := range severityNames {
		if n == name {
			return Severity(i)
		}
	}
	return SeverityInfo
}

// AttackType is the closed taxonomy of alert categories.
type AttackType string

const (
	AttackArpSpoof      AttackType = "arp_spoof"
	AttackMacFlood      AttackType = "mac_flood"
	AttackGratuitousArp AttackType = "gratuitous_arp"
	AttackNewHost       AttackType = "new_host"
	AttackMacChange     AttackType = "mac_change"
	AttackIPConflict    AttackType = "ip_conflict"
)

// DefaultSeverity returns the severity alerts of this category carry.
func (a AttackType) DefaultSeverity() Severity {
	switch a {
	case AttackArpSpoof:
		return SeverityCritical
	case AttackMacFlood, AttackMacChange, AttackIPConflict:
		return SeverityHigh
	case AttackGratuitousArp:
		return SeverityMedium
	case AttackNewHost:
		return SeverityInfo
	default:
		return SeverityLow
	}
}

// Alert represents a detected ARP anomaly. Alerts are append-only once emitted;
// the optional fields carry the evidence that triggered the detection.
type Alert struct {
	Timestamp time.Time  `json:"timestamp"`
	Severity  Severity   `json:"severity"`
	Category  AttackType `json:"category"`
	Message   string     `json:"message"`
	Packet    *ArpPacket `json:"packet,omitempty"`
	OldEntry  *ArpEntry  `json:"old_entry,omitempty"`
	NewEntry  *ArpEntry  `json:"new_entry,omitempty"`
}

// NewAlert builds an alert for the given category at its default severity,
// timestamped now. Evidence fields are attached by the caller.
func NewAlert(category AttackType, message string) *Alert {
	return &Alert{
		Timestamp: time.Now(),
		Severity:  category.DefaultSeverity(),
		Category:  category,
		Message:   message,
	}
}
