// Package monitor wires the binding cache and the detector set into the
// per-packet ingest pipeline.
package monitor

import (
	"github.com/hervehildenbrand/arp-radar/pkg/bindings"
	"github.com/hervehildenbrand/arp-radar/pkg/detector"
	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

// WindowSize is the capacity of the recent-packet window consumed by flood
// detection. The oldest packet is evicted first.
const WindowSize = 100

// Sink receives every alert the pipeline emits, synchronously and in
// emission order.
type Sink interface {
	Write(alert *models.Alert)
}

// Config carries the tunables for one monitoring session. The zero value
// selects all defaults.
type Config struct {
	// StaticBindings maps protected IPs to their expected MAC.
	StaticBindings map[string]string
	// TrustedMACs are exempt from spoof flagging.
	TrustedMACs []string
	// FloodThreshold is the distinct-sender-MAC count tolerated in the
	// window; zero selects detector.DefaultFloodThreshold.
	FloodThreshold int
	// HistoryLimit caps retained entries per IP; zero selects
	// bindings.DefaultHistoryLimit.
	HistoryLimit int
}

// State reports where a monitor is in its lifecycle: Idle until the first
// packet, Running afterwards. There is no terminal state; a session ends
// when the driver stops feeding packets.
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// Statistics is a point-in-time snapshot of the session counters.
type Statistics struct {
	TotalPackets int            `json:"total_packets"`
	TotalAlerts  int            `json:"total_alerts"`
	BySeverity   map[string]int `json:"by_severity"`
	CacheSize    int            `json:"cache_size"`
}

// Monitor owns the cache, the detector set and the alert log for one
// monitoring session. It is deliberately unsynchronized: Ingest must only
// be called from a single goroutine, and a separate capture point needs
// its own Monitor.
type Monitor struct {
	cache      *bindings.Cache
	spoof      *detector.SpoofDetector
	flood      *detector.FloodDetector
	gratuitous *detector.GratuitousDetector

	window   []models.ArpPacket
	alertLog []*models.Alert
	sinks    []Sink

	state        State
	totalPackets int
	bySeverity   map[models.Severity]int
}

// New creates an idle monitor from a session configuration.
func New(cfg Config) *Monitor {
	return &Monitor{
		cache:      bindings.New(cfg.HistoryLimit),
		spoof:      detector.NewSpoofDetector(cfg.StaticBindings, cfg.TrustedMACs),
		flood:      detector.NewFloodDetector(cfg.FloodThreshold),
		gratuitous: detector.NewGratuitousDetector(),
		window:     make([]models.ArpPacket, 0, WindowSize),
		bySeverity: make(map[models.Severity]int),
	}
}

// AddSink registers an alert sink. Sinks are invoked synchronously from
// Ingest in registration order; register them before the first packet.
func (m *Monitor) AddSink(s Sink) {
	m.sinks = append(m.sinks, s)
}

// Ingest runs one packet through the pipeline: window update, cache
// recording, then the spoof, flood and gratuitous checks, in that order.
// Detectors observe cache and window state that already includes this
// packet, and the alert log and sinks see alerts in exactly this order.
// The returned slice holds the alerts this packet produced.
func (m *Monitor) Ingest(pkt models.ArpPacket) []*models.Alert {
	m.state = StateRunning
	m.totalPackets++

	m.window = append(m.window, pkt)
	if len(m.window) > WindowSize {
		m.window = m.window[1:]
	}

	var alerts []*models.Alert

	entry := models.ArpEntry{
		IPAddress:  pkt.SenderIP,
		MACAddress: pkt.SenderMAC,
		Interface:  pkt.Interface,
		Timestamp:  pkt.Timestamp,
	}
	if alert := m.cache.Record(entry); alert != nil {
		alerts = append(alerts, alert)
	}
	if alert := m.spoof.Process(pkt); alert != nil {
		alerts = append(alerts, alert)
	}
	if alert := m.flood.Process(m.window); alert != nil {
		alerts = append(alerts, alert)
	}
	if alert := m.gratuitous.Process(pkt); alert != nil {
		alerts = append(alerts, alert)
	}

	for _, alert := range alerts {
		m.alertLog = append(m.alertLog, alert)
		m.bySeverity[alert.Severity]++
		for _, s := range m.sinks {
			s.Write(alert)
		}
	}
	return alerts
}

// State returns the lifecycle state.
func (m *Monitor) State() State {
	return m.state
}

// Cache exposes the binding cache for read-only inspection.
func (m *Monitor) Cache() *bindings.Cache {
	return m.cache
}

// Alerts returns a copy of the session's alert log in emission order.
func (m *Monitor) Alerts() []*models.Alert {
	out := make([]*models.Alert, len(m.alertLog))
	copy(out, m.alertLog)
	return out
}

// Statistics returns a snapshot of the session counters. All severity
// tiers appear in BySeverity, zero counts included.
func (m *Monitor) Statistics() Statistics {
	bySeverity := make(map[string]int)
	for sev := models.SeverityInfo; sev <= models.SeverityCritical; sev++ {
		bySeverity[sev.String()] = m.bySeverity[sev]
	}
	return Statistics{
		TotalPackets: m.totalPackets,
		TotalAlerts:  len(m.alertLog),
		BySeverity:   bySeverity,
		CacheSize:    m.cache.Size(),
	}
}
