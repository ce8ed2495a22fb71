// Package database provides PostgreSQL alert persistence with batch support.
package database

import (
	"database/sql"
	"encoding/json"
	"log"
	"sync"
	"sync/atomic"
	"time"

	_ "github.com/lib/pq"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

const (
	batchSize     = 50
	batchInterval = 2 * time.Second
	queueSize     = 10000
)

// AlertWriter handles batch writing of alerts to PostgreSQL. It implements
// the monitor's sink contract: Write queues and returns immediately, so
// database latency never stalls the ingest path.
type AlertWriter struct {
	db      *sql.DB
	queue   chan *models.Alert
	done    chan struct{}
	wg      sync.WaitGroup
	running bool
	mu      sync.Mutex

	// Stats
	alertsWritten  uint64
	alertsDropped  uint64
	batchesWritten uint64
}

// NewAlertWriter creates a new database alert writer.
func NewAlertWriter(databaseURL string) (*AlertWriter, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, err
	}

	// Configure connection pool
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("Connected to PostgreSQL database")

	return &AlertWriter{
		db:    db,
		queue: make(chan *models.Alert, queueSize),
		done:  make(chan struct{}),
	}, nil
}

// Start begins the background writer goroutine.
func (w *AlertWriter) Start() {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return
	}
	w.running = true
	w.mu.Unlock()

	w.wg.Add(1)
	go w.writerLoop()
	log.Printf("Database alert writer started")
}

// Stop gracefully shuts down the writer, flushing queued alerts.
func (w *AlertWriter) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.done)
	w.wg.Wait()
	w.db.Close()
	log.Printf("Database alert writer stopped (written=%d, dropped=%d, batches=%d)",
		atomic.LoadUint64(&w.alertsWritten),
		atomic.LoadUint64(&w.alertsDropped),
		atomic.LoadUint64(&w.batchesWritten))
}

// Write queues an alert for batch writing.
func (w *AlertWriter) Write(alert *models.Alert) {
	select {
	case w.queue <- alert:
	default:
		// Queue full, drop alert
		dropped := atomic.AddUint64(&w.alertsDropped, 1)
		if dropped%1000 == 0 {
			log.Printf("Alert queue full, dropped %d alerts", dropped)
		}
	}
}

// Stats returns writer statistics.
func (w *AlertWriter) Stats() map[string]interface{} {
	return map[string]interface{}{
		"alerts_written":  atomic.LoadUint64(&w.alertsWritten),
		"alerts_dropped":  atomic.LoadUint64(&w.alertsDropped),
		"batches_written": atomic.LoadUint64(&w.batchesWritten),
		"queue_len":       len(w.queue),
		"queue_cap":       cap(w.queue),
	}
}

func (w *AlertWriter) writerLoop() {
	defer w.wg.Done()

	batch := make([]*models.Alert, 0, batchSize)
	ticker := time.NewTicker(batchInterval)
	defer ticker.Stop()

	for {
		select {
		case alert := <-w.queue:
			batch = append(batch, alert)
			if len(batch) >= batchSize {
				w.writeBatch(batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.writeBatch(batch)
				batch = batch[:0]
			}

		case <-w.done:
			// Flush remaining alerts
			close(w.queue)
			for alert := range w.queue {
				batch = append(batch, alert)
				if len(batch) >= batchSize {
					w.writeBatch(batch)
					batch = batch[:0]
				}
			}
			if len(batch) > 0 {
				w.writeBatch(batch)
			}
			return
		}
	}
}

func (w *AlertWriter) writeBatch(batch []*models.Alert) {
	if len(batch) == 0 {
		return
	}

	tx, err := w.db.Begin()
	if err != nil {
		log.Printf("Failed to begin transaction: %v", err)
		return
	}
	defer tx.Rollback()

	written := 0
	for _, alert := range batch {
		if w.writeAlert(tx, alert) {
			written++
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("Failed to commit batch: %v", err)
		return
	}

	atomic.AddUint64(&w.alertsWritten, uint64(written))
	atomic.AddUint64(&w.batchesWritten, 1)
}

func (w *AlertWriter) writeAlert(tx *sql.Tx, alert *models.Alert) bool {
	sourceIP, sourceMAC := sourceOf(alert)

	// Check for an existing active alert with the same signature
	var existingID int
	var existingSeverity string
	err := tx.QueryRow(`
		SELECT id, severity FROM arp_alerts
		WHERE category = $1
		AND source_ip = $2
		AND source_mac = $3
		AND is_active = true
		LIMIT 1
	`, string(alert.Category), sourceIP, sourceMAC).Scan(&existingID, &existingSeverity)

	if err == nil {
		// Alert exists, update last_seen_at and potentially escalate
		newSeverity := existingSeverity
		if alert.Severity > models.ParseSeverity(existingSeverity) {
			newSeverity = alert.Severity.String()
		}

		_, err = tx.Exec(`
			UPDATE arp_alerts
			SET last_seen_at = $1, severity = $2
			WHERE id = $3
		`, alert.Timestamp, newSeverity, existingID)

		if err != nil {
			log.Printf("Failed to update alert %d: %v", existingID, err)
			return false
		}
		return true
	}

	if err != sql.ErrNoRows {
		log.Printf("Failed to check existing alert: %v", err)
		return false
	}

	// Insert new alert with its evidence as JSON
	details := make(map[string]interface{})
	if alert.Packet != nil {
		details["packet"] = alert.Packet
	}
	if alert.OldEntry != nil {
		details["old_entry"] = alert.OldEntry
	}
	if alert.NewEntry != nil {
		details["new_entry"] = alert.NewEntry
	}
	detailsJSON, err := json.Marshal(details)
	if err != nil {
		detailsJSON = []byte("{}")
	}

	_, err = tx.Exec(`
		INSERT INTO arp_alerts (
			category, severity, source_ip, source_mac,
			message, details, detected_at, last_seen_at, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		string(alert.Category),
		alert.Severity.String(),
		sourceIP,
		sourceMAC,
		alert.Message,
		detailsJSON,
		alert.Timestamp,
		alert.Timestamp,
		true,
	)

	if err != nil {
		log.Printf("Failed to insert alert: %v", err)
		return false
	}

	return true
}

// sourceOf extracts the host an alert points at, for deduplication. Alerts
// without host evidence (flood) share one signature per category.
func sourceOf(alert *models.Alert) (ip, mac string) {
	switch {
	case alert.NewEntry != nil:
		return alert.NewEntry.IPAddress, alert.NewEntry.MACAddress
	case alert.Packet != nil:
		return alert.Packet.SenderIP, alert.Packet.SenderMAC
	default:
		return "", ""
	}
}
