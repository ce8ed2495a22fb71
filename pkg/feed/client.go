// Package feed provides a WebSocket client for remote ARP probe streams.
package feed

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

const (
	// Connection settings
	initialReconnectDelay = 5 * time.Second
	maxReconnectDelay     = 5 * time.Minute
	reconnectBackoff      = 2.0
	pingInterval          = 30 * time.Second
	connectionTimeout     = 60 * time.Second
	writeTimeout          = 10 * time.Second
)

// Client is a WebSocket client for one remote probe with automatic
// reconnection. A probe exports decoded ARP observations; each monitor
// consumes exactly one probe, so there is no multi-connection fan-in.
type Client struct {
	url     string
	iface   string
	packets chan<- models.ArpPacket
	done    chan struct{}
	wg      sync.WaitGroup

	// Stats
	messagesReceived uint64
	packetsParsed    uint64
	errors           uint64
	reconnects       uint64

	// State
	running   atomic.Bool
	connected atomic.Bool
}

// NewClient creates a probe client. iface is passed to the probe as a
// capture filter and stamped onto packets that arrive without one.
func NewClient(url, iface string, packets chan<- models.ArpPacket) *Client {
	return &Client{
		url:     url,
		iface:   iface,
		packets: packets,
		done:    make(chan struct{}),
	}
}

// Start begins the WebSocket connection in a goroutine.
func (c *Client) Start() {
	if c.running.Swap(true) {
		log.Printf("[feed] Client already running")
		return
	}

	c.wg.Add(1)
	go c.runLoop()
	log.Printf("[feed] Client started for %s", c.url)
}

// Stop gracefully shuts down the client.
func (c *Client) Stop() {
	if !c.running.Swap(false) {
		return
	}
	close(c.done)
	c.wg.Wait()
	log.Printf("[feed] Client stopped")
}

// Stats returns current statistics.
func (c *Client) Stats() map[string]interface{} {
	return map[string]interface{}{
		"url":               c.url,
		"connected":         c.connected.Load(),
		"messages_received": atomic.LoadUint64(&c.messagesReceived),
		"packets_parsed":    atomic.LoadUint64(&c.packetsParsed),
		"errors":            atomic.LoadUint64(&c.errors),
		"reconnects":        atomic.LoadUint64(&c.reconnects),
	}
}

func (c *Client) runLoop() {
	defer c.wg.Done()

	reconnectDelay := initialReconnectDelay

	for c.running.Load() {
		err := c.connectAndStream()
		if err != nil {
			atomic.AddUint64(&c.errors, 1)
			atomic.AddUint64(&c.reconnects, 1)
			log.Printf("[feed] Connection error: %v, reconnecting in %v", err, reconnectDelay)
		}

		// Check if we should stop
		select {
		case <-c.done:
			return
		case <-time.After(reconnectDelay):
			// Exponential backoff
			reconnectDelay = time.Duration(float64(reconnectDelay) * reconnectBackoff)
			if reconnectDelay > maxReconnectDelay {
				reconnectDelay = maxReconnectDelay
			}
		}
	}
}

func (c *Client) connectAndStream() error {
	// Connect with timeout
	dialer := websocket.Dialer{
		HandshakeTimeout: connectionTimeout,
	}

	log.Printf("[feed] Connecting to %s...", c.url)
	conn, _, err := dialer.Dial(c.url, nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}
	defer conn.Close()

	// Send subscription message
	subscribeMsg := map[string]interface{}{
		"type": "arp_subscribe",
		"data": map[string]interface{}{
			"interface": c.iface,
		},
	}

	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(subscribeMsg); err != nil {
		return fmt.Errorf("subscribe failed: %w", err)
	}

	c.connected.Store(true)
	log.Printf("[feed] Connected and subscribed")

	// Set up ping handler
	conn.SetPongHandler(func(string) error {
		return nil
	})

	// Start ping goroutine
	pingDone := make(chan struct{})
	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-pingDone:
				return
			case <-c.done:
				// Close connection to unblock ReadMessage
				conn.Close()
				return
			}
		}
	}()
	defer close(pingDone)

	// Read messages
	for c.running.Load() {
		messageType, message, err := conn.ReadMessage()
		if err != nil {
			// Normal close - exit cleanly
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.connected.Store(false)
				return nil
			}
			// Any error means connection is broken - return to trigger reconnect
			c.connected.Store(false)
			return fmt.Errorf("read failed: %w", err)
		}

		// Only process text messages
		if messageType != websocket.TextMessage {
			continue
		}

		atomic.AddUint64(&c.messagesReceived, 1)

		// Log first few messages for debugging
		if atomic.LoadUint64(&c.messagesReceived) <= 3 {
			msgLen := len(message)
			if msgLen > 200 {
				msgLen = 200
			}
			log.Printf("[feed] Raw message: %s", string(message[:msgLen]))
		}

		// Parse and forward packet
		pkt, err := ParseMessage(message)
		if err != nil {
			// Not all messages are packets, this is fine
			atomic.AddUint64(&c.errors, 1)
			if atomic.LoadUint64(&c.messagesReceived) <= 10 {
				log.Printf("[feed] Parse error: %v", err)
			}
			continue
		}
		if pkt != nil {
			if pkt.Interface == "" {
				pkt.Interface = c.iface
			}
			atomic.AddUint64(&c.packetsParsed, 1)
			// Non-blocking send to channel
			select {
			case c.packets <- *pkt:
			default:
				// Channel full, log occasionally
				if atomic.LoadUint64(&c.packetsParsed)%10000 == 0 {
					log.Printf("[feed] Packet channel full, dropping packet")
				}
			}
		}
	}

	c.connected.Store(false)
	return nil
}
