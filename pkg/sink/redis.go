package sink

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

// DefaultChannel is the Redis channel alerts are published to.
const DefaultChannel = "arp-radar:alerts"

// Publisher publishes alert JSON to a Redis channel for downstream
// consumers (dashboards, pagers).
type Publisher struct {
	client  *redis.Client
	channel string
}

// NewPublisher creates a Redis publisher. The client is owned by the
// caller. An empty channel selects DefaultChannel.
func NewPublisher(client *redis.Client, channel string) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{client: client, channel: channel}
}

// Write publishes one alert. Publish failures are logged and the alert is
// dropped; the pipeline does not retry.
func (p *Publisher) Write(alert *models.Alert) {
	payload, err := json.Marshal(alert)
	if err != nil {
		log.Printf("Failed to encode alert: %v", err)
		return
	}
	if err := p.client.Publish(context.Background(), p.channel, payload).Err(); err != nil {
		log.Printf("Failed to publish alert: %v", err)
	}
}
