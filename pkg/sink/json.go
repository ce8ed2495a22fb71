package sink

import (
	"encoding/json"
	"io"
	"log"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

// JSON renders alerts as one JSON object per line.
type JSON struct {
	enc *json.Encoder
}

// NewJSON creates a JSON sink writing to out.
func NewJSON(out io.Writer) *JSON {
	return &JSON{enc: json.NewEncoder(out)}
}

// Write renders one alert. Evidence fields appear only when present.
func (j *JSON) Write(alert *models.Alert) {
	if err := j.enc.Encode(alert); err != nil {
		log.Printf("Failed to encode alert: %v", err)
	}
}

// WritePacket renders one observed packet, for verbose sessions. Packet
// objects carry an opcode field where alert objects carry a severity.
func (j *JSON) WritePacket(pkt models.ArpPacket) {
	if err := j.enc.Encode(pkt); err != nil {
		log.Printf("Failed to encode packet: %v", err)
	}
}
