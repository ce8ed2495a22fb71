// Package models defines data structures for ARP observations and alerts.
package models

import (
	"encoding/json"
	"time"
)

// Opcode identifies the ARP operation carried by a packet.
type Opcode uint16

const (
	OpcodeUnknown     Opcode = 0
	OpcodeRequest     Opcode = 1
	OpcodeReply       Opcode = 2
	OpcodeRARPRequest Opcode = 3
	OpcodeRARPReply   Opcode = 4
)

func (o Opcode) String() string {
	switch o {
	case OpcodeRequest:
		return "request"
	case OpcodeReply:
		return "reply"
	case OpcodeRARPRequest:
		return "rarp_request"
	case OpcodeRARPReply:
		return "rarp_reply"
	default:
		return "unknown"
	}
}

// OpcodeFromWire maps a wire-level ARP operation code to an Opcode. Codes
// outside the four standard operations map to OpcodeUnknown.
func OpcodeFromWire(op uint16) Opcode {
	if op >= 1 && op <= 4 {
		return Opcode(op)
	}
	return OpcodeUnknown
}

func (o Opcode) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// ArpPacket represents a decoded ARP observation supplied by a capture source.
type ArpPacket struct {
	Timestamp time.Time `json:"timestamp"`
	Opcode    Opcode    `json:"opcode"`
	SenderMAC string    `json:"sender_mac"` // canonical colon-hex, lowercase
	SenderIP  string    `json:"sender_ip"`  // dotted-quad
	TargetMAC string    `json:"target_mac"`
	TargetIP  string    `json:"target_ip"`
	Interface string    `json:"interface"`
}

// ArpEntry represents a single observed IP-to-MAC binding.
type ArpEntry struct {
	IPAddress  string    `json:"ip_address"`
	MACAddress string    `json:"mac_address"`
	Interface  string    `json:"interface"`
	Timestamp  time.Time `json:"timestamp"`
	IsStatic   bool      `json:"is_static"` // operator-declared trust flag
}
