package capture

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

const (
	snapshotLen = 65536
	pollTimeout = 500 * time.Millisecond
)

// LiveSource captures ARP traffic from a network interface.
type LiveSource struct {
	iface   string
	promisc bool
	packets chan<- models.ArpPacket
	handle  *pcap.Handle
	done    chan struct{}
	wg      sync.WaitGroup

	// Stats
	captured uint64
	dropped  uint64

	running atomic.Bool
}

// NewLiveSource creates a capture source for iface. With promisc set the
// interface also sees frames not addressed to it, which is what a passive
// monitor wants.
func NewLiveSource(iface string, promisc bool, packets chan<- models.ArpPacket) *LiveSource {
	return &LiveSource{
		iface:   iface,
		promisc: promisc,
		packets: packets,
		done:    make(chan struct{}),
	}
}

// Start opens the interface and begins the capture loop. Opening can fail
// on a missing interface or insufficient privileges, so unlike the loop
// itself it reports an error.
func (s *LiveSource) Start() error {
	if s.running.Swap(true) {
		return nil
	}

	handle, err := pcap.OpenLive(s.iface, snapshotLen, s.promisc, pollTimeout)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("opening %s: %w", s.iface, err)
	}
	if err := handle.SetBPFFilter("arp"); err != nil {
		handle.Close()
		s.running.Store(false)
		return fmt.Errorf("setting BPF filter: %w", err)
	}
	s.handle = handle

	s.wg.Add(1)
	go s.runLoop()
	log.Printf("[capture] Listening on %s (promiscuous=%v)", s.iface, s.promisc)
	return nil
}

// Stop ends the capture loop and closes the handle.
func (s *LiveSource) Stop() {
	if !s.running.Swap(false) {
		return
	}
	close(s.done)
	s.wg.Wait()
	s.handle.Close()
	log.Printf("[capture] Stopped")
}

// Stats returns current statistics.
func (s *LiveSource) Stats() map[string]interface{} {
	return map[string]interface{}{
		"interface": s.iface,
		"captured":  atomic.LoadUint64(&s.captured),
		"dropped":   atomic.LoadUint64(&s.dropped),
	}
}

func (s *LiveSource) runLoop() {
	defer s.wg.Done()

	source := gopacket.NewPacketSource(s.handle, s.handle.LinkType())
	for {
		select {
		case <-s.done:
			return
		case packet, ok := <-source.Packets():
			if !ok {
				return
			}
			pkt, ok := Decode(packet)
			if !ok {
				continue
			}
			pkt.Interface = s.iface
			atomic.AddUint64(&s.captured, 1)
			select {
			case s.packets <- pkt:
			default:
				// Channel full, drop packet
				atomic.AddUint64(&s.dropped, 1)
			}
		}
	}
}
