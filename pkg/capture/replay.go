package capture

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"

	"github.com/hervehildenbrand/arp-radar/pkg/models"
)

// ReplaySource feeds the ARP frames of a pcap capture file through the
// pipeline, for offline analysis of recorded traffic.
type ReplaySource struct {
	path     string
	packets  chan<- models.ArpPacket
	handle   *pcap.Handle
	done     chan struct{}
	finished chan struct{}
	wg       sync.WaitGroup

	replayed uint64

	running atomic.Bool
}

// NewReplaySource creates a source replaying the capture file at path.
func NewReplaySource(path string, packets chan<- models.ArpPacket) *ReplaySource {
	return &ReplaySource{
		path:     path,
		packets:  packets,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start opens the file and begins the replay in a goroutine.
func (s *ReplaySource) Start() error {
	if s.running.Swap(true) {
		return nil
	}

	handle, err := pcap.OpenOffline(s.path)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("opening capture file: %w", err)
	}
	s.handle = handle

	s.wg.Add(1)
	go s.runLoop()
	log.Printf("[replay] Replaying %s", s.path)
	return nil
}

// Stop aborts a replay in progress.
func (s *ReplaySource) Stop() {
	if !s.running.Swap(false) {
		return
	}
	close(s.done)
	s.wg.Wait()
}

// Done is closed once the file is exhausted.
func (s *ReplaySource) Done() <-chan struct{} {
	return s.finished
}

// Stats returns current statistics.
func (s *ReplaySource) Stats() map[string]interface{} {
	return map[string]interface{}{
		"file":     s.path,
		"replayed": atomic.LoadUint64(&s.replayed),
	}
}

func (s *ReplaySource) runLoop() {
	defer s.wg.Done()
	defer close(s.finished)
	defer s.handle.Close()

	iface := filepath.Base(s.path)
	source := gopacket.NewPacketSource(s.handle, s.handle.LinkType())
	for packet := range source.Packets() {
		pkt, ok := Decode(packet)
		if !ok {
			continue
		}
		pkt.Interface = iface
		atomic.AddUint64(&s.replayed, 1)
		// Blocking send: offline analysis must see every frame
		select {
		case s.packets <- pkt:
		case <-s.done:
			return
		}
	}
	log.Printf("[replay] Finished: %d ARP packets from %s", atomic.LoadUint64(&s.replayed), s.path)
}
