package bindings

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"strings"
)

// LoadStaticFile loads an operator-maintained static binding table from a
// CSV file. Expected format: ip,mac (e.g., "192.168.1.1,aa:bb:cc:dd:ee:ff").
// MACs are normalized to lowercase colon-hex; rows that do not parse are
// skipped. The table is immutable for the session.
func LoadStaticFile(filePath string) (map[string]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening static bindings: %w", err)
	}
	defer file.Close()

	bindings := make(map[string]string)

	reader := csv.NewReader(bufio.NewReader(file))
	reader.Comment = '#'
	reader.FieldsPerRecord = -1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(record) < 2 {
			continue
		}
		ip := strings.TrimSpace(record[0])
		if net.ParseIP(ip) == nil {
			// Tolerate a header row ("ip,mac")
			continue
		}
		hw, err := net.ParseMAC(strings.TrimSpace(record[1]))
		if err != nil {
			continue
		}
		bindings[ip] = hw.String()
	}

	log.Printf("Loaded %d static bindings from %s", len(bindings), filePath)
	return bindings, nil
}
