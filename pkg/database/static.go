package database

import (
	"database/sql"
	"fmt"
	"log"
	"net"
	"strings"
)

// QueryStaticBindings loads the operator's static binding table from
// PostgreSQL. Simple schema: SELECT ip, mac FROM arp_static_bindings.
// The table is read once at startup; static bindings are immutable for
// the session, so there is no refresh loop.
func QueryStaticBindings(db *sql.DB, tableName string) (map[string]string, error) {
	if tableName == "" {
		tableName = "arp_static_bindings"
	}

	rows, err := db.Query("SELECT ip, mac FROM " + tableName)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", tableName, err)
	}
	defer rows.Close()

	bindings := make(map[string]string)
	for rows.Next() {
		var ip, mac string
		if err := rows.Scan(&ip, &mac); err != nil {
			continue
		}
		if net.ParseIP(strings.TrimSpace(ip)) == nil {
			continue
		}
		hw, err := net.ParseMAC(strings.TrimSpace(mac))
		if err != nil {
			continue
		}
		bindings[strings.TrimSpace(ip)] = hw.String()
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", tableName, err)
	}

	log.Printf("Loaded %d static bindings from table %s", len(bindings), tableName)
	return bindings, nil
}
