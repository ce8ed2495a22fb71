package oui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileResolver(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oui.txt")
	content := `# mixed formats
aa:bb:cc,Acme Networks
00-D0-EF   (hex)		IGT
F4-CE-46   (hex)		Hewlett Packard
malformed line without separator
,missing prefix
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	r, err := NewFileResolver(path)
	if err != nil {
		t.Fatalf("NewFileResolver: %v", err)
	}
	if r.Count() != 3 {
		t.Fatalf("Count = %d, want 3", r.Count())
	}

	tests := []struct {
		mac      string
		expected string
	}{
		{"aa:bb:cc:dd:ee:ff", "Acme Networks"},
		{"AA:BB:CC:00:00:01", "Acme Networks"},
		{"00:d0:ef:12:34:56", "IGT"},
		{"f4-ce-46-aa-bb-cc", "Hewlett Packard"},
		{"11:22:33:44:55:66", ""},
		{"short", ""},
	}
	for _, tt := range tests {
		if got := r.Resolve(tt.mac); got != tt.expected {
			t.Errorf("Resolve(%s) = %q, want %q", tt.mac, got, tt.expected)
		}
	}
}

func TestFileResolverMissing(t *testing.T) {
	if _, err := NewFileResolver("/nonexistent/oui.txt"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestNullResolver(t *testing.T) {
	r := NewNullResolver()
	if r.Resolve("aa:bb:cc:dd:ee:ff") != "" || r.Count() != 0 {
		t.Error("null resolver should know nothing")
	}
}

func TestIsLocallyAdministered(t *testing.T) {
	tests := []struct {
		mac      string
		expected bool
	}{
		{"02:00:00:00:00:01", true},
		{"da:a1:19:44:55:66", true}, // Android randomized range
		{"aa:bb:cc:dd:ee:ff", true},
		{"00:d0:ef:12:34:56", false},
		{"f4:ce:46:aa:bb:cc", false},
		{"x", false},
	}
	for _, tt := range tests {
		if got := IsLocallyAdministered(tt.mac); got != tt.expected {
			t.Errorf("IsLocallyAdministered(%s) = %v, want %v", tt.mac, got, tt.expected)
		}
	}
}
