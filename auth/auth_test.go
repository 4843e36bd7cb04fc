// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"strings"
	"testing"
)

func TestGenerateVoterID(t *testing.T) {
	id, err := GenerateVoterID()
	if err != nil {
		t.Fatalf("GenerateVoterID() error = %v", err)
	}

	// 24 bytes base64 = 32 chars without padding
	if len(id) != 32 {
		t.Errorf("GenerateVoterID() length = %d, want 32", len(id))
	}
	if strings.ContainsAny(id, "+/=") {
		t.Errorf("GenerateVoterID() not URL-safe: %q", id)
	}

	// Two tokens should differ
	id2, _ := GenerateVoterID()
	if id == id2 {
		t.Error("GenerateVoterID() produced duplicate tokens (extremely unlikely)")
	}
}

func TestGenerateVoterIDs(t *testing.T) {
	tests := []struct {
		name string
		n    int
	}{
		{"zero", 0},
		{"one", 1},
		{"many", 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids, err := GenerateVoterIDs(tt.n)
			if err != nil {
				t.Fatalf("GenerateVoterIDs(%d) error = %v", tt.n, err)
			}
			if len(ids) != tt.n {
				t.Fatalf("GenerateVoterIDs(%d) returned %d ids", tt.n, len(ids))
			}

			seen := make(map[string]bool)
			for _, id := range ids {
				if seen[id] {
					t.Errorf("duplicate id in batch: %s", id)
				}
				seen[id] = true
			}
		})
	}
}

func TestHashIP(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		salt string
	}{
		{"ipv4", "192.168.1.1", "salt1"},
		{"ipv6", "2001:db8::1", "salt1"},
		{"empty ip", "", "salt1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash := HashIP(tt.ip, tt.salt)

			if len(hash) != 16 {
				t.Errorf("HashIP() length = %d, want 16", len(hash))
			}

			// Deterministic
			if HashIP(tt.ip, tt.salt) != hash {
				t.Error("HashIP() not deterministic")
			}

			// Different salt changes the hash
			if HashIP(tt.ip, "other-salt") == hash {
				t.Error("HashIP() ignored the salt")
			}
		})
	}
}
