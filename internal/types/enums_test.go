package types

import "testing"

func TestIsHHMM(t *testing.T) {
	tests := map[string]bool{
		"10:00": true,
		"00:00": true,
		"23:59": true,
		"24:00": false,
		"9:30":  false,
		"09:60": false,
		"":      false,
		"noon":  false,
	}
	for in, want := range tests {
		if got := IsHHMM(in); got != want {
			t.Errorf("IsHHMM(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestIsISODate(t *testing.T) {
	tests := map[string]bool{
		"2024-01-15": true,
		"2024-02-29": true,
		"2023-02-29": false,
		"15-01-2024": false,
		"2024-1-5":   false,
	}
	for in, want := range tests {
		if got := IsISODate(in); got != want {
			t.Errorf("IsISODate(%q) = %v, want %v", in, got, want)
		}
	}
}
