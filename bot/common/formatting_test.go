package common

import (
	"testing"
	"time"
)

func TestFormatChips(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		expected string
	}{
		{"Zero", 0, "0"},
		{"Less than 1k", 999, "999"},
		{"Exactly 1k", 1000, "1,000"},
		{"Millions", 2500000, "2,500,000"},
		{"Negative", -1234567, "-1,234,567"},
		{"Small negative", -42, "-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatChips(tt.amount)
			if result != tt.expected {
				t.Errorf("FormatChips(%d) = %s; want %s", tt.amount, result, tt.expected)
			}
		})
	}
}

func TestParseCompactDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"Minutes", "45m", 45 * time.Minute, false},
		{"Hours", "2h", 2 * time.Hour, false},
		{"Days", "1d", 24 * time.Hour, false},
		{"Days with tail", "1d12h", 36 * time.Hour, false},
		{"Mixed case", "2H", 2 * time.Hour, false},
		{"Whitespace", " 30m ", 30 * time.Minute, false},
		{"Empty", "", 0, true},
		{"Garbage", "soon", 0, true},
		{"Bare number", "15", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseCompactDuration(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseCompactDuration(%q) expected error, got %v", tt.input, result)
				}
				return
			}
			if err != nil {
				t.Errorf("ParseCompactDuration(%q) unexpected error: %v", tt.input, err)
				return
			}
			if result != tt.expected {
				t.Errorf("ParseCompactDuration(%q) = %v; want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		d        time.Duration
		expected string
	}{
		{"Seconds", 30 * time.Second, "30s"},
		{"Minutes only", 45 * time.Minute, "45m"},
		{"Hours only", 3 * time.Hour, "3h"},
		{"Hours and minutes", 2*time.Hour + 15*time.Minute, "2h 15m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatDuration(tt.d)
			if result != tt.expected {
				t.Errorf("FormatDuration(%v) = %s; want %s", tt.d, result, tt.expected)
			}
		})
	}
}
