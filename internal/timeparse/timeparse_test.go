package timeparse

import (
	"errors"
	"testing"
	"time"
)

func TestParseEasternSuffix(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantYear   int
		wantMonth  time.Month
		wantDay    int
		wantHour   int
		wantMinute int
		wantSecond int
		wantOffset int // seconds east of UTC
	}{
		{
			name:     "summer timestamp with EDT suffix",
			input:    "09/15/2025 08:27:26 EDT",
			wantYear: 2025, wantMonth: time.September, wantDay: 15,
			wantHour: 8, wantMinute: 27, wantSecond: 26,
			wantOffset: -4 * 60 * 60,
		},
		{
			name:     "winter timestamp with EST suffix",
			input:    "01/15/2025 09:30:00 EST",
			wantYear: 2025, wantMonth: time.January, wantDay: 15,
			wantHour: 9, wantMinute: 30, wantSecond: 0,
			wantOffset: -5 * 60 * 60,
		},
		{
			name:     "EDT suffix on a winter date still follows the zone calendar",
			input:    "12/01/2025 10:00:00 EDT",
			wantYear: 2025, wantMonth: time.December, wantDay: 1,
			wantHour: 10, wantMinute: 0, wantSecond: 0,
			wantOffset: -5 * 60 * 60,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if got.Year() != tt.wantYear || got.Month() != tt.wantMonth || got.Day() != tt.wantDay {
				t.Errorf("Parse(%q) date = %v, want %04d-%02d-%02d", tt.input, got, tt.wantYear, tt.wantMonth, tt.wantDay)
			}
			if got.Hour() != tt.wantHour || got.Minute() != tt.wantMinute || got.Second() != tt.wantSecond {
				t.Errorf("Parse(%q) time = %v, want %02d:%02d:%02d", tt.input, got, tt.wantHour, tt.wantMinute, tt.wantSecond)
			}
			if _, offset := got.Zone(); offset != tt.wantOffset {
				t.Errorf("Parse(%q) zone offset = %d, want %d", tt.input, offset, tt.wantOffset)
			}
		})
	}
}

func TestParseFallbackLayouts(t *testing.T) {
	tests := []struct {
		input string
	}{
		{"09/15/2025 08:27:26"},
		{"09/15/2025 08:27"},
		{"2025-09-15 08:27:26"},
		{"2025-09-15T08:27:26"},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Errorf("Parse(%q) returned error: %v", tt.input, err)
			continue
		}
		if got.IsZero() {
			t.Errorf("Parse(%q) returned zero time without error", tt.input)
		}
	}
}

func TestParseMissingAndUnparsable(t *testing.T) {
	if _, err := Parse(""); !errors.Is(err, ErrMissing) {
		t.Errorf("Parse(empty) error = %v, want ErrMissing", err)
	}
	if _, err := Parse("   "); !errors.Is(err, ErrMissing) {
		t.Errorf("Parse(blank) error = %v, want ErrMissing", err)
	}
	for _, input := range []string{"not a time", "13/45/2025 99:99:99 EDT", "garbage EDT"} {
		got, err := Parse(input)
		if !errors.Is(err, ErrUnparsable) {
			t.Errorf("Parse(%q) error = %v, want ErrUnparsable", input, err)
		}
		if !got.IsZero() {
			t.Errorf("Parse(%q) = %v, want zero time as the missing-value marker", input, got)
		}
	}
}
