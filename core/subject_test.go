package core

import (
	"testing"
	"time"
)

func TestParseDeadline(t *testing.T) {
	tests := []struct {
		in     string
		want   time.Time
		wantOk bool
	}{
		{in: ""},
		{in: "   "},
		{in: "tomorrow"},
		{in: "2024-05-01T10:00", want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.Local), wantOk: true},
		{in: "2024-05-01T10:00:30", want: time.Date(2024, 5, 1, 10, 0, 30, 0, time.Local), wantOk: true},
		{in: "2024-05-01T10:00:00Z", want: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), wantOk: true},
		{in: " 2024-05-01 ", want: time.Date(2024, 5, 1, 23, 59, 59, 999999999, time.Local), wantOk: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDeadline(tt.in)
			if ok != tt.wantOk {
				t.Fatalf("ParseDeadline(%q) ok = %v, want %v", tt.in, ok, tt.wantOk)
			}
			if ok && !got.Equal(tt.want) {
				t.Errorf("ParseDeadline(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
