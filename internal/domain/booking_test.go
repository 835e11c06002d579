package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingOverlaps(t *testing.T) {
	base := time.Date(2026, 9, 1, 14, 0, 0, 0, time.UTC)
	b := Booking{StartTime: base, EndTime: base.Add(time.Hour)}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"identical window", base, base.Add(time.Hour), true},
		{"partial overlap from the left", base.Add(-30 * time.Minute), base.Add(30 * time.Minute), true},
		{"partial overlap from the right", base.Add(30 * time.Minute), base.Add(90 * time.Minute), true},
		{"candidate contains booking", base.Add(-time.Hour), base.Add(2 * time.Hour), true},
		{"candidate inside booking", base.Add(15 * time.Minute), base.Add(45 * time.Minute), true},
		{"back to back before", base.Add(-time.Hour), base, false},
		{"back to back after", base.Add(time.Hour), base.Add(2 * time.Hour), false},
		{"fully before", base.Add(-2 * time.Hour), base.Add(-time.Hour), false},
		{"fully after", base.Add(2 * time.Hour), base.Add(3 * time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Overlaps(tt.start, tt.end))
		})
	}
}
