package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHistoryGroupLabel(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC) // Wednesday noon

	tests := []struct {
		name      string
		watchedAt time.Time
		exp       string
	}{
		{"just now", now.Add(-time.Minute), "Today"},
		{"23 hours ago", now.Add(-23 * time.Hour), "Today"},
		{"25 hours ago", now.Add(-25 * time.Hour), "Yesterday"},
		{"47 hours ago", now.Add(-47 * time.Hour), "Yesterday"},
		{"two days ago", now.Add(-49 * time.Hour), "Monday"},
		{"five days ago", now.AddDate(0, 0, -5), "Friday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.exp, historyGroupLabel(tt.watchedAt, now))
		})
	}
}
