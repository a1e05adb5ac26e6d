package txview

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolveStatus(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		want Status
	}{
		{"exactly at threshold", now.Add(-DefaultPendingThreshold), StatusPending},
		{"one second past threshold", now.Add(-DefaultPendingThreshold - time.Second), StatusProcessed},
		{"today", now.Add(-time.Hour), StatusPending},
		{"future dated", now.Add(24 * time.Hour), StatusPending},
		{"last month", now.AddDate(0, -1, 0), StatusProcessed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveStatus(tt.date, now, DefaultPendingThreshold))
		})
	}
}

func TestResolveStatus_CustomThreshold(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	date := now.Add(-36 * time.Hour)

	assert.Equal(t, StatusPending, ResolveStatus(date, now, DefaultPendingThreshold))
	assert.Equal(t, StatusProcessed, ResolveStatus(date, now, 24*time.Hour))
}
