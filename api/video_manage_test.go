package api

import (
	"testing"
	"time"

	"vidshare/backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeVideoUpdate(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	future := now.Add(48 * time.Hour).Format(time.RFC3339)
	past := now.Add(-48 * time.Hour).Format(time.RFC3339)

	t.Run("coerces scheduledFor without a status change", func(t *testing.T) {
		data := map[string]any{"scheduledFor": future}
		require.NoError(t, normalizeVideoUpdate(data, now))

		// Must be a real timestamp, never the raw JSON string
		parsed, ok := data["scheduledFor"].(time.Time)
		require.True(t, ok)
		assert.Equal(t, now.Add(48*time.Hour), parsed.UTC())
	})

	t.Run("rejects an uncastable scheduledFor", func(t *testing.T) {
		for _, v := range []any{"next week", "2024-13-99", 17, true} {
			data := map[string]any{"scheduledFor": v}
			assert.EqualError(t, normalizeVideoUpdate(data, now), "Invalid scheduledFor date", "%v", v)
		}
	})

	t.Run("scheduled status needs a future date", func(t *testing.T) {
		data := map[string]any{"status": model.VideoStatusScheduled, "scheduledFor": past}
		assert.EqualError(t, normalizeVideoUpdate(data, now), "Scheduled videos need a future scheduledFor date")

		data = map[string]any{"status": model.VideoStatusScheduled}
		assert.EqualError(t, normalizeVideoUpdate(data, now), "Scheduled videos need a future scheduledFor date")
	})

	t.Run("scheduling clears publishedAt", func(t *testing.T) {
		data := map[string]any{"status": model.VideoStatusScheduled, "scheduledFor": future}
		require.NoError(t, normalizeVideoUpdate(data, now))

		assert.Nil(t, data["publishedAt"])
		assert.IsType(t, time.Time{}, data["scheduledFor"])
	})

	t.Run("publishing stamps publishedAt", func(t *testing.T) {
		data := map[string]any{"status": model.VideoStatusPublished}
		require.NoError(t, normalizeVideoUpdate(data, now))

		assert.Equal(t, now, data["publishedAt"])
		assert.Equal(t, now, data["updatedAt"])
	})

	t.Run("rejects unknown status and visibility", func(t *testing.T) {
		assert.EqualError(t, normalizeVideoUpdate(map[string]any{"status": "paused"}, now), "Invalid video status")
		assert.EqualError(t, normalizeVideoUpdate(map[string]any{"visibility": "secret"}, now), "Invalid video visibility")
	})
}
