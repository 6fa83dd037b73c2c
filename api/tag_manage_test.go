package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTagDocs(t *testing.T) {
	now := time.Now()
	taken := map[string]bool{"music": true}

	tags := newTagDocs([]string{"music", "gaming", "travel", "gaming"}, taken, now)

	require.Len(t, tags, 2)
	assert.Equal(t, "gaming", tags[0].Name)
	assert.Equal(t, "travel", tags[1].Name)

	// Client-side IDs, so the response can echo real ObjectIDs
	assert.False(t, tags[0].ID.IsZero())
	assert.False(t, tags[1].ID.IsZero())
	assert.NotEqual(t, tags[0].ID, tags[1].ID)

	for _, tag := range tags {
		assert.Equal(t, now, tag.CreatedAt)
		assert.Equal(t, now, tag.UpdatedAt)
	}
}
