package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"vidshare/backend/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestActivityLoggerDeliversEntries(t *testing.T) {
	var mu sync.Mutex
	got := []model.Activity{}

	l := newActivityLoggerFunc(16, func(_ context.Context, a model.Activity) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, a)
		return nil
	})

	user := primitive.NewObjectID()
	target := primitive.NewObjectID()

	l.Log(user, model.ActivityTypeVideo, model.ActionCreate, target, model.TargetVideo, map[string]any{"title": "clip"})
	l.Log(user, model.ActivityTypeLike, model.ActionLike, target, model.TargetVideo, nil)

	// Close drains everything still queued
	l.Close()

	require.Len(t, got, 2)
	assert.Equal(t, model.ActionCreate, got[0].Action)
	assert.Equal(t, user, got[0].User)
	assert.Equal(t, "clip", got[0].Metadata["title"])
	assert.Equal(t, model.ActionLike, got[1].Action)
	assert.False(t, got[0].CreatedAt.IsZero())
}

func TestActivityLoggerSwallowsInsertFailures(t *testing.T) {
	calls := 0

	l := newActivityLoggerFunc(16, func(_ context.Context, a model.Activity) error {
		calls++
		return errors.New("store down")
	})

	// Must not panic or block the caller
	l.Log(primitive.NewObjectID(), model.ActivityTypeUser, model.ActionCreate, primitive.NewObjectID(), model.TargetUser, nil)
	l.Close()

	assert.Equal(t, 1, calls)
}

func TestActivityLoggerDropsOnOverflow(t *testing.T) {
	release := make(chan struct{})
	delivered := 0

	l := newActivityLoggerFunc(1, func(_ context.Context, a model.Activity) error {
		<-release
		delivered++
		return nil
	})

	user := primitive.NewObjectID()
	target := primitive.NewObjectID()

	// First entry may be picked up by the drainer, the second fills the
	// queue, everything after that is dropped without blocking
	for i := 0; i < 10; i++ {
		l.Log(user, model.ActivityTypeWatch, model.ActionView, target, model.TargetVideo, nil)
	}

	close(release)
	l.Close()

	assert.LessOrEqual(t, delivered, 2)
	assert.Greater(t, delivered, 0)
}
