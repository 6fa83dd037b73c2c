package service

import (
	"context"
	"time"

	"vidshare/backend/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ActivityLogger writes audit entries off the request path through a
// bounded queue. Enqueueing never blocks: a full queue drops the entry
// with a log line. Write failures are logged and swallowed, the caller's
// primary action has already succeeded by the time the entry is drained.
type ActivityLogger struct {
	queue  chan model.Activity
	insert func(ctx context.Context, a model.Activity) error
	done   chan struct{}
}

// NewActivityLogger starts the drainer goroutine.
func NewActivityLogger(coll *mongo.Collection, size int) *ActivityLogger {
	l := &ActivityLogger{
		queue: make(chan model.Activity, size),
		insert: func(ctx context.Context, a model.Activity) error {
			_, err := coll.InsertOne(ctx, a)
			return err
		},
		done: make(chan struct{}),
	}

	go l.run()

	return l
}

// newActivityLoggerFunc exists for tests, which inject their own insert.
func newActivityLoggerFunc(size int, insert func(ctx context.Context, a model.Activity) error) *ActivityLogger {
	l := &ActivityLogger{
		queue:  make(chan model.Activity, size),
		insert: insert,
		done:   make(chan struct{}),
	}

	go l.run()

	return l
}

func (l *ActivityLogger) run() {
	for a := range l.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := l.insert(ctx, a); err != nil {
			zap.L().Error("Failed to log activity", zap.Error(err), zap.String("type", a.Type), zap.String("action", a.Action))
		}
		cancel()
	}
	close(l.done)
}

// Log enqueues one audit entry. Best-effort by design.
func (l *ActivityLogger) Log(user primitive.ObjectID, typ, action string, target primitive.ObjectID, targetType model.TargetKind, metadata map[string]any) {
	a := model.Activity{
		User:       user,
		Type:       typ,
		Action:     action,
		Target:     target,
		TargetType: targetType,
		Metadata:   metadata,
		CreatedAt:  time.Now(),
	}

	select {
	case l.queue <- a:
	default:
		zap.L().Warn("Activity queue full, entry dropped", zap.String("type", typ), zap.String("action", action))
	}
}

// Close drains whatever is still queued and stops the drainer.
func (l *ActivityLogger) Close() {
	close(l.queue)
	<-l.done
}
