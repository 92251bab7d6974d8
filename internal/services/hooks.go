package services

//go:generate mockgen -source=hooks.go -destination=hooks_mock.go -package=services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

// CommitHook schedules fn to run once the request transaction bound to ctx
// has committed. It must run fn immediately when there is no transaction.
type CommitHook func(ctx context.Context, fn func())

// EventPublisher delivers recipe events.
type EventPublisher interface {
	Publish(ctx context.Context, event models.RecipeEvent)
}

// Option configures services that publish side effects.
type Option func(*hooks)

// WithCommitHook defers side effects until the transaction commits.
func WithCommitHook(h CommitHook) Option {
	return func(o *hooks) {
		if h != nil {
			o.afterCommit = h
		}
	}
}

// WithEventPublisher enables recipe events.
func WithEventPublisher(p EventPublisher) Option {
	return func(o *hooks) {
		o.publisher = p
	}
}

type hooks struct {
	afterCommit CommitHook
	publisher   EventPublisher
}

func newHooks(opts []Option) hooks {
	h := hooks{
		afterCommit: func(_ context.Context, fn func()) { fn() },
	}
	for _, opt := range opts {
		opt(&h)
	}
	return h
}

// publish sends a recipe event after commit. Publishing runs detached from
// the request context, which is canceled once the response is written.
func (h hooks) publish(ctx context.Context, eventType string, recipeID, userID int64) {
	if h.publisher == nil {
		return
	}
	event := models.RecipeEvent{
		EventID:   uuid.NewString(),
		Type:      eventType,
		RecipeID:  recipeID,
		UserID:    userID,
		Timestamp: time.Now().Unix(),
	}
	h.afterCommit(ctx, func() {
		h.publisher.Publish(context.WithoutCancel(ctx), event)
	})
}
