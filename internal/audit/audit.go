// Package audit writes flow outcomes to the operator log.
package audit

import (
	"context"
	"log/slog"

	"github.com/franceviagens/portal/internal/flow"
	"github.com/franceviagens/portal/internal/pubsub"
)

// Logger subscribes to flow outcomes and logs each one.
type Logger struct {
	log *slog.Logger
}

// New creates an audit Logger writing to log, or to slog.Default() when nil.
func New(log *slog.Logger) *Logger {
	if log == nil {
		log = slog.Default()
	}
	return &Logger{log: log.With("component", "audit")}
}

// Start subscribes to pubsub.TopicFlowOutcome until ctx is canceled.
func (l *Logger) Start(ctx context.Context, sub pubsub.Subscriber) error {
	return sub.Subscribe(ctx, pubsub.TopicFlowOutcome, l.handle)
}

func (l *Logger) handle(ctx context.Context, msg pubsub.Message) error {
	o, err := pubsub.DecodeOutcome(msg)
	if err != nil {
		// Redelivery cannot fix a bad payload.
		l.log.Error("Discarding undecodable flow outcome", "error", err)
		return nil
	}

	level := slog.LevelInfo
	switch o.Reason {
	case flow.ReasonUnreachable:
		level = slog.LevelWarn
	case flow.ReasonInvalid:
		level = slog.LevelDebug
	}
	l.log.Log(ctx, level, "Flow submission completed",
		"flow", o.Flow,
		"reason", o.Reason,
		"state", o.State.String(),
		"email", o.Email,
		"status", o.StatusCode,
		"at", o.At,
	)
	return nil
}
