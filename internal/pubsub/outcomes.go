package pubsub

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/franceviagens/portal/internal/flow"
)

// TopicFlowOutcome carries a JSON flow.Outcome for every completed submission.
const TopicFlowOutcome = "auth.flow.outcome"

// OutcomeNotifier publishes flow outcomes on the bus. It implements flow.Notifier.
type OutcomeNotifier struct {
	pub Publisher
}

// NewOutcomeNotifier creates a notifier publishing through pub.
func NewOutcomeNotifier(pub Publisher) *OutcomeNotifier {
	return &OutcomeNotifier{pub: pub}
}

// Notify implements flow.Notifier. Publishing failures are logged, never
// returned, so a broken bus cannot change what the user sees.
func (n *OutcomeNotifier) Notify(ctx context.Context, o flow.Outcome) {
	payload, err := json.Marshal(o)
	if err != nil {
		slog.Error("Failed to encode flow outcome", "error", err)
		return
	}
	msg := Message{
		Topic:   TopicFlowOutcome,
		Key:     string(o.Flow),
		Payload: payload,
		Metadata: map[string]string{
			"reason": string(o.Reason),
		},
	}
	if err := n.pub.Publish(context.WithoutCancel(ctx), msg); err != nil {
		slog.Error("Failed to publish flow outcome", "flow", o.Flow, "error", err)
	}
}

// DecodeOutcome parses a message published by OutcomeNotifier.
func DecodeOutcome(msg Message) (flow.Outcome, error) {
	var o flow.Outcome
	err := json.Unmarshal(msg.Payload, &o)
	return o, err
}
