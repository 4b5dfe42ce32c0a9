package events

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes every emitted event to the structured log.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements Notifier.
func (l LogNotifier) Notify(_ context.Context, event Event) error {
	l.Logger.Info().
		Str("event_id", event.ID).
		Str("topic", event.Topic).
		Str("session_id", event.SessionID).
		RawJSON("payload", event.Payload).
		Time("occurred_at", event.OccurredAt).
		Msg("domain_event")
	return nil
}

// CounterNotifier bumps a per-topic counter. The obs package supplies the
// concrete Prometheus increment at wiring time.
type CounterNotifier struct {
	Inc func(topic string)
}

// Notify implements Notifier.
func (c CounterNotifier) Notify(_ context.Context, event Event) error {
	if c.Inc != nil {
		c.Inc(event.Topic)
	}
	return nil
}
