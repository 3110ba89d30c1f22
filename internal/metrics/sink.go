package metrics

import (
	"log/slog"
	"sync"
)

// SlogSink publishes events as structured log records. It is the default
// sink when no dedicated metrics pipeline is configured.
type SlogSink struct {
	logger *slog.Logger
}

// NewSlogSink creates a sink that writes events through the given logger.
func NewSlogSink(logger *slog.Logger) *SlogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogSink{
		logger: logger.With(slog.String("component", "metric_sink")),
	}
}

// Publish implements Sink.
func (s *SlogSink) Publish(event PaymentEvent) {
	s.logger.Info("payment metric",
		slog.String("event_id", event.ID.String()),
		slog.String("provider", event.Provider),
		slog.String("kind", event.Kind),
		slog.Int64("amount", event.Amount),
		slog.String("terminal", event.Terminal),
		slog.String("exception", event.Exception),
		slog.Int64("elapsed_ms", event.ElapsedMS),
	)
}

// MemorySink collects events in memory for inspection in tests.
type MemorySink struct {
	mu     sync.Mutex
	events []PaymentEvent
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{}
}

// Publish implements Sink.
func (s *MemorySink) Publish(event PaymentEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
}

// Events returns a copy of the collected events.
func (s *MemorySink) Events() []PaymentEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PaymentEvent, len(s.events))
	copy(out, s.events)
	return out
}

// MultiSink fans an event out to several sinks.
type MultiSink []Sink

// Publish implements Sink.
func (m MultiSink) Publish(event PaymentEvent) {
	for _, s := range m {
		s.Publish(event)
	}
}
