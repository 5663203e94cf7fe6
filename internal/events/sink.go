package events

import (
	"context"

	"go.uber.org/zap"
)

// Sink records consumed events in the service log. The relational usage
// history is written synchronously on the request path, so the sink only
// needs to surface the feed for operators.
type Sink struct {
	logger *zap.Logger
}

// NewSink creates a logging sink.
func NewSink(logger *zap.Logger) *Sink {
	return &Sink{logger: logger}
}

// URLCreated handles url.created events.
func (s *Sink) URLCreated(_ context.Context, event *URLCreated) error {
	s.logger.Info("url created",
		zap.Int64("url_id", event.URLID),
		zap.String("value", event.Value),
		zap.String("original", event.Original),
		zap.String("host", event.Host),
	)

	return nil
}

// URLAccessed handles url.accessed events.
func (s *Sink) URLAccessed(_ context.Context, event *URLAccessed) error {
	s.logger.Info("url accessed",
		zap.Int64("url_id", event.URLID),
		zap.String("host", event.Host),
		zap.Int("port", event.Port),
		zap.String("user_agent", event.UserAgent),
	)

	return nil
}
