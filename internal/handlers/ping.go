package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Pinger reads the backing store's clock.
type Pinger interface {
	CurrentTime(ctx context.Context) (time.Time, error)
}

// PingHandler probes the database. The endpoint never fails: an unreachable
// store degrades the message, not the status.
type PingHandler struct {
	db     Pinger
	logger *zap.Logger
}

// NewPingHandler creates the handler.
func NewPingHandler(db Pinger, logger *zap.Logger) *PingHandler {
	return &PingHandler{db: db, logger: logger}
}

// Ping reports store liveness.
func (h *PingHandler) Ping(ctx context.Context, _ *struct{}) (*PingResponse, error) {
	resp := &PingResponse{}

	ts, err := h.db.CurrentTime(ctx)
	if err != nil {
		h.logger.Warn("database unreachable", zap.Error(err))
		resp.Body.Message = "Database is not available"

		return resp, nil
	}

	resp.Body.Message = fmt.Sprintf("Connection established. Database time: %s", ts.Format(time.RFC3339))

	return resp, nil
}
