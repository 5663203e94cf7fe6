package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/serroba/url-shorter/internal/model"
	"github.com/serroba/url-shorter/internal/repository"
)

// BlacklistService is the handler-facing surface of blacklist management.
// The gate's Blocked check lives with the middleware, not here.
type BlacklistService interface {
	Add(ctx context.Context, host string, until *time.Time) (*model.BlacklistedClient, error)
	List(ctx context.Context, skip, limit int) ([]model.BlacklistedClient, error)
	Remove(ctx context.Context, id int64) error
}

// BlacklistHandler manages blacklist entries.
type BlacklistHandler struct {
	blacklist BlacklistService
}

// NewBlacklistHandler creates the handler.
func NewBlacklistHandler(blacklist BlacklistService) *BlacklistHandler {
	return &BlacklistHandler{blacklist: blacklist}
}

// Add bans a host.
func (h *BlacklistHandler) Add(ctx context.Context, req *AddBlacklistRequest) (*AddBlacklistResponse, error) {
	created, err := h.blacklist.Add(ctx, req.Body.Host, req.Body.Until)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to blacklist host")
	}

	return &AddBlacklistResponse{Body: *created}, nil
}

// List shows a page of the current blacklist.
func (h *BlacklistHandler) List(ctx context.Context, req *ListBlacklistRequest) (*ListBlacklistResponse, error) {
	entries, err := h.blacklist.List(ctx, req.Offset, req.MaxResult)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to list blacklist")
	}

	return &ListBlacklistResponse{Body: entries}, nil
}

// Remove lifts a ban.
func (h *BlacklistHandler) Remove(ctx context.Context, req *RemoveBlacklistRequest) (*struct{}, error) {
	if err := h.blacklist.Remove(ctx, req.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, huma.Error400BadRequest("Host is not in blacklist")
		}

		return nil, huma.Error500InternalServerError("failed to remove blacklist entry")
	}

	return nil, nil
}
