// Package handlers translates HTTP operations into domain service calls.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/serroba/url-shorter/internal/events"
	"github.com/serroba/url-shorter/internal/model"
	"github.com/serroba/url-shorter/internal/repository"
)

// ShortURLService is the handler-facing surface of the short URL domain.
type ShortURLService interface {
	Create(ctx context.Context, original string) (*model.ShortedURL, error)
	BulkCreate(ctx context.Context, originals []string) ([]model.ShortedURL, error)
	Get(ctx context.Context, id int64) (*model.ShortedURL, error)
	SoftDelete(ctx context.Context, id int64) (*model.ShortedURL, error)
}

// UsageService records and reports usage events.
type UsageService interface {
	Record(ctx context.Context, info model.ShortedURLInfo) (*model.ShortedURLInfo, error)
	Count(ctx context.Context, urlID int64) (int64, error)
	History(ctx context.Context, urlID int64, skip, limit int) ([]model.ShortedURLInfo, error)
}

// ShortURLHandler handles the short URL lifecycle operations.
type ShortURLHandler struct {
	urls            ShortURLService
	usage           UsageService
	publishCreated  events.Publish[events.URLCreated]
	publishAccessed events.Publish[events.URLAccessed]
	logger          *zap.Logger
}

// NewShortURLHandler creates the handler.
func NewShortURLHandler(
	urls ShortURLService,
	usage UsageService,
	publishCreated events.Publish[events.URLCreated],
	publishAccessed events.Publish[events.URLAccessed],
	logger *zap.Logger,
) *ShortURLHandler {
	return &ShortURLHandler{
		urls:            urls,
		usage:           usage,
		publishCreated:  publishCreated,
		publishAccessed: publishAccessed,
		logger:          logger,
	}
}

// Create shortens one URL. A previously shortened original is a 400.
func (h *ShortURLHandler) Create(ctx context.Context, req *CreateShortURLRequest) (*CreateShortURLResponse, error) {
	created, err := h.urls.Create(ctx, req.Body.OriginalURL)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, huma.Error400BadRequest("URL already exists")
		}

		return nil, huma.Error500InternalServerError("failed to shorten url")
	}

	meta := RequestMetaFromContext(ctx)
	event := &events.URLCreated{
		URLID:     created.ID,
		Value:     created.Value,
		Original:  created.Original,
		CreatedAt: created.CreatedAt,
		Host:      meta.Host,
		UserAgent: meta.UserAgent,
	}

	if err := h.publishCreated(event); err != nil {
		h.logger.Error("failed to publish url created event",
			zap.Int64("url_id", created.ID),
			zap.Error(err),
		)
	}

	return &CreateShortURLResponse{Body: *created}, nil
}

// BulkShorten shortens a batch atomically, results in input order.
func (h *ShortURLHandler) BulkShorten(ctx context.Context, req *BulkShortenRequest) (*BulkShortenResponse, error) {
	originals := make([]string, 0, len(req.Body))
	for _, item := range req.Body {
		originals = append(originals, item.OriginalURL)
	}

	created, err := h.urls.BulkCreate(ctx, originals)
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, huma.Error400BadRequest("duplicate URL in batch")
		}

		return nil, huma.Error500InternalServerError("failed to shorten urls")
	}

	results := make([]BulkShortenResult, 0, len(created))
	for _, u := range created {
		results = append(results, BulkShortenResult{ShortID: u.ID, ShortURL: u.Value})
	}

	return &BulkShortenResponse{Body: results}, nil
}

// Redirect answers 307 to the original URL and records a usage event. A
// soft-deleted URL answers gone without recording anything.
func (h *ShortURLHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	u, err := h.urls.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, huma.Error400BadRequest("URL is not found")
		}

		return nil, huma.Error500InternalServerError("failed to get url")
	}

	if u.Deleted {
		return nil, huma.NewError(http.StatusGone, "URL is deleted")
	}

	meta := RequestMetaFromContext(ctx)

	userAgent := meta.UserAgent
	if userAgent == "" {
		userAgent = "unknown"
	}

	if _, err := h.usage.Record(ctx, model.ShortedURLInfo{
		Host:      meta.Host,
		Port:      meta.Port,
		UserAgent: userAgent,
		URLID:     u.ID,
	}); err != nil {
		return nil, huma.Error500InternalServerError("failed to log url use")
	}

	event := &events.URLAccessed{
		URLID:      u.ID,
		Host:       meta.Host,
		Port:       meta.Port,
		UserAgent:  userAgent,
		AccessedAt: time.Now(),
	}

	if err := h.publishAccessed(event); err != nil {
		h.logger.Error("failed to publish url accessed event",
			zap.Int64("url_id", u.ID),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{Status: http.StatusTemporaryRedirect}
	resp.Headers.Location = u.Original

	return resp, nil
}

// Delete soft-deletes a short URL.
func (h *ShortURLHandler) Delete(ctx context.Context, req *DeleteShortURLRequest) (*struct{}, error) {
	if _, err := h.urls.SoftDelete(ctx, req.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, huma.Error400BadRequest("URL is not found")
		}

		return nil, huma.Error500InternalServerError("failed to delete url")
	}

	return nil, nil
}

// Status returns the usage count, or the paginated event history when
// full_info is requested.
func (h *ShortURLHandler) Status(ctx context.Context, req *URLStatusRequest) (*URLStatusResponse, error) {
	resp := &URLStatusResponse{}

	if !req.FullInfo {
		n, err := h.usage.Count(ctx, req.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to count url uses")
		}

		resp.Body.Count = &n

		return resp, nil
	}

	uses, err := h.usage.History(ctx, req.ID, req.Offset, req.MaxResult)
	if err != nil {
		return nil, huma.Error500InternalServerError("failed to read url uses")
	}

	resp.Body.Uses = uses

	return resp, nil
}
