// Package service holds the domain services: the per-record instantiations
// of the generic repository plus the thin rules around them.
package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/serroba/url-shorter/internal/model"
	"github.com/serroba/url-shorter/internal/repository"
	"github.com/serroba/url-shorter/internal/shortener"
)

// ShortURL manages the shorted_url table and the usage rows hanging off it.
type ShortURL struct {
	urls     *repository.Repo[model.ShortedURL]
	infos    *repository.Repo[model.ShortedURLInfo]
	pool     *pgxpool.Pool
	generate shortener.Generator
	logger   *zap.Logger
}

// NewShortURL wires the service.
func NewShortURL(
	urls *repository.Repo[model.ShortedURL],
	infos *repository.Repo[model.ShortedURLInfo],
	pool *pgxpool.Pool,
	generate shortener.Generator,
	logger *zap.Logger,
) *ShortURL {
	return &ShortURL{
		urls:     urls,
		infos:    infos,
		pool:     pool,
		generate: generate,
		logger:   logger,
	}
}

// Create shortens and persists one URL. A URL that was shortened before is a
// conflict: the existence check runs up front so the caller gets
// repository.ErrConflict without burning a call to the generator.
func (s *ShortURL) Create(ctx context.Context, original string) (*model.ShortedURL, error) {
	n, err := s.urls.Count(ctx, repository.Filter{"original": original})
	if err != nil {
		return nil, err
	}

	if n > 0 {
		return nil, fmt.Errorf("url %q: %w", original, repository.ErrConflict)
	}

	value, err := s.generate(ctx, original)
	if err != nil {
		return nil, err
	}

	created, err := s.urls.Create(ctx, model.ShortedURL{Value: value, Original: original})
	if err != nil {
		return nil, err
	}

	s.logger.Info("url shortened",
		zap.String("original", original),
		zap.String("value", created.Value),
	)

	return created, nil
}

// BulkCreate shortens a batch in one atomic unit. No per-item existence
// check: the unique constraints abort the whole transaction on a duplicate,
// so the batch still either fully lands or not at all.
func (s *ShortURL) BulkCreate(ctx context.Context, originals []string) ([]model.ShortedURL, error) {
	recs := make([]model.ShortedURL, 0, len(originals))

	for _, original := range originals {
		value, err := s.generate(ctx, original)
		if err != nil {
			return nil, err
		}

		recs = append(recs, model.ShortedURL{Value: value, Original: original})
	}

	return s.urls.BulkCreate(ctx, recs)
}

// Get returns the URL by id, repository.ErrNotFound when absent.
func (s *ShortURL) Get(ctx context.Context, id int64) (*model.ShortedURL, error) {
	return s.urls.Get(ctx, id)
}

// SoftDelete flags the record deleted. The row and its usage history stay
// queryable; the read path answers gone from then on.
func (s *ShortURL) SoftDelete(ctx context.Context, id int64) (*model.ShortedURL, error) {
	updated, err := s.urls.Update(ctx, id, repository.Fields{"deleted": true})
	if err != nil {
		return nil, err
	}

	s.logger.Info("url marked deleted",
		zap.Int64("id", updated.ID),
		zap.String("value", updated.Value),
	)

	return updated, nil
}

// Purge hard-deletes a URL together with its usage rows. The cascade is an
// explicit application-level step inside one transaction.
func (s *ShortURL) Purge(ctx context.Context, id int64) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("purge url %d: %w", id, err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := s.infos.WithTx(tx).DeleteWhere(ctx, repository.Filter{"url_id": id}); err != nil {
		return err
	}

	if err := s.urls.WithTx(tx).Delete(ctx, id); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("purge url %d: %w", id, err)
	}

	return nil
}
