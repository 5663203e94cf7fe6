package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/serroba/url-shorter/internal/model"
	"github.com/serroba/url-shorter/internal/repository"
)

// Usage records and reports access events against short URLs.
type Usage struct {
	infos  *repository.Repo[model.ShortedURLInfo]
	logger *zap.Logger
}

// NewUsage wires the service.
func NewUsage(infos *repository.Repo[model.ShortedURLInfo], logger *zap.Logger) *Usage {
	return &Usage{infos: infos, logger: logger}
}

// Record persists one usage event and returns it with id and timestamp set.
func (u *Usage) Record(ctx context.Context, info model.ShortedURLInfo) (*model.ShortedURLInfo, error) {
	created, err := u.infos.Create(ctx, info)
	if err != nil {
		return nil, err
	}

	u.logger.Info("logged url use",
		zap.Int64("url_id", created.URLID),
		zap.String("host", created.Host),
		zap.Int("port", created.Port),
	)

	return created, nil
}

// Count returns the number of recorded uses for a URL.
func (u *Usage) Count(ctx context.Context, urlID int64) (int64, error) {
	return u.infos.Count(ctx, repository.Filter{"url_id": urlID})
}

// History returns a page of usage events for a URL, oldest first.
func (u *Usage) History(ctx context.Context, urlID int64, skip, limit int) ([]model.ShortedURLInfo, error) {
	return u.infos.GetMulti(ctx, repository.Filter{"url_id": urlID}, skip, limit)
}
