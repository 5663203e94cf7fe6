package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/serroba/url-shorter/internal/model"
	"github.com/serroba/url-shorter/internal/repository"
)

// Blacklist manages banned hosts and answers the gate's policy question.
type Blacklist struct {
	clients       *repository.Repo[model.BlacklistedClient]
	enforceExpiry bool
	now           func() time.Time
	logger        *zap.Logger
}

// NewBlacklist wires the service. With enforceExpiry set, entries whose
// until lies in the past stop blocking; without it any entry for the host
// blocks, matching the historical behavior. Rows are never purged
// automatically either way.
func NewBlacklist(
	clients *repository.Repo[model.BlacklistedClient],
	enforceExpiry bool,
	logger *zap.Logger,
) *Blacklist {
	return &Blacklist{
		clients:       clients,
		enforceExpiry: enforceExpiry,
		now:           time.Now,
		logger:        logger,
	}
}

// Add bans a host, optionally until a point in time. A nil until blocks
// indefinitely.
func (b *Blacklist) Add(ctx context.Context, host string, until *time.Time) (*model.BlacklistedClient, error) {
	created, err := b.clients.Create(ctx, model.BlacklistedClient{Host: host, Until: until})
	if err != nil {
		return nil, err
	}

	if until != nil {
		b.logger.Info("host blacklisted", zap.String("host", host), zap.Time("until", *until))
	} else {
		b.logger.Info("host blacklisted indefinitely", zap.String("host", host))
	}

	return created, nil
}

// List returns a page of blacklist entries.
func (b *Blacklist) List(ctx context.Context, skip, limit int) ([]model.BlacklistedClient, error) {
	return b.clients.GetMulti(ctx, nil, skip, limit)
}

// Remove deletes one entry, repository.ErrNotFound when absent.
func (b *Blacklist) Remove(ctx context.Context, id int64) error {
	if err := b.clients.Delete(ctx, id); err != nil {
		return err
	}

	b.logger.Info("host removed from blacklist", zap.Int64("id", id))

	return nil
}

// Blocked reports whether the host is currently banned.
func (b *Blacklist) Blocked(ctx context.Context, host string) (bool, error) {
	if !b.enforceExpiry {
		n, err := b.clients.Count(ctx, repository.Filter{"host": host})
		if err != nil {
			return false, err
		}

		return n > 0, nil
	}

	// Page through every row for the host: an active entry must block no
	// matter how many expired ones sort before it.
	for skip := 0; ; skip += repository.DefaultLimit {
		entries, err := b.clients.GetMulti(ctx, repository.Filter{"host": host}, skip, repository.DefaultLimit)
		if err != nil {
			return false, err
		}

		if anyActive(entries, b.now()) {
			return true, nil
		}

		if len(entries) < repository.DefaultLimit {
			return false, nil
		}
	}
}

// anyActive reports whether at least one entry still blocks at the given
// time. A nil until never expires.
func anyActive(entries []model.BlacklistedClient, now time.Time) bool {
	for _, e := range entries {
		if e.Until == nil || e.Until.After(now) {
			return true
		}
	}

	return false
}
