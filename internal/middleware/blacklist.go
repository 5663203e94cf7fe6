package middleware

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/serroba/url-shorter/internal/handlers"
)

// BlockChecker answers whether a host is currently banned.
type BlockChecker interface {
	Blocked(ctx context.Context, host string) (bool, error)
}

// BlacklistGate rejects requests from blacklisted hosts before any operation
// handler runs. It reads the client host captured by RequestMeta, so it must
// be registered behind it.
func BlacklistGate(api huma.API, checker BlockChecker, logger *zap.Logger) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		host := handlers.RequestMetaFromContext(ctx.Context()).Host

		blocked, err := checker.Blocked(ctx.Context(), host)
		if err != nil {
			logger.Error("blacklist check failed",
				zap.String("host", host),
				zap.Error(err),
			)
			_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error", err)

			return
		}

		if blocked {
			logger.Info("blacklisted client connection attempt", zap.String("host", host))
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "You've been temporarily blacklisted")

			return
		}

		next(ctx)
	}
}
