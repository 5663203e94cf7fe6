package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/samber/do"
	"go.uber.org/zap"

	"github.com/serroba/url-shorter/internal/container"
	"github.com/serroba/url-shorter/internal/events"
)

func registerPackages(injector *do.Injector, options *container.Options) {
	do.ProvideValue(injector, options)
	container.LoggerPackage(injector)
	container.PostgresPackage(injector)
	container.RedisPackage(injector)
	container.RepositoryPackage(injector)
	container.ShortenerPackage(injector)
	container.ServicePackage(injector)
	container.PubSubPackage(injector)
	container.ConsumerPackage(injector)
	container.HTTPPackage(injector)
}

func main() {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cli := humacli.New(func(hooks humacli.Hooks, options *container.Options) {
		injector := do.New()
		registerPackages(injector, options)

		logger := do.MustInvoke[*zap.Logger](injector)

		var server *http.Server

		hooks.OnStart(func() {
			router := do.MustInvoke[*chi.Mux](injector)

			// Invoke API to trigger route registration
			_ = do.MustInvoke[huma.API](injector)

			group := do.MustInvoke[*events.Group](injector)
			if err := group.Start(context.Background()); err != nil {
				logger.Fatal("event consumers failed to start", zap.Error(err))
			}

			server = &http.Server{
				Addr:              fmt.Sprintf("%s:%d", options.Host, options.Port),
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			logger.Info("server starting",
				zap.String("service", options.ServiceName),
				zap.String("host", options.Host),
				zap.Int("port", options.Port),
				zap.String("shortener", options.Shortener),
			)

			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Fatal("server failed", zap.Error(err))
			}
		})

		hooks.OnStop(func() {
			logger.Info("shutting down")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if server != nil {
				if err := server.Shutdown(ctx); err != nil {
					logger.Error("server shutdown error", zap.Error(err))
				}
			}

			if err := injector.Shutdown(); err != nil {
				logger.Error("service shutdown error", zap.Error(err))
			}

			logger.Info("shutdown complete")
		})
	})

	cli.Run()
}
