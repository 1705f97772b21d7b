// Package di provides dependency injection configuration for the Fandex server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/fandexapp/fandex-server/internal/auth"
	"github.com/fandexapp/fandex-server/internal/config"
	"github.com/fandexapp/fandex-server/internal/di/providers"
	"github.com/fandexapp/fandex-server/internal/logger"
	"github.com/fandexapp/fandex-server/internal/metadata/jikan"
	"github.com/fandexapp/fandex-server/internal/metadata/openlibrary"
	"github.com/fandexapp/fandex-server/internal/metrics"
	"github.com/fandexapp/fandex-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Observability
	do.Provide(injector, providers.ProvideMetricsRegistry)
	do.Provide(injector, providers.ProvideMetricsCollector)

	// Catalog clients
	do.Provide(injector, providers.ProvideJikanClient)
	do.Provide(injector, providers.ProvideOpenLibraryClient)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideSessionService)
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideFavoriteService)
	do.Provide(injector, providers.ProvideSearchService)
	do.Provide(injector, providers.ProvideRecommendService)

	// Workers
	do.Provide(injector, providers.ProvideSessionCleanupJob)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*metrics.Collector](injector)
	_ = do.MustInvoke[*jikan.Client](injector)
	_ = do.MustInvoke[*openlibrary.Client](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.SessionService](injector)
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.FavoriteService](injector)
	_ = do.MustInvoke[*service.SearchService](injector)
	_ = do.MustInvoke[*service.RecommendService](injector)

	// Workers
	_ = do.MustInvoke[*providers.SessionCleanupJob](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
