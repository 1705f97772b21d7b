package providers

import (
	"github.com/samber/do/v2"

	"github.com/fandexapp/fandex-server/internal/auth"
	"github.com/fandexapp/fandex-server/internal/logger"
	"github.com/fandexapp/fandex-server/internal/metadata/jikan"
	"github.com/fandexapp/fandex-server/internal/metadata/openlibrary"
	"github.com/fandexapp/fandex-server/internal/service"
)

// ProvideSessionService provides the session management service.
func ProvideSessionService(i do.Injector) (*service.SessionService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSessionService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	sessionService := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, sessionService, log.Logger), nil
}

// ProvideFavoriteService provides the favorites service.
func ProvideFavoriteService(i do.Injector) (*service.FavoriteService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewFavoriteService(storeHandle.Store, log.Logger), nil
}

// ProvideSearchService provides the catalog search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	animeClient := do.MustInvoke[*jikan.Client](i)
	bookClient := do.MustInvoke[*openlibrary.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSearchService(storeHandle.Store, animeClient, bookClient, log.Logger), nil
}

// ProvideRecommendService provides the recommendation service.
func ProvideRecommendService(i do.Injector) (*service.RecommendService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	animeClient := do.MustInvoke[*jikan.Client](i)
	bookClient := do.MustInvoke[*openlibrary.Client](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewRecommendService(storeHandle.Store, animeClient, bookClient, log.Logger), nil
}
