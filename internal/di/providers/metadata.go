package providers

import (
	"github.com/samber/do/v2"

	"github.com/fandexapp/fandex-server/internal/config"
	"github.com/fandexapp/fandex-server/internal/logger"
	"github.com/fandexapp/fandex-server/internal/metadata/jikan"
	"github.com/fandexapp/fandex-server/internal/metadata/openlibrary"
	"github.com/fandexapp/fandex-server/internal/metrics"
)

// ProvideJikanClient provides the anime catalog client.
func ProvideJikanClient(i do.Injector) (*jikan.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	collector := do.MustInvoke[*metrics.Collector](i)

	client := jikan.NewClient(cfg.Catalog.JikanBaseURL, log.Logger, collector)
	log.Info("Anime catalog client initialized", "base_url", cfg.Catalog.JikanBaseURL)

	return client, nil
}

// ProvideOpenLibraryClient provides the book catalog client.
func ProvideOpenLibraryClient(i do.Injector) (*openlibrary.Client, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	collector := do.MustInvoke[*metrics.Collector](i)

	client := openlibrary.NewClient(cfg.Catalog.OpenLibraryBaseURL, log.Logger, collector)
	log.Info("Book catalog client initialized", "base_url", cfg.Catalog.OpenLibraryBaseURL)

	return client, nil
}
