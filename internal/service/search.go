package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fandexapp/fandex-server/internal/domain"
	domainerrors "github.com/fandexapp/fandex-server/internal/errors"
	"github.com/fandexapp/fandex-server/internal/store"
)

// animeCatalog is the slice of the anime metadata client used by search
// and recommendations.
type animeCatalog interface {
	Search(ctx context.Context, query string) ([]domain.CatalogItem, error)
	Recommendations(ctx context.Context, animeID string) ([]domain.CatalogItem, error)
}

// bookCatalog is the slice of the book metadata client used by search
// and recommendations.
type bookCatalog interface {
	Search(ctx context.Context, query string) ([]domain.CatalogItem, error)
	SearchByAuthor(ctx context.Context, author string, limit int) ([]domain.CatalogItem, error)
}

// SearchService queries the external catalogs and annotates results with
// the requesting user's favorite state.
type SearchService struct {
	store  store.Store
	anime  animeCatalog
	books  bookCatalog
	logger *slog.Logger
}

// NewSearchService creates a new catalog search service.
func NewSearchService(store store.Store, anime animeCatalog, books bookCatalog, logger *slog.Logger) *SearchService {
	return &SearchService{
		store:  store,
		anime:  anime,
		books:  books,
		logger: logger,
	}
}

// SearchAnime searches the anime catalog and marks items the user has
// already favorited.
func (s *SearchService) SearchAnime(ctx context.Context, userID, query string) ([]domain.CatalogItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation("q is required")
	}

	items, err := s.anime.Search(ctx, query)
	if err != nil {
		return nil, domainerrors.CatalogUnavailable("anime catalog request failed").WithCause(err)
	}

	if err := s.markFavorited(ctx, userID, domain.ContentTypeAnime, items); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Debug("Anime search complete", "query", query, "results", len(items))
	}
	return items, nil
}

// SearchBooks searches the book catalog and marks items the user has
// already favorited.
func (s *SearchService) SearchBooks(ctx context.Context, userID, query string) ([]domain.CatalogItem, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domainerrors.Validation("q is required")
	}

	items, err := s.books.Search(ctx, query)
	if err != nil {
		return nil, domainerrors.CatalogUnavailable("book catalog request failed").WithCause(err)
	}

	if err := s.markFavorited(ctx, userID, domain.ContentTypeBook, items); err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.Debug("Book search complete", "query", query, "results", len(items))
	}
	return items, nil
}

// markFavorited sets the Favorited flag on each item present in the user's
// favorites. Items without an ID are never marked.
func (s *SearchService) markFavorited(ctx context.Context, userID string, contentType domain.ContentType, items []domain.CatalogItem) error {
	if len(items) == 0 {
		return nil
	}

	favorited, err := favoriteIDSet(ctx, s.store, userID, contentType)
	if err != nil {
		return fmt.Errorf("load favorites: %w", err)
	}

	for i := range items {
		if items[i].ID == "" {
			continue
		}
		_, ok := favorited[items[i].ID]
		items[i].Favorited = ok
	}
	return nil
}
