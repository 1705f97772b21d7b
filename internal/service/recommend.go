package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fandexapp/fandex-server/internal/domain"
	"github.com/fandexapp/fandex-server/internal/metadata/openlibrary"
	"github.com/fandexapp/fandex-server/internal/store"
)

const (
	// bookSeedLimit bounds how many favorite books seed author searches.
	bookSeedLimit = 3
	// bookPerAuthorLimit caps results requested per author search.
	bookPerAuthorLimit = 5
	// bookResultLimit caps the total book recommendations returned.
	bookResultLimit = 12
)

// RecommendationSet holds the aggregated recommendations for a user.
// Warning is set when some remote calls failed and the items are partial.
// EmptyHint is set when the user has no favorites of the requested type,
// so no seeds were available.
type RecommendationSet struct {
	Items     []domain.CatalogItem `json:"items"`
	Warning   string               `json:"warning,omitempty"`
	EmptyHint bool                 `json:"empty_hint,omitempty"`
}

// RecommendService aggregates recommendations from the external catalogs,
// seeded by the user's favorites.
type RecommendService struct {
	store  store.Store
	anime  animeCatalog
	books  bookCatalog
	logger *slog.Logger
}

// NewRecommendService creates a new recommendation service.
func NewRecommendService(store store.Store, anime animeCatalog, books bookCatalog, logger *slog.Logger) *RecommendService {
	return &RecommendService{
		store:  store,
		anime:  anime,
		books:  books,
		logger: logger,
	}
}

// RecommendAnime fetches recommendations for each of the user's favorite
// anime. Results are deduplicated keeping the first occurrence, and titles
// the user has already favorited are excluded. If a remote call fails,
// results collected so far are returned with a warning.
func (s *RecommendService) RecommendAnime(ctx context.Context, userID string) (*RecommendationSet, error) {
	favorites, err := s.store.ListFavorites(ctx, userID, domain.ContentTypeAnime)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if len(favorites) == 0 {
		return &RecommendationSet{Items: []domain.CatalogItem{}, EmptyHint: true}, nil
	}

	exclude := make(map[string]struct{}, len(favorites))
	for _, fav := range favorites {
		exclude[fav.ContentID] = struct{}{}
	}

	set := &RecommendationSet{Items: []domain.CatalogItem{}}
	seen := make(map[string]struct{})

	for _, fav := range favorites {
		if fav.ContentID == "" {
			continue
		}

		items, err := s.anime.Recommendations(ctx, fav.ContentID)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("Anime recommendation fetch failed",
					"user_id", userID,
					"seed_id", fav.ContentID,
					"error", err,
				)
			}
			set.Warning = "some recommendations could not be fetched"
			return set, nil
		}

		for _, item := range items {
			if item.ID == "" {
				continue
			}
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			if _, ok := exclude[item.ID]; ok {
				continue
			}
			set.Items = append(set.Items, item)
		}
	}

	if s.logger != nil {
		s.logger.Debug("Anime recommendations complete",
			"user_id", userID,
			"seeds", len(favorites),
			"results", len(set.Items),
		)
	}
	return set, nil
}

// RecommendBooks searches for more works by the authors of the user's
// most recent favorite books. At most three favorites seed the searches,
// and the combined result is capped. Works the user has already favorited
// are excluded. If a remote call fails, results collected so far are
// returned with a warning.
func (s *RecommendService) RecommendBooks(ctx context.Context, userID string) (*RecommendationSet, error) {
	favorites, err := s.store.ListFavorites(ctx, userID, domain.ContentTypeBook)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	if len(favorites) == 0 {
		return &RecommendationSet{Items: []domain.CatalogItem{}, EmptyHint: true}, nil
	}

	exclude := make(map[string]struct{}, len(favorites))
	for _, fav := range favorites {
		exclude[fav.ContentID] = struct{}{}
	}

	seeds := favorites
	if len(seeds) > bookSeedLimit {
		seeds = seeds[:bookSeedLimit]
	}

	set := &RecommendationSet{Items: []domain.CatalogItem{}}
	seen := make(map[string]struct{})

	for _, fav := range seeds {
		// A work with no usable author cannot seed an author search.
		if fav.Author == "" || fav.Author == openlibrary.UnknownAuthor {
			continue
		}

		items, err := s.books.SearchByAuthor(ctx, fav.Author, bookPerAuthorLimit)
		if err != nil {
			if s.logger != nil {
				s.logger.Warn("Book recommendation fetch failed",
					"user_id", userID,
					"author", fav.Author,
					"error", err,
				)
			}
			set.Warning = "some recommendations could not be fetched"
			return set, nil
		}

		for _, item := range items {
			if item.ID == "" {
				continue
			}
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			if _, ok := exclude[item.ID]; ok {
				continue
			}
			set.Items = append(set.Items, item)
			if len(set.Items) >= bookResultLimit {
				return set, nil
			}
		}
	}

	if s.logger != nil {
		s.logger.Debug("Book recommendations complete",
			"user_id", userID,
			"seeds", len(seeds),
			"results", len(set.Items),
		)
	}
	return set, nil
}
