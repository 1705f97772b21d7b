package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fandexapp/fandex-server/internal/domain"
	domainerrors "github.com/fandexapp/fandex-server/internal/errors"
	"github.com/fandexapp/fandex-server/internal/id"
	"github.com/fandexapp/fandex-server/internal/store"
)

// FavoriteService manages per-user favorites across both catalogs.
type FavoriteService struct {
	store  store.Store
	logger *slog.Logger
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(store store.Store, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		store:  store,
		logger: logger,
	}
}

// ToggleRequest identifies the content to favorite or unfavorite.
type ToggleRequest struct {
	ContentID   string             `json:"content_id" validate:"required"`
	Title       string             `json:"title" validate:"required"`
	ContentType domain.ContentType `json:"content_type" validate:"required"`
	Author      string             `json:"author"`
}

// ToggleResponse reports the state of the favorite after the toggle.
type ToggleResponse struct {
	Favorited   bool               `json:"favorited"`
	ContentID   string             `json:"content_id"`
	ContentType domain.ContentType `json:"content_type"`
}

// Toggle adds the content to the user's favorites, or removes it if it is
// already favorited.
func (s *FavoriteService) Toggle(ctx context.Context, userID string, req ToggleRequest) (*ToggleResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, formatValidationError(err)
	}
	if !req.ContentType.Valid() {
		return nil, domainerrors.Validationf("content_type must be %q or %q",
			domain.ContentTypeAnime, domain.ContentTypeBook)
	}

	favID, err := id.Generate(id.PrefixFavorite)
	if err != nil {
		return nil, fmt.Errorf("generate favorite ID: %w", err)
	}

	fav := &domain.Favorite{
		ID:          favID,
		UserID:      userID,
		ContentID:   strings.TrimSpace(req.ContentID),
		Title:       req.Title,
		ContentType: req.ContentType,
		Author:      req.Author,
		CreatedAt:   time.Now(),
	}

	created, err := s.store.ToggleFavorite(ctx, fav)
	if err != nil {
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("Favorite toggled",
			"user_id", userID,
			"content_id", fav.ContentID,
			"content_type", fav.ContentType,
			"favorited", created,
		)
	}

	return &ToggleResponse{
		Favorited:   created,
		ContentID:   fav.ContentID,
		ContentType: fav.ContentType,
	}, nil
}

// List returns the user's favorites of the given type, newest first.
func (s *FavoriteService) List(ctx context.Context, userID string, contentType domain.ContentType) ([]*domain.Favorite, error) {
	if !contentType.Valid() {
		return nil, domainerrors.Validationf("content_type must be %q or %q",
			domain.ContentTypeAnime, domain.ContentTypeBook)
	}

	favorites, err := s.store.ListFavorites(ctx, userID, contentType)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return favorites, nil
}

// Count returns how many titles the user has favorited across both types.
func (s *FavoriteService) Count(ctx context.Context, userID string) (int, error) {
	count, err := s.store.CountFavorites(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count favorites: %w", err)
	}
	return count, nil
}

// favoriteIDSet returns the set of content IDs the user has favorited for
// the given type. Shared by search and recommendation flows.
func favoriteIDSet(ctx context.Context, st store.Store, userID string, contentType domain.ContentType) (map[string]struct{}, error) {
	favorites, err := st.ListFavorites(ctx, userID, contentType)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	set := make(map[string]struct{}, len(favorites))
	for _, fav := range favorites {
		set[fav.ContentID] = struct{}{}
	}
	return set, nil
}
