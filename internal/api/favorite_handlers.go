package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/fandexapp/fandex-server/internal/domain"
	"github.com/fandexapp/fandex-server/internal/service"
)

func (s *Server) registerFavoriteRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "toggleFavorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/favorites/toggle",
		Summary:     "Toggle favorite",
		Description: "Adds the item to the user's favorites, or removes it if already favorited.",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleToggleFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "listFavorites",
		Method:      http.MethodGet,
		Path:        "/api/v1/favorites",
		Summary:     "List favorites",
		Description: "Returns the user's favorites for a content type, newest first.",
		Tags:        []string{"Favorites"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListFavorites)
}

// ToggleFavoriteRequest is the request body for toggling a favorite.
type ToggleFavoriteRequest struct {
	ContentID   string `json:"content_id" validate:"required,max=100" doc:"Remote catalog item ID"`
	Title       string `json:"title" validate:"required,max=500" doc:"Item title"`
	ContentType string `json:"content_type" validate:"required" doc:"Content type (anime or book)" enum:"anime,book"`
	Author      string `json:"author,omitempty" validate:"omitempty,max=500" doc:"Author name (books)"`
}

// ToggleFavoriteInput wraps the toggle request for Huma.
type ToggleFavoriteInput struct {
	Body ToggleFavoriteRequest
}

// ToggleFavoriteOutput wraps the toggle result for Huma.
type ToggleFavoriteOutput struct {
	Body service.ToggleResponse
}

// ListFavoritesInput contains query parameters for listing favorites.
type ListFavoritesInput struct {
	ContentType string `query:"type" doc:"Content type (anime or book)" enum:"anime,book" required:"true"`
}

// FavoriteListOutput wraps the favorites list for Huma.
type FavoriteListOutput struct {
	Body struct {
		Favorites []*domain.Favorite `json:"favorites" doc:"Favorites, newest first"`
	}
}

func (s *Server) handleToggleFavorite(ctx context.Context, input *ToggleFavoriteInput) (*ToggleFavoriteOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := s.services.Favorite.Toggle(ctx, userID, service.ToggleRequest{
		ContentID:   input.Body.ContentID,
		Title:       input.Body.Title,
		ContentType: domain.ContentType(input.Body.ContentType),
		Author:      input.Body.Author,
	})
	if err != nil {
		return nil, err
	}

	return &ToggleFavoriteOutput{Body: *resp}, nil
}

func (s *Server) handleListFavorites(ctx context.Context, input *ListFavoritesInput) (*FavoriteListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	favorites, err := s.services.Favorite.List(ctx, userID, domain.ContentType(input.ContentType))
	if err != nil {
		return nil, err
	}

	out := &FavoriteListOutput{}
	out.Body.Favorites = favorites
	if out.Body.Favorites == nil {
		out.Body.Favorites = []*domain.Favorite{}
	}
	return out, nil
}
