package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/fandexapp/fandex-server/internal/domain"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchAnime",
		Method:      http.MethodGet,
		Path:        "/api/v1/search/anime",
		Summary:     "Search anime",
		Description: "Searches the anime catalog. Results the user has favorited are flagged.",
		Tags:        []string{"Search"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchAnime)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/search/books",
		Summary:     "Search books",
		Description: "Searches the book catalog. Results the user has favorited are flagged.",
		Tags:        []string{"Search"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleSearchBooks)
}

// SearchInput contains the catalog search query.
type SearchInput struct {
	Query string `query:"q" doc:"Search query"`
}

// SearchOutput wraps catalog search results for Huma.
type SearchOutput struct {
	Body struct {
		Items []domain.CatalogItem `json:"items" doc:"Matching catalog items"`
	}
}

func (s *Server) handleSearchAnime(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Search.SearchAnime(ctx, userID, input.Query)
	if err != nil {
		return nil, err
	}

	return searchOutput(items), nil
}

func (s *Server) handleSearchBooks(ctx context.Context, input *SearchInput) (*SearchOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.services.Search.SearchBooks(ctx, userID, input.Query)
	if err != nil {
		return nil, err
	}

	return searchOutput(items), nil
}

func searchOutput(items []domain.CatalogItem) *SearchOutput {
	out := &SearchOutput{}
	out.Body.Items = items
	if out.Body.Items == nil {
		out.Body.Items = []domain.CatalogItem{}
	}
	return out
}
