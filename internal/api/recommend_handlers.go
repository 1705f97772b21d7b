package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/fandexapp/fandex-server/internal/service"
)

func (s *Server) registerRecommendationRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "recommendAnime",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations/anime",
		Summary:     "Anime recommendations",
		Description: "Returns anime recommendations seeded from the user's favorites.",
		Tags:        []string{"Recommendations"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRecommendAnime)

	huma.Register(s.api, huma.Operation{
		OperationID: "recommendBooks",
		Method:      http.MethodGet,
		Path:        "/api/v1/recommendations/books",
		Summary:     "Book recommendations",
		Description: "Returns book recommendations found through the authors of the user's favorites.",
		Tags:        []string{"Recommendations"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRecommendBooks)
}

// RecommendationOutput wraps a recommendation set for Huma.
type RecommendationOutput struct {
	Body service.RecommendationSet
}

func (s *Server) handleRecommendAnime(ctx context.Context, _ *struct{}) (*RecommendationOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	set, err := s.services.Recommend.RecommendAnime(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &RecommendationOutput{Body: *set}, nil
}

func (s *Server) handleRecommendBooks(ctx context.Context, _ *struct{}) (*RecommendationOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	set, err := s.services.Recommend.RecommendBooks(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &RecommendationOutput{Body: *set}, nil
}
