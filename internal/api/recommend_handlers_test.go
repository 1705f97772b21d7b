package api

import (
	"encoding/json/v2"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fandexapp/fandex-server/internal/domain"
	"github.com/fandexapp/fandex-server/internal/service"
)

func TestRecommendAnime_NoFavorites(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createAdmin(t)

	resp := ts.api.Get("/api/v1/recommendations/anime", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[service.RecommendationSet]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.Empty(t, envelope.Data.Items)
	assert.Empty(t, envelope.Data.Warning)
	assert.True(t, envelope.Data.EmptyHint)
}

func TestRecommendAnime(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createAdmin(t)

	ts.toggleFavorite(t, token, map[string]any{
		"content_id":   "5114",
		"title":        "Fullmetal Alchemist: Brotherhood",
		"content_type": "anime",
	})

	ts.anime.recs = map[string][]domain.CatalogItem{
		"5114": {
			{ID: "9253", Title: "Steins;Gate"},
			{ID: "5114", Title: "Fullmetal Alchemist: Brotherhood"},
			{ID: "11061", Title: "Hunter x Hunter (2011)"},
		},
	}

	resp := ts.api.Get("/api/v1/recommendations/anime", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[service.RecommendationSet]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	// The favorited seed itself is excluded from results.
	ids := make([]string, 0, len(envelope.Data.Items))
	for _, item := range envelope.Data.Items {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"9253", "11061"}, ids)
	assert.Empty(t, envelope.Data.Warning)
}

func TestRecommendAnime_PartialOnError(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createAdmin(t)

	ts.toggleFavorite(t, token, map[string]any{
		"content_id":   "1",
		"title":        "Cowboy Bebop",
		"content_type": "anime",
	})
	ts.toggleFavorite(t, token, map[string]any{
		"content_id":   "5114",
		"title":        "Fullmetal Alchemist: Brotherhood",
		"content_type": "anime",
	})

	// Favorites are iterated newest first, so 5114 is fetched before 1.
	ts.anime.recs = map[string][]domain.CatalogItem{
		"5114": {{ID: "9253", Title: "Steins;Gate"}},
	}
	ts.anime.recErrs = map[string]error{
		"1": errors.New("upstream 500"),
	}

	resp := ts.api.Get("/api/v1/recommendations/anime", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[service.RecommendationSet]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, "9253", envelope.Data.Items[0].ID)
	assert.NotEmpty(t, envelope.Data.Warning)
}

func TestRecommendBooks(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createAdmin(t)

	ts.toggleFavorite(t, token, map[string]any{
		"content_id":   "OL45804W",
		"title":        "Fantastic Mr Fox",
		"content_type": "book",
		"author":       "Roald Dahl",
	})

	ts.books.byAuthor = map[string][]domain.CatalogItem{
		"Roald Dahl": {
			{ID: "OL45804W", Title: "Fantastic Mr Fox", Author: "Roald Dahl"},
			{ID: "OL45883W", Title: "Matilda", Author: "Roald Dahl"},
			{ID: "OL45793W", Title: "The BFG", Author: "Roald Dahl"},
		},
	}

	resp := ts.api.Get("/api/v1/recommendations/books", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[service.RecommendationSet]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)

	ids := make([]string, 0, len(envelope.Data.Items))
	for _, item := range envelope.Data.Items {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"OL45883W", "OL45793W"}, ids)
}

func TestRecommendBooks_SkipsSeedsWithoutAuthor(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createAdmin(t)

	ts.toggleFavorite(t, token, map[string]any{
		"content_id":   "OL1W",
		"title":        "Anonymous Work",
		"content_type": "book",
	})

	resp := ts.api.Get("/api/v1/recommendations/books", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[service.RecommendationSet]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.Empty(t, envelope.Data.Items)
}
