package api

import (
	"encoding/json/v2"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fandexapp/fandex-server/internal/domain"
)

type searchResults struct {
	Items []domain.CatalogItem `json:"items"`
}

func TestSearchAnime(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createAdmin(t)

	ts.anime.searchResults = []domain.CatalogItem{
		{ID: "5114", Title: "Fullmetal Alchemist: Brotherhood"},
		{ID: "1", Title: "Cowboy Bebop"},
	}

	resp := ts.api.Get("/api/v1/search/anime?q=alchemist", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[searchResults]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	require.Len(t, envelope.Data.Items, 2)
	assert.Equal(t, "5114", envelope.Data.Items[0].ID)
	assert.False(t, envelope.Data.Items[0].Favorited)
}

func TestSearchAnime_MarksFavorited(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createAdmin(t)

	ts.toggleFavorite(t, token, map[string]any{
		"content_id":   "5114",
		"title":        "Fullmetal Alchemist: Brotherhood",
		"content_type": "anime",
	})

	ts.anime.searchResults = []domain.CatalogItem{
		{ID: "5114", Title: "Fullmetal Alchemist: Brotherhood"},
		{ID: "1", Title: "Cowboy Bebop"},
	}

	resp := ts.api.Get("/api/v1/search/anime?q=alchemist", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code)

	var envelope testEnvelope[searchResults]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	require.Len(t, envelope.Data.Items, 2)
	assert.True(t, envelope.Data.Items[0].Favorited)
	assert.False(t, envelope.Data.Items[1].Favorited)
}

func TestSearchAnime_EmptyQuery(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createAdmin(t)

	resp := ts.api.Get("/api/v1/search/anime?q=", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Get("/api/v1/search/anime", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}

func TestSearchAnime_CatalogDown(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createAdmin(t)

	ts.anime.searchErr = errors.New("connection refused")

	resp := ts.api.Get("/api/v1/search/anime?q=bebop", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadGateway, resp.Code)

	var envelope testEnvelope[struct{}]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	assert.False(t, envelope.Success)
	assert.Equal(t, "CATALOG_UNAVAILABLE", envelope.Code)
}

func TestSearchBooks(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createAdmin(t)

	ts.books.searchResults = []domain.CatalogItem{
		{ID: "OL45804W", Title: "Fantastic Mr Fox", Author: "Roald Dahl", FirstPublishYear: 1970},
	}

	resp := ts.api.Get("/api/v1/search/books?q=fox", "Authorization: Bearer "+token)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var envelope testEnvelope[searchResults]
	err := json.Unmarshal(resp.Body.Bytes(), &envelope)
	require.NoError(t, err)
	require.Len(t, envelope.Data.Items, 1)
	assert.Equal(t, "Roald Dahl", envelope.Data.Items[0].Author)
	assert.Equal(t, 1970, envelope.Data.Items[0].FirstPublishYear)
}

func TestSearchBooks_CatalogDown(t *testing.T) {
	ts := setupTestServer(t)
	token, _ := ts.createAdmin(t)

	ts.books.searchErr = errors.New("timeout")

	resp := ts.api.Get("/api/v1/search/books?q=fox", "Authorization: Bearer "+token)
	assert.Equal(t, http.StatusBadGateway, resp.Code)
}
