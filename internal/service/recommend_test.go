package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fandexapp/fandex-server/internal/domain"
	"github.com/fandexapp/fandex-server/internal/metadata/openlibrary"
)

func TestRecommendService_Anime_NoFavorites(t *testing.T) {
	s := newServiceStore(t)
	svc := NewRecommendService(s, &fakeAnimeCatalog{}, &fakeBookCatalog{}, nil)

	set, err := svc.RecommendAnime(context.Background(), "user-without-favorites")
	require.NoError(t, err)
	assert.Empty(t, set.Items)
	assert.Empty(t, set.Warning)
	assert.True(t, set.EmptyHint)
}

func TestRecommendService_Anime_DedupAndExclude(t *testing.T) {
	s := newServiceStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1")
	seedFavorite(t, s, "user-1", "5114", "Fullmetal Alchemist: Brotherhood", "", domain.ContentTypeAnime)
	seedFavorite(t, s, "user-1", "1", "Cowboy Bebop", "", domain.ContentTypeAnime)

	anime := &fakeAnimeCatalog{
		recs: map[string][]domain.CatalogItem{
			// Newest favorite is seeded first, so "1" is queried before "5114".
			"1": {
				{ID: "205", Title: "Samurai Champloo"},
				{ID: "5114", Title: "Fullmetal Alchemist: Brotherhood"}, // already favorited
				{ID: "9253", Title: "Steins;Gate"},
			},
			"5114": {
				{ID: "9253", Title: "Steins;Gate"}, // duplicate, first occurrence wins
				{ID: "11061", Title: "Hunter x Hunter"},
			},
		},
	}
	svc := NewRecommendService(s, anime, &fakeBookCatalog{}, nil)

	set, err := svc.RecommendAnime(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, set.Warning)

	// Both seeds queried, newest favorite first.
	assert.Equal(t, []string{"1", "5114"}, anime.recCalls)

	ids := make([]string, 0, len(set.Items))
	for _, item := range set.Items {
		ids = append(ids, item.ID)
	}
	assert.Equal(t, []string{"205", "9253", "11061"}, ids)
}

func TestRecommendService_Anime_PartialOnError(t *testing.T) {
	s := newServiceStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1")
	seedFavorite(t, s, "user-1", "5114", "Fullmetal Alchemist: Brotherhood", "", domain.ContentTypeAnime)
	seedFavorite(t, s, "user-1", "1", "Cowboy Bebop", "", domain.ContentTypeAnime)

	anime := &fakeAnimeCatalog{
		recs: map[string][]domain.CatalogItem{
			"1": {{ID: "205", Title: "Samurai Champloo"}},
		},
		recErrs: map[string]error{
			"5114": errors.New("upstream down"),
		},
	}
	svc := NewRecommendService(s, anime, &fakeBookCatalog{}, nil)

	set, err := svc.RecommendAnime(ctx, "user-1")
	require.NoError(t, err)

	// Results from the first seed survive; the failure only adds a warning.
	require.Len(t, set.Items, 1)
	assert.Equal(t, "205", set.Items[0].ID)
	assert.NotEmpty(t, set.Warning)
}

func TestRecommendService_Anime_SkipsItemsWithoutID(t *testing.T) {
	s := newServiceStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1")
	seedFavorite(t, s, "user-1", "1", "Cowboy Bebop", "", domain.ContentTypeAnime)

	anime := &fakeAnimeCatalog{
		recs: map[string][]domain.CatalogItem{
			"1": {
				{ID: "", Title: "Nameless Entry"},
				{ID: "205", Title: "Samurai Champloo"},
			},
		},
	}
	svc := NewRecommendService(s, anime, &fakeBookCatalog{}, nil)

	set, err := svc.RecommendAnime(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, set.Items, 1)
	assert.Equal(t, "205", set.Items[0].ID)
}

func TestRecommendService_Books_NoFavorites(t *testing.T) {
	s := newServiceStore(t)
	svc := NewRecommendService(s, &fakeAnimeCatalog{}, &fakeBookCatalog{}, nil)

	set, err := svc.RecommendBooks(context.Background(), "user-without-favorites")
	require.NoError(t, err)
	assert.Empty(t, set.Items)
	assert.Empty(t, set.Warning)
	assert.True(t, set.EmptyHint)
}

func TestRecommendService_Books_SeedLimitAndAuthorQueries(t *testing.T) {
	s := newServiceStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1")
	// Four favorites; only the newest three seed searches.
	seedFavorite(t, s, "user-1", "OL1W", "Book One", "Author One", domain.ContentTypeBook)
	seedFavorite(t, s, "user-1", "OL2W", "Book Two", "Author Two", domain.ContentTypeBook)
	seedFavorite(t, s, "user-1", "OL3W", "Book Three", "Author Three", domain.ContentTypeBook)
	seedFavorite(t, s, "user-1", "OL4W", "Book Four", "Author Four", domain.ContentTypeBook)

	books := &fakeBookCatalog{byAuthor: map[string][]domain.CatalogItem{}}
	svc := NewRecommendService(s, &fakeAnimeCatalog{}, books, nil)

	set, err := svc.RecommendBooks(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, set.Items)

	// Newest first, capped at three seeds, five results requested each.
	assert.Equal(t, []string{"Author Four", "Author Three", "Author Two"}, books.authorCalls)
	assert.Equal(t, []int{5, 5, 5}, books.limits)
}

func TestRecommendService_Books_SkipsUnknownAuthors(t *testing.T) {
	s := newServiceStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1")
	seedFavorite(t, s, "user-1", "OL1W", "Book One", openlibrary.UnknownAuthor, domain.ContentTypeBook)
	seedFavorite(t, s, "user-1", "OL2W", "Book Two", "", domain.ContentTypeBook)
	seedFavorite(t, s, "user-1", "OL3W", "Book Three", "Roald Dahl", domain.ContentTypeBook)

	books := &fakeBookCatalog{
		byAuthor: map[string][]domain.CatalogItem{
			"Roald Dahl": {{ID: "OL34W", Title: "Matilda", Author: "Roald Dahl"}},
		},
	}
	svc := NewRecommendService(s, &fakeAnimeCatalog{}, books, nil)

	set, err := svc.RecommendBooks(ctx, "user-1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Roald Dahl"}, books.authorCalls)
	require.Len(t, set.Items, 1)
	assert.Equal(t, "OL34W", set.Items[0].ID)
}

func TestRecommendService_Books_DedupExcludeAndCap(t *testing.T) {
	s := newServiceStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1")
	seedFavorite(t, s, "user-1", "OL1W", "Book One", "Author One", domain.ContentTypeBook)
	seedFavorite(t, s, "user-1", "OL2W", "Book Two", "Author Two", domain.ContentTypeBook)
	seedFavorite(t, s, "user-1", "OL3W", "Book Three", "Author Three", domain.ContentTypeBook)

	// Each author returns ten works, including a favorited one and a
	// duplicate across authors. Well over the cap in total.
	makeWorks := func(prefix string) []domain.CatalogItem {
		items := []domain.CatalogItem{
			{ID: "OL1W", Title: "Book One"},     // favorited, excluded
			{ID: "OL-shared", Title: "Shared"},  // duplicate across authors
		}
		for i := range 8 {
			items = append(items, domain.CatalogItem{
				ID:    fmt.Sprintf("%s-%d", prefix, i),
				Title: fmt.Sprintf("%s Work %d", prefix, i),
			})
		}
		return items
	}
	books := &fakeBookCatalog{
		byAuthor: map[string][]domain.CatalogItem{
			"Author One":   makeWorks("a1"),
			"Author Two":   makeWorks("a2"),
			"Author Three": makeWorks("a3"),
		},
	}
	svc := NewRecommendService(s, &fakeAnimeCatalog{}, books, nil)

	set, err := svc.RecommendBooks(ctx, "user-1")
	require.NoError(t, err)

	assert.Len(t, set.Items, 12)

	seen := make(map[string]int)
	for _, item := range set.Items {
		assert.NotEqual(t, "OL1W", item.ID, "favorited work must be excluded")
		seen[item.ID]++
	}
	assert.Equal(t, 1, seen["OL-shared"], "duplicate work must appear once")
}

func TestRecommendService_Books_PartialOnError(t *testing.T) {
	s := newServiceStore(t)
	ctx := context.Background()

	seedUser(t, s, "user-1")
	seedFavorite(t, s, "user-1", "OL1W", "Book One", "Author One", domain.ContentTypeBook)
	seedFavorite(t, s, "user-1", "OL2W", "Book Two", "Author Two", domain.ContentTypeBook)

	books := &fakeBookCatalog{
		byAuthor: map[string][]domain.CatalogItem{
			"Author Two": {{ID: "OL10W", Title: "Another Work"}},
		},
		authorErrs: map[string]error{
			"Author One": errors.New("upstream down"),
		},
	}
	svc := NewRecommendService(s, &fakeAnimeCatalog{}, books, nil)

	set, err := svc.RecommendBooks(ctx, "user-1")
	require.NoError(t, err)

	// Author Two is the newer favorite and succeeds before Author One fails.
	require.Len(t, set.Items, 1)
	assert.Equal(t, "OL10W", set.Items[0].ID)
	assert.NotEmpty(t, set.Warning)
}
