package jikan

import (
	"context"
	"encoding/json/v2"
	"net/url"
	"strconv"

	"github.com/fandexapp/fandex-server/internal/domain"
)

// rawAnime is a single anime entry as returned by the API.
type rawAnime struct {
	MalID  int    `json:"mal_id"`
	Title  string `json:"title"`
	Images struct {
		JPG struct {
			ImageURL string `json:"image_url"`
		} `json:"jpg"`
	} `json:"images"`
}

type searchResponse struct {
	Data []rawAnime `json:"data"`
}

type recommendationsResponse struct {
	Data []struct {
		Entry rawAnime `json:"entry"`
	} `json:"data"`
}

// Search queries the anime catalog. Results are SFW-filtered.
// An entry without a usable mal_id is still returned, just with an empty ID,
// so the caller can show it without ever treating it as favoritable.
func (c *Client) Search(ctx context.Context, query string) ([]domain.CatalogItem, error) {
	params := url.Values{}
	params.Set("q", query)
	// Jikan takes sfw as a bare flag.
	rawQuery := params.Encode() + "&sfw"

	body, err := c.doRequest(ctx, "/anime", rawQuery)
	if err != nil {
		c.metrics.CatalogRequest("jikan", "search", outcome(err))
		return nil, wrapError("search", "", err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.metrics.CatalogRequest("jikan", "search", outcome(err))
		return nil, wrapError("search", "", err)
	}
	c.metrics.CatalogRequest("jikan", "search", outcome(nil))

	results := make([]domain.CatalogItem, 0, len(resp.Data))
	for i := range resp.Data {
		results = append(results, toCatalogItem(&resp.Data[i]))
	}

	c.logger.Debug("jikan search results", "query", query, "count", len(results))
	return results, nil
}

// Recommendations fetches the anime recommended alongside the given anime.
// Entries without a usable id are skipped; they cannot be deduplicated or
// excluded, so they are worthless downstream.
func (c *Client) Recommendations(ctx context.Context, animeID string) ([]domain.CatalogItem, error) {
	body, err := c.doRequest(ctx, "/anime/"+url.PathEscape(animeID)+"/recommendations", "")
	if err != nil {
		c.metrics.CatalogRequest("jikan", "recommendations", outcome(err))
		return nil, wrapError("recommendations", animeID, err)
	}

	var resp recommendationsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.metrics.CatalogRequest("jikan", "recommendations", outcome(err))
		return nil, wrapError("recommendations", animeID, err)
	}
	c.metrics.CatalogRequest("jikan", "recommendations", outcome(nil))

	var results []domain.CatalogItem
	for i := range resp.Data {
		entry := &resp.Data[i].Entry
		if entry.MalID == 0 {
			continue
		}
		results = append(results, toCatalogItem(entry))
	}

	c.logger.Debug("jikan recommendations", "anime_id", animeID, "count", len(results))
	return results, nil
}

// toCatalogItem converts a raw API entry to the domain representation.
func toCatalogItem(a *rawAnime) domain.CatalogItem {
	item := domain.CatalogItem{
		Title:    a.Title,
		CoverURL: a.Images.JPG.ImageURL,
	}
	if a.MalID != 0 {
		item.ID = strconv.Itoa(a.MalID)
	}
	return item
}
