package openlibrary

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/fandexapp/fandex-server/internal/domain"
)

const (
	defaultSearchLimit = 20

	// UnknownAuthor is the placeholder used when a work lists no authors.
	// Author-based recommendation fan-out skips favorites carrying it.
	UnknownAuthor = "unknown author"

	coverURLFormat = "https://covers.openlibrary.org/b/id/%d-M.jpg"
)

// rawDoc is a single work as returned by the search API.
type rawDoc struct {
	Key              string   `json:"key"` // "/works/OL45804W"
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	CoverID          int      `json:"cover_i"`
}

type searchResponse struct {
	Docs []rawDoc `json:"docs"`
}

// Search queries the book catalog by free-text query.
func (c *Client) Search(ctx context.Context, query string) ([]domain.CatalogItem, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(defaultSearchLimit))

	return c.search(ctx, "search", query, params)
}

// SearchByAuthor queries the book catalog for works by the given author.
func (c *Client) SearchByAuthor(ctx context.Context, author string, limit int) ([]domain.CatalogItem, error) {
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	params := url.Values{}
	params.Set("author", author)
	params.Set("limit", strconv.Itoa(limit))

	return c.search(ctx, "search_author", author, params)
}

func (c *Client) search(ctx context.Context, op, query string, params url.Values) ([]domain.CatalogItem, error) {
	body, err := c.doRequest(ctx, "/search.json", params)
	if err != nil {
		c.metrics.CatalogRequest("openlibrary", op, outcome(err))
		return nil, wrapError(op, query, err)
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.metrics.CatalogRequest("openlibrary", op, outcome(err))
		return nil, wrapError(op, query, err)
	}
	c.metrics.CatalogRequest("openlibrary", op, outcome(nil))

	results := make([]domain.CatalogItem, 0, len(resp.Docs))
	for i := range resp.Docs {
		item, ok := toCatalogItem(&resp.Docs[i])
		if !ok {
			continue
		}
		results = append(results, item)
	}

	c.logger.Debug("openlibrary search results", "op", op, "query", query, "count", len(results))
	return results, nil
}

// toCatalogItem converts a raw doc to the domain representation.
// Docs without a work key are unusable downstream and get dropped.
func toCatalogItem(d *rawDoc) (domain.CatalogItem, bool) {
	workID := WorkID(d.Key)
	if workID == "" {
		return domain.CatalogItem{}, false
	}

	item := domain.CatalogItem{
		ID:               workID,
		Title:            d.Title,
		Author:           joinAuthors(d.AuthorName),
		FirstPublishYear: d.FirstPublishYear,
	}
	if d.CoverID > 0 {
		item.CoverURL = fmt.Sprintf(coverURLFormat, d.CoverID)
	}
	return item, true
}

// WorkID extracts the bare work identifier from an Open Library key,
// turning "/works/OL45804W" into "OL45804W".
func WorkID(key string) string {
	if key == "" {
		return ""
	}
	if idx := strings.LastIndex(key, "/"); idx >= 0 {
		return key[idx+1:]
	}
	return key
}

// joinAuthors joins the author list for display, falling back to the
// placeholder when the work lists none.
func joinAuthors(names []string) string {
	if len(names) == 0 {
		return UnknownAuthor
	}
	return strings.Join(names, ", ")
}
