package domain

// CatalogItem is a search or recommendation result from an external catalog.
// It is never persisted; the Favorited flag is computed per request against
// the requesting user's favorites.
type CatalogItem struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	Author           string `json:"author,omitempty"`
	CoverURL         string `json:"cover_url,omitempty"`
	FirstPublishYear int    `json:"first_publish_year,omitempty"`
	Favorited        bool   `json:"favorited"`
}
