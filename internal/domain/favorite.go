package domain

import "time"

// ContentType distinguishes which external catalog a favorite belongs to.
type ContentType string

const (
	// ContentTypeAnime marks content sourced from the anime catalog.
	ContentTypeAnime ContentType = "anime"
	// ContentTypeBook marks content sourced from the book catalog.
	ContentTypeBook ContentType = "book"
)

// Valid reports whether the content type is one of the known catalogs.
func (c ContentType) Valid() bool {
	return c == ContentTypeAnime || c == ContentTypeBook
}

// Favorite is a user's bookmark of an external catalog item.
// ContentID is the remote catalog's native identifier normalized to a string:
// anime ids are decimal MAL ids, book ids are Open Library work ids ("OL45804W").
// A user can favorite the same content id under different content types without
// collision; the (UserID, ContentID, ContentType) triple is unique.
type Favorite struct {
	ID          string      `json:"id"`
	UserID      string      `json:"user_id"`
	ContentID   string      `json:"content_id"`
	Title       string      `json:"title"`
	ContentType ContentType `json:"content_type"`
	Author      string      `json:"author,omitempty"` // books only
	CreatedAt   time.Time   `json:"created_at"`
}
