package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/fandexapp/fandex-server/internal/domain"
	"github.com/fandexapp/fandex-server/internal/store"
)

// favoriteColumns is the ordered list of columns selected in favorite queries.
// Must match the scan order in scanFavorite.
const favoriteColumns = `id, user_id, content_id, title, content_type, author, created_at`

// scanFavorite scans a sql.Row (or sql.Rows via its Scan method) into a domain.Favorite.
func scanFavorite(scanner interface{ Scan(dest ...any) error }) (*domain.Favorite, error) {
	var f domain.Favorite

	var (
		contentType string
		author      sql.NullString
		createdAt   string
	)

	err := scanner.Scan(
		&f.ID,
		&f.UserID,
		&f.ContentID,
		&f.Title,
		&contentType,
		&author,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	f.ContentType = domain.ContentType(contentType)
	if author.Valid {
		f.Author = author.String
	}
	f.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &f, nil
}

// ToggleFavorite flips the favorite state of (user, content, type) in a
// single transaction. A delete-first probe decides the direction: if a row
// existed it is removed and created is false; otherwise the supplied record
// is inserted and created is true. The unique index backstops concurrent
// racers, so a losing insert reports the removed state instead of creating a
// duplicate row. A repeat toggle never updates title or author.
func (s *Store) ToggleFavorite(ctx context.Context, fav *domain.Favorite) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, wrapErr(err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		DELETE FROM favorites
		WHERE user_id = ? AND content_id = ? AND content_type = ?`,
		fav.UserID, fav.ContentID, string(fav.ContentType))
	if err != nil {
		return false, wrapErr(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, wrapErr(err)
	}
	if n > 0 {
		// Existed: the toggle removed it.
		if err := tx.Commit(); err != nil {
			return false, wrapErr(err)
		}
		return false, nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO favorites (
			id, user_id, content_id, title, content_type, author, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		fav.ID,
		fav.UserID,
		fav.ContentID,
		fav.Title,
		string(fav.ContentType),
		nullString(fav.Author),
		formatTime(fav.CreatedAt),
	)
	if err != nil {
		// A concurrent toggle got the insert in first. The row exists,
		// so report the removed side of the flip rather than a conflict.
		if errors.Is(wrapErr(err), store.ErrAlreadyExists) {
			return false, nil
		}
		return false, wrapErr(err)
	}

	if err := tx.Commit(); err != nil {
		return false, wrapErr(err)
	}
	return true, nil
}

// IsFavorite reports whether the user has favorited the given content.
func (s *Store) IsFavorite(ctx context.Context, userID, contentID string, contentType domain.ContentType) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM favorites
		WHERE user_id = ? AND content_id = ? AND content_type = ?`,
		userID, contentID, string(contentType)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, wrapErr(err)
	}
	return true, nil
}

// ListFavorites returns the user's favorites of the given type, newest first.
func (s *Store) ListFavorites(ctx context.Context, userID string, contentType domain.ContentType) ([]*domain.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+favoriteColumns+` FROM favorites
		WHERE user_id = ? AND content_type = ?
		ORDER BY created_at DESC`,
		userID, string(contentType))
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var favorites []*domain.Favorite
	for rows.Next() {
		f, err := scanFavorite(rows)
		if err != nil {
			return nil, wrapErr(err)
		}
		favorites = append(favorites, f)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return favorites, nil
}

// CountFavorites returns the user's total favorite count across both types.
func (s *Store) CountFavorites(ctx context.Context, userID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = ?`, userID).Scan(&count)
	if err != nil {
		return 0, wrapErr(err)
	}
	return count, nil
}
