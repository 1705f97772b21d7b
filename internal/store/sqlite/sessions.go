package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fandexapp/fandex-server/internal/domain"
	"github.com/fandexapp/fandex-server/internal/store"
)

// sessionColumns is the ordered list of columns selected in session queries.
// Must match the scan order in scanSession.
const sessionColumns = `id, user_id, refresh_token_hash, expires_at, created_at, last_seen_at,
	ip_address, user_agent`

// scanSession scans a sql.Row (or sql.Rows via its Scan method) into a domain.Session.
func scanSession(scanner interface{ Scan(dest ...any) error }) (*domain.Session, error) {
	var s domain.Session

	var (
		refreshTokenHash sql.NullString
		expiresAt        string
		createdAt        string
		lastSeenAt       string
		ipAddress        sql.NullString
		userAgent        sql.NullString
	)

	err := scanner.Scan(
		&s.ID,
		&s.UserID,
		&refreshTokenHash,
		&expiresAt,
		&createdAt,
		&lastSeenAt,
		&ipAddress,
		&userAgent,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	s.ExpiresAt, err = parseTime(expiresAt)
	if err != nil {
		return nil, err
	}
	s.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	s.LastSeenAt, err = parseTime(lastSeenAt)
	if err != nil {
		return nil, err
	}

	// Optional string fields.
	if refreshTokenHash.Valid {
		s.RefreshTokenHash = refreshTokenHash.String
	}
	if ipAddress.Valid {
		s.IPAddress = ipAddress.String
	}
	if userAgent.Valid {
		s.UserAgent = userAgent.String
	}

	return &s, nil
}

// CreateSession inserts a new session into the database.
// Returns store.ErrAlreadyExists if the session ID already exists.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (
			id, user_id, refresh_token_hash, expires_at, created_at, last_seen_at,
			ip_address, user_agent
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.UserID,
		nullString(session.RefreshTokenHash),
		formatTime(session.ExpiresAt),
		formatTime(session.CreatedAt),
		formatTime(session.LastSeenAt),
		nullString(session.IPAddress),
		nullString(session.UserAgent),
	)
	return wrapErr(err)
}

// GetSession retrieves a session by ID.
// Returns store.ErrNotFound if the session does not exist.
func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, wrapErr(err)
	}
	return sess, nil
}

// GetSessionByRefreshToken retrieves the session holding the given refresh
// token hash. Returns store.ErrNotFound if no session matches.
func (s *Store) GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE refresh_token_hash = ?`, tokenHash)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, wrapErr(err)
	}
	return sess, nil
}

// UpdateSession performs a full row update on an existing session.
// Returns store.ErrNotFound if the session does not exist.
func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET
			user_id = ?,
			refresh_token_hash = ?,
			expires_at = ?,
			created_at = ?,
			last_seen_at = ?,
			ip_address = ?,
			user_agent = ?
		WHERE id = ?`,
		session.UserID,
		nullString(session.RefreshTokenHash),
		formatTime(session.ExpiresAt),
		formatTime(session.CreatedAt),
		formatTime(session.LastSeenAt),
		nullString(session.IPAddress),
		nullString(session.UserAgent),
		session.ID,
	)
	if err != nil {
		return wrapErr(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return wrapErr(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// DeleteSession performs a hard delete of a session by ID.
// Returns store.ErrNotFound if the session does not exist.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return wrapErr(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return wrapErr(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListUserSessions returns all sessions belonging to a user, newest first.
func (s *Store) ListUserSessions(ctx context.Context, userID string) ([]*domain.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE user_id = ? ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, wrapErr(err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return sessions, nil
}

// DeleteAllUserSessions hard-deletes every session for the user.
func (s *Store) DeleteAllUserSessions(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE user_id = ?`, userID)
	return wrapErr(err)
}

// DeleteExpiredSessions removes sessions past their expiry and reports how
// many were deleted.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at < ?`, formatTime(time.Now()))
	if err != nil {
		return 0, wrapErr(err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, wrapErr(err)
	}
	return int(n), nil
}
