package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/fandexapp/fandex-server/internal/domain"
	"github.com/fandexapp/fandex-server/internal/store"
)

// userColumns is the ordered list of columns selected in user queries.
// Must match the scan order in scanUser.
const userColumns = `id, created_at, updated_at, email, email_lower,
	password_hash, role, display_name, last_login_at`

// scanUser scans a sql.Row (or sql.Rows via its Scan method) into a domain.User.
func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var u domain.User

	var (
		createdAt   string
		updatedAt   string
		emailLower  string
		passwordH   sql.NullString
		role        string
		lastLoginAt string
	)

	err := scanner.Scan(
		&u.ID,
		&createdAt,
		&updatedAt,
		&u.Email,
		&emailLower,
		&passwordH,
		&role,
		&u.DisplayName,
		&lastLoginAt,
	)
	if err != nil {
		return nil, err
	}

	// Parse timestamps.
	u.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	u.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	u.LastLoginAt, err = parseTime(lastLoginAt)
	if err != nil {
		return nil, err
	}

	if passwordH.Valid {
		u.PasswordHash = passwordH.String
	}
	u.Role = domain.Role(role)

	return &u, nil
}

// CreateUser inserts a new user into the database.
// The password hash is stored exactly as supplied; hashing happens once in
// the auth service, never here.
// Returns store.ErrAlreadyExists if the user ID or email already exists.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	emailLower := strings.ToLower(strings.TrimSpace(user.Email))

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (
			id, created_at, updated_at, email, email_lower,
			password_hash, role, display_name, last_login_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		user.Email,
		emailLower,
		nullString(user.PasswordHash),
		string(user.Role),
		user.DisplayName,
		formatTime(user.LastLoginAt),
	)
	return wrapErr(err)
}

// GetUser retrieves a user by ID.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, wrapErr(err)
	}
	return u, nil
}

// GetUserByEmail retrieves a user by email, matched case-insensitively.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	lower := strings.ToLower(strings.TrimSpace(email))
	row := s.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email_lower = ?`, lower)

	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, wrapErr(err)
	}
	return u, nil
}

// ListUsers returns all users ordered by creation time.
func (s *Store) ListUsers(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, wrapErr(err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, wrapErr(err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(err)
	}
	return users, nil
}

// CountUsers returns the number of registered users.
func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		return 0, wrapErr(err)
	}
	return count, nil
}

// UpdateUser performs a full row update on an existing user.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	emailLower := strings.ToLower(strings.TrimSpace(user.Email))

	result, err := s.db.ExecContext(ctx, `
		UPDATE users SET
			created_at = ?,
			updated_at = ?,
			email = ?,
			email_lower = ?,
			password_hash = ?,
			role = ?,
			display_name = ?,
			last_login_at = ?
		WHERE id = ?`,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
		user.Email,
		emailLower,
		nullString(user.PasswordHash),
		string(user.Role),
		user.DisplayName,
		formatTime(user.LastLoginAt),
		user.ID,
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
