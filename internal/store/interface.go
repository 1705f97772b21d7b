// Package store defines the persistence interface for the Fandex server.
package store

import (
	"context"

	"github.com/fandexapp/fandex-server/internal/domain"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	ListUsers(ctx context.Context) ([]*domain.User, error)
	CountUsers(ctx context.Context) (int, error)

	// Auth Sessions
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	ListUserSessions(ctx context.Context, userID string) ([]*domain.Session, error)
	DeleteAllUserSessions(ctx context.Context, userID string) error
	DeleteExpiredSessions(ctx context.Context) (int, error)

	// Favorites
	ToggleFavorite(ctx context.Context, fav *domain.Favorite) (created bool, err error)
	IsFavorite(ctx context.Context, userID, contentID string, contentType domain.ContentType) (bool, error)
	ListFavorites(ctx context.Context, userID string, contentType domain.ContentType) ([]*domain.Favorite, error)
	CountFavorites(ctx context.Context, userID string) (int, error)
}
