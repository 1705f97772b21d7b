package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/fandexapp/fandex-server/internal/domain"
)

func (s *Server) registerUserRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getCurrentUser",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me",
		Summary:     "Get current user",
		Description: "Returns the authenticated user's profile",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleGetCurrentUser)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSessions",
		Method:      http.MethodGet,
		Path:        "/api/v1/users/me/sessions",
		Summary:     "List sessions",
		Description: "Returns the caller's active sessions",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListSessions)

	huma.Register(s.api, huma.Operation{
		OperationID: "revokeSessions",
		Method:      http.MethodDelete,
		Path:        "/api/v1/users/me/sessions",
		Summary:     "Revoke all sessions",
		Description: "Signs the caller out of every device",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleRevokeSessions)

	huma.Register(s.api, huma.Operation{
		OperationID: "listUsers",
		Method:      http.MethodGet,
		Path:        "/api/v1/users",
		Summary:     "List users",
		Description: "Returns all users. Requires admin access.",
		Tags:        []string{"Users"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleListUsers)
}

// ProfileResponse extends the user record with account statistics.
type ProfileResponse struct {
	UserResponse
	FavoriteCount int `json:"favorite_count" doc:"Number of favorited titles across both catalogs"`
}

// ProfileOutput wraps the profile response for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// SessionInfo describes an active session in API responses.
type SessionInfo struct {
	ID         string    `json:"id" doc:"Session ID"`
	IPAddress  string    `json:"ip_address,omitempty" doc:"Client IP at last use"`
	UserAgent  string    `json:"user_agent,omitempty" doc:"Client user agent"`
	CreatedAt  time.Time `json:"created_at" doc:"Session creation timestamp"`
	LastSeenAt time.Time `json:"last_seen_at" doc:"Last activity timestamp"`
	ExpiresAt  time.Time `json:"expires_at" doc:"Refresh expiry timestamp"`
}

// SessionListOutput wraps the session list response for Huma.
type SessionListOutput struct {
	Body struct {
		Sessions []SessionInfo `json:"sessions" doc:"Active sessions for the caller"`
	}
}

// UserListOutput wraps the user list response for Huma.
type UserListOutput struct {
	Body struct {
		Users []UserResponse `json:"users" doc:"All registered users"`
	}
}

func (s *Server) handleGetCurrentUser(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	user, err := s.RequireUser(ctx)
	if err != nil {
		return nil, err
	}

	count, err := s.services.Favorite.Count(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: ProfileResponse{
		UserResponse:  mapUserResponse(user),
		FavoriteCount: count,
	}}, nil
}

func (s *Server) handleListSessions(ctx context.Context, _ *struct{}) (*SessionListOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := s.services.Session.ListUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &SessionListOutput{}
	out.Body.Sessions = make([]SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		out.Body.Sessions = append(out.Body.Sessions, mapSessionInfo(sess))
	}
	return out, nil
}

func (s *Server) handleRevokeSessions(ctx context.Context, _ *struct{}) (*MessageOutput, error) {
	userID, err := GetUserID(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.services.Session.RevokeUserSessions(ctx, userID); err != nil {
		return nil, err
	}

	return &MessageOutput{Body: MessageResponse{Message: "All sessions revoked"}}, nil
}

func (s *Server) handleListUsers(ctx context.Context, _ *struct{}) (*UserListOutput, error) {
	if _, err := s.RequireAdmin(ctx); err != nil {
		return nil, err
	}

	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	out := &UserListOutput{}
	out.Body.Users = make([]UserResponse, 0, len(users))
	for _, u := range users {
		out.Body.Users = append(out.Body.Users, mapUserResponse(u))
	}
	return out, nil
}

func mapSessionInfo(sess *domain.Session) SessionInfo {
	return SessionInfo{
		ID:         sess.ID,
		IPAddress:  sess.IPAddress,
		UserAgent:  sess.UserAgent,
		CreatedAt:  sess.CreatedAt,
		LastSeenAt: sess.LastSeenAt,
		ExpiresAt:  sess.ExpiresAt,
	}
}
