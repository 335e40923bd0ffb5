package service

import (
	"context"
	"net/http"
	"strings"
)

// Session is the resolved identity of the authenticated caller. Services only
// ever see resolved sessions; absence is handled as a sign-in redirect at the
// delivery layer, never as an error value.
type Session struct {
	UserID string
	Email  string
	Name   string
}

// SessionResolver resolves a session from request headers. Authentication
// itself is delegated to an external auth provider; this only reads what the
// provider attached to the request.
type SessionResolver interface {
	Resolve(ctx context.Context, headers http.Header) (*Session, error)
}

// headerSessionResolver trusts identity headers set by the auth proxy in
// front of this service.
type headerSessionResolver struct{}

// NewHeaderSessionResolver creates a SessionResolver reading the auth proxy's
// identity headers.
func NewHeaderSessionResolver() SessionResolver {
	return &headerSessionResolver{}
}

// Resolve returns nil when no session is present, which is not an error.
func (r *headerSessionResolver) Resolve(_ context.Context, headers http.Header) (*Session, error) {
	userID := strings.TrimSpace(headers.Get("X-User-Id"))
	email := strings.TrimSpace(headers.Get("X-User-Email"))
	if userID == "" || email == "" {
		return nil, nil
	}
	return &Session{
		UserID: userID,
		Email:  email,
		Name:   headers.Get("X-User-Name"),
	}, nil
}
