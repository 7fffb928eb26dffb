// Package session carries the acting identity through privileged calls.
// The identity is an explicit value handed to the core by the caller on
// every operation; there is no process-wide "current user".
package session

import "context"

// Fixed role ids. Guest is reserved for anonymous browsing and is never
// persisted.
const (
	RoleAdmin   uint = 1
	RoleManager uint = 2
	RoleClient  uint = 3
	RoleGuest   uint = 4
)

// Session identifies who is acting and in which role.
type Session struct {
	UserID   uint
	RoleID   uint
	FullName string
	RoleName string
}

// Guest fabricates the anonymous browse-only identity.
func Guest() Session {
	return Session{UserID: 0, RoleID: RoleGuest, FullName: "Guest", RoleName: "Guest"}
}

// IsGuest reports whether this is the anonymous pseudo-identity.
func (s Session) IsGuest() bool { return s.RoleID == RoleGuest }

type ctxKey struct{}

// WithSession stores the session in the context.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext extracts the session placed by WithSession.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}
