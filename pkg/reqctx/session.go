package reqctx

import "context"

// Session identifies who is driving the admin screens.
type Session struct {
	// ID is empty for callers without a remembered session.
	ID       string
	UserType string
	Email    string
}

// WithSession stores the session in the context.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, keySession, s)
}

// SessionFromContext returns the session, or nil when none was attached.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(keySession).(*Session)
	return s
}

// UserTypeFromContext returns the session's user type, or fallback when the
// request carries no session.
func UserTypeFromContext(ctx context.Context, fallback string) string {
	if s := SessionFromContext(ctx); s != nil && s.UserType != "" {
		return s.UserType
	}
	return fallback
}
