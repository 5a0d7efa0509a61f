package auth

import "context"

type userContextKey struct{}

func WithUser(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, userContextKey{}, username)
}

// UserFromContext returns the authenticated username set by the auth
// middleware for this request.
func UserFromContext(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(userContextKey{}).(string)
	return username, ok && username != ""
}
