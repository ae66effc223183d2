package auth

import "context"

type contextKey struct{}

// User is the authenticated caller. ID is the JWT subject and owns the
// caller's simulation history.
type User struct {
	ID   string
	Role Role
}

// WithIdentity stores the caller's user id and role in context.
func WithIdentity(ctx context.Context, userID string, role Role) context.Context {
	return WithUser(ctx, User{ID: userID, Role: role})
}

// WithUser stores the caller in context.
func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, contextKey{}, user)
}

// UserFromContext returns the caller stored by the middleware.
func UserFromContext(ctx context.Context) (User, bool) {
	if ctx == nil {
		return User{}, false
	}
	user, ok := ctx.Value(contextKey{}).(User)
	return user, ok && user.ID != ""
}

// RoleFromContext extracts role from context.
func RoleFromContext(ctx context.Context) Role {
	user, _ := UserFromContext(ctx)
	return user.Role
}

// SubjectFromContext extracts the caller's user id from context.
func SubjectFromContext(ctx context.Context) string {
	user, _ := UserFromContext(ctx)
	return user.ID
}
