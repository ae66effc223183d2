package auth

import (
	"net/http"
	"strings"
)

// Middleware authenticates simulator users by bearer JWT and checks their
// role against the route policy.
type Middleware struct {
	Secret []byte
	Policy Policy
}

// NewMiddleware constructs an auth middleware.
func NewMiddleware(secret []byte, policy Policy) *Middleware {
	return &Middleware{Secret: secret, Policy: policy}
}

// Wrap puts the authenticated User into the request context. Exempt routes
// and routes without a required role pass through anonymously.
func (m *Middleware) Wrap(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Policy.IsExempt(r) {
			next.ServeHTTP(w, r)
			return
		}
		required, ok := m.Policy.RequiredRole(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.Authenticate(r)
		if err == nil && !RoleAtLeast(user.Role, required) {
			err = ErrForbidden
		}
		if err != nil {
			http.Error(w, err.Error(), StatusCode(err))
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// Authenticate resolves the caller from the Authorization header.
func (m *Middleware) Authenticate(r *http.Request) (User, error) {
	token := bearerToken(r)
	if token == "" {
		return User{}, ErrMissingToken
	}
	claims, err := ParseJWT(token, m.Secret)
	if err != nil {
		return User{}, err
	}
	return claims.User()
}

func bearerToken(r *http.Request) string {
	if r == nil {
		return ""
	}
	scheme, token, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
