package auth

import (
	"errors"
	"net/http"
)

var (
	ErrMissingToken = errors.New("auth: missing bearer token")
	ErrInvalidToken = errors.New("auth: invalid token")
	ErrMissingUser  = errors.New("auth: token has no user id")
	ErrUnknownRole  = errors.New("auth: unknown role")
	ErrForbidden    = errors.New("auth: role not allowed")
)

// StatusCode maps an authentication error to its HTTP status.
func StatusCode(err error) int {
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	return http.StatusUnauthorized
}
