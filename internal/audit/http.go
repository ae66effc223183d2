package audit

import (
	"net"
	"net/http"
	"strings"

	"tariff-simulator/internal/auth"
)

// FromRequest starts an entry for an action taken by the authenticated caller
// of r on one resource.
func FromRequest(r *http.Request, action, resourceType, resourceID string) Entry {
	entry := Entry{
		Action:       action,
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
	if r == nil {
		return entry
	}
	if user, ok := auth.UserFromContext(r.Context()); ok {
		entry.Actor = user.ID
		entry.Role = string(user.Role)
	}
	entry.IP = ClientIP(r)
	entry.UserAgent = r.UserAgent()
	return entry
}

// ClientIP prefers the first X-Forwarded-For hop, then X-Real-IP, then the
// connection's remote host.
func ClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	for _, candidate := range []string{firstHop(r.Header.Get("X-Forwarded-For")), r.Header.Get("X-Real-IP")} {
		if ip := strings.TrimSpace(candidate); ip != "" {
			return ip
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

func firstHop(forwarded string) string {
	first, _, _ := strings.Cut(forwarded, ",")
	return first
}
