package http

import (
	"context"
	"net/http"

	"github.com/NEXESMISSION/KESTI-sub001/internal/domain"
)

type contextKey string

const (
	tenantKey  contextKey = "tenant"
	sessionKey contextKey = "session_id"
)

// TenantMiddleware resolves the business owner for the request from the
// X-Owner-ID header (stand-in for real token validation) and threads it
// through the context as an explicit Tenant, never as a global.
func TenantMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ownerID := r.Header.Get("X-Owner-ID")
		if ownerID == "" {
			respondError(w, http.StatusUnauthorized, "unauthorized", "missing owner identity")
			return
		}

		tenant := domain.Tenant{
			OwnerID:  ownerID,
			DeviceID: r.Header.Get("X-Device-ID"),
		}
		ctx := context.WithValue(r.Context(), tenantKey, tenant)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionMiddleware requires the X-Session-ID header identifying the POS
// tab/session owning the cart.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get("X-Session-ID")
		if sessionID == "" {
			respondError(w, http.StatusBadRequest, "missing_session", "X-Session-ID header is required")
			return
		}

		ctx := context.WithValue(r.Context(), sessionKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func tenantFromContext(ctx context.Context) (domain.Tenant, bool) {
	tenant, ok := ctx.Value(tenantKey).(domain.Tenant)
	return tenant, ok
}

func sessionFromContext(ctx context.Context) string {
	if sessionID, ok := ctx.Value(sessionKey).(string); ok {
		return sessionID
	}
	return ""
}
