package middleware

import (
	"context"
	"net"
	"net/http"
	"regexp"

	"github.com/ferrivbe/home-infrastructure/internal/adapters/http/dto"
	"github.com/ferrivbe/home-infrastructure/internal/domain"
	"github.com/ferrivbe/home-infrastructure/internal/platform/logging"
)

// tenantKey is the context key for the tenant id resolved from the request
// host subdomain.
type tenantKey struct{}

// tenantExemptPaths are served without tenant resolution: infrastructure
// probes and the documentation surface.
var tenantExemptPaths = map[string]bool{
	"/health":       true,
	"/service":      true,
	"/docs":         true,
	"/openapi.json": true,
}

// WithTenantID returns a new context carrying the resolved tenant id.
func WithTenantID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, tenantKey{}, id)
}

// TenantIDFromContext extracts the tenant id from the context.
// Returns an empty string if none is stored.
func TenantIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(tenantKey{}).(string); ok {
		return id
	}
	return ""
}

// Tenant returns middleware that resolves the tenant id from the request host.
// The host must be a single-label subdomain of apiHost ("<id>.<apiHost>");
// the id is stored in the request context for downstream handlers. Requests
// whose host does not match are rejected with a 404 ApplicationMissing
// envelope before reaching the router. Paths in tenantExemptPaths bypass
// resolution entirely.
func Tenant(apiHost string, logger *logging.RequestLogger) func(http.Handler) http.Handler {
	// Anchored on both ends so a crafted host like "evil.com/x.<apiHost>"
	// or a trailing-garbage host cannot spoof a tenant.
	pattern := regexp.MustCompile(`^([^.]+)\.` + regexp.QuoteMeta(apiHost) + `$`)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tenantExemptPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			host := requestHost(r)
			m := pattern.FindStringSubmatch(host)
			if m == nil {
				dto.WriteError(w, r, logger,
					domain.NewNotFoundError("ApplicationMissing", "Application id not found.", host))
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenantID(r.Context(), m[1])))
		})
	}
}

// requestHost returns the request host with any port stripped.
func requestHost(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.Host); err == nil {
		return host
	}
	return r.Host
}
