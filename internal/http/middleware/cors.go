package middleware

import (
	"net/http"
	"strings"
)

const (
	corsAllowHeaders  = "Content-Type, X-Request-ID"
	corsAllowMethods  = "GET, POST, OPTIONS"
	corsExposeHeaders = "X-Request-ID"
	corsMaxAge        = "600"
)

// widgetOrigins is the set of sites allowed to embed the chat widget.
type widgetOrigins struct {
	any   bool
	sites map[string]struct{}
}

func newWidgetOrigins(origins []string) widgetOrigins {
	w := widgetOrigins{sites: make(map[string]struct{}, len(origins))}
	for _, o := range origins {
		o = normalizeOrigin(o)
		switch o {
		case "":
		case "*":
			w.any = true
		default:
			w.sites[o] = struct{}{}
		}
	}
	return w
}

func (w widgetOrigins) allows(origin string) bool {
	if w.any {
		return true
	}
	_, ok := w.sites[normalizeOrigin(origin)]
	return ok
}

// normalizeOrigin lowercases and drops a trailing slash, so
// "https://Widget.example.com/" matches "https://widget.example.com".
func normalizeOrigin(o string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(o)), "/")
}

// CORS lets the chat widget call /chat from the sites in allowedOrigins ("*"
// admits any site). Preflights from other sites are refused with 403; simple
// requests from them go through without CORS headers, so the browser blocks
// the response.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	sites := newWidgetOrigins(allowedOrigins)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := strings.TrimSpace(r.Header.Get("Origin"))
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			h := w.Header()
			h.Add("Vary", "Origin")
			preflight := r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != ""

			if !sites.allows(origin) {
				if preflight {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			h.Set("Access-Control-Allow-Origin", origin)
			if !preflight {
				h.Set("Access-Control-Expose-Headers", corsExposeHeaders)
				next.ServeHTTP(w, r)
				return
			}
			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Max-Age", corsMaxAge)
			w.WriteHeader(http.StatusNoContent)
		})
	}
}
