package httpadapter

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"mesa-console/internal/adapter/usecase"
	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/guard"
	"mesa-console/internal/core/port"
	"mesa-console/internal/i18n"
)

type ctxKey string

const (
	requestIDKey ctxKey = "rid"
	stateKey     ctxKey = "state"
)

// requestState is everything the session middleware resolved for one
// request.
type requestState struct {
	session *usecase.Session
	auth    *usecase.AuthState
	theme   domain.Theme
	loc     *i18n.Localizer
}

func stateFrom(ctx context.Context) *requestState {
	if st, ok := ctx.Value(stateKey).(*requestState); ok {
		return st
	}
	return &requestState{auth: usecase.Anonymous(), theme: domain.ThemeLight}
}

// RID returns the request ID stored by the requestID middleware.
func RID(ctx context.Context) string {
	if v, ok := ctx.Value(requestIDKey).(string); ok {
		return v
	}
	return ""
}

func (h *Handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid := uuid.NewString()
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey, rid))
		w.Header().Set("X-Request-ID", rid)
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.InfoContext(r.Context(), "http",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", statusOf(ww)),
			slog.String("rid", RID(r.Context())),
			slog.Duration("latency", time.Since(start)),
		)
	})
}

// observe records request metrics labelled by the matched route pattern,
// which keeps label cardinality bounded.
func (h *Handler) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		h.deps.Metrics.ObserveHTTP(route, r.Method, statusOf(ww), time.Since(start))
	})
}

func statusOf(ww middleware.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}

// session identifies the browser by cookie, loads its stored preferences
// and resolves auth, theme and language for the handlers. The bearer token
// is put on the context for the upstream clients.
func (h *Handler) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := h.sessionID(w, r)
		ctx := r.Context()
		s := h.deps.Sessions.Load(ctx, id)
		st := &requestState{
			session: s,
			auth:    h.deps.Auth.Resolve(ctx, s),
			theme:   h.deps.Theme.Current(s),
			loc:     h.deps.Language.Localizer(s, r.Header.Get("Accept-Language")),
		}
		ctx = context.WithValue(ctx, stateKey, st)
		if token := st.auth.Token(); token != "" {
			ctx = port.WithToken(ctx, token)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionID returns the session cookie value, issuing a new cookie when it
// is missing or malformed.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	cfg := h.deps.Session
	if c, err := r.Cookie(cfg.CookieName); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cfg.MaxAge / time.Second),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return id
}

// RequireRoles gates a route group. With no roles only authentication is
// required. While auth is still resolving the loading page is served;
// otherwise the viewer is redirected to sign in or to the unauthorized
// notice.
func (h *Handler) RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			st := stateFrom(r.Context())
			switch d := guard.Decide(st.auth, roles); d {
			case guard.Allow:
				next.ServeHTTP(w, r)
			case guard.Loading:
				h.renderLoading(w, r)
			default:
				h.logger.DebugContext(r.Context(), "route guard redirect",
					slog.String("path", r.URL.Path),
					slog.String("decision", d.String()),
				)
				redirect(w, r, d.Location(), http.StatusFound)
			}
		})
	}
}
