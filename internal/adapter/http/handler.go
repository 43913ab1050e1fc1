package httpadapter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"mesa-console/internal/adapter/usecase"
	"mesa-console/internal/config/configs"
	"mesa-console/internal/core/domain"
	"mesa-console/internal/core/port"
	"mesa-console/internal/metrics"
)

// Deps are the collaborators the console handlers call into.
type Deps struct {
	Sessions  *usecase.Sessions
	Auth      *usecase.AuthProvider
	Theme     *usecase.ThemeProvider
	Language  *usecase.LanguageProvider
	Deletions *usecase.Deletions

	Agencies      port.AgencyAPI
	Users         port.UserAPI
	Campaigns     port.CampaignAPI
	Ads           port.AdAPI
	Products      port.ProductAPI
	Sellers       port.SellerAPI
	Notifications port.NotificationAPI

	Metrics *metrics.Metrics

	Session configs.Session
	// AllowedOrigins may call the /options JSON endpoints cross-origin.
	AllowedOrigins []string
	// Languages are the locales offered by the language switcher.
	Languages []string
}

// Handler contains dependencies and routes. It is an inbound adapter for
// HTTP serving the server-rendered console. Routes are registered on a
// chi.Router; role gates are applied per route group.
type Handler struct {
	deps     Deps
	logger   *slog.Logger
	validate *validator.Validate
	router   chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(deps Deps, logger *slog.Logger) *Handler {
	h := &Handler{deps: deps, logger: logger, validate: newValidator()}
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(h.requestID)
	r.Use(h.logRequests)
	r.Use(h.observe)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.handleHealth)
	r.Handle("/metrics", deps.Metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(h.session)

		r.Get("/", h.handleHome)
		r.Get("/login", h.handleLoginForm)
		r.Post("/login", h.handleLogin)
		r.Post("/logout", h.handleLogout)
		r.Get("/unauthorized", h.handleUnauthorized)
		r.Post("/preferences/theme", h.handleTheme)
		r.Post("/preferences/language", h.handleLanguage)

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.RequireRoles(domain.RoleAdmin))
			r.Route("/agencies", h.agencyRoutes)
			r.Route("/users", h.userRoutes)
			r.Get("/campaigns", h.handleAdminCampaigns)
			r.Get("/campaigns/{id}/delete", h.handleCampaignDeleteDialog)
			r.Post("/campaigns/{id}/delete", h.handleCampaignDelete)
		})

		r.Route("/agency", func(r chi.Router) {
			r.Use(h.RequireRoles(domain.RoleAgencyManager))
			r.Get("/advertisers", h.handleAgencyAdvertisers)
			r.Get("/campaigns", h.handleAgencyCampaigns)
		})

		r.Route("/advertiser", func(r chi.Router) {
			r.Use(h.RequireRoles(domain.RoleAdvertiser))
			r.Route("/campaigns", h.advertiserCampaignRoutes)
			r.Route("/products", h.productRoutes)
		})

		r.Group(func(r chi.Router) {
			r.Use(h.RequireRoles())
			r.Get("/notifications", h.handleNotifications)
			r.Post("/notifications/{id}/read", h.handleNotificationRead)
		})

		// CORS runs ahead of the guard so preflight requests are answered.
		r.Route("/options", func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   deps.AllowedOrigins,
				AllowedMethods:   []string{http.MethodGet, http.MethodOptions},
				AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
				AllowCredentials: true,
				MaxAge:           300,
			}))
			r.Use(h.RequireRoles())
			r.Get("/{resource}", h.handleOptions)
		})
	})

	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}
