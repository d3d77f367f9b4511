package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/arcadehub/portal/internal/portal/service"
	"github.com/arcadehub/portal/internal/portal/store"
	"github.com/arcadehub/portal/pkg/httpx"
	"github.com/arcadehub/portal/pkg/slogx"

	_ "github.com/arcadehub/portal/api/portal" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	cookies      Cookies

	store            store.Store
	AuthService      *service.AuthService
	UserService      *service.UserService
	SessionService   *service.SessionService
	TwoFactorService *service.TwoFactorService
	Guard            service.Guard
}

func NewRouter(
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
	cookies Cookies,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		cookies:      cookies,
		store:        st,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerUsers()
	r.registerTwoFactor()
	r.registerAdmin()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Arcade Hub Portal API
//	@version		0.1.0
//	@description	Cookie-based session authentication with optional TOTP second factor.
//	@description
//	@description	Sessions are opaque server-side tokens carried in an HttpOnly cookie,
//	@description	so revocation takes effect immediately.
//
//	@contact.name	Arcade Hub Team
//	@contact.url	https://github.com/arcadehub/portal
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// authed wraps a handler with the session-resolving middleware. The handlers
// themselves enforce whether a user is required.
func (r *Router) authed(h http.Handler) http.Handler {
	return httpx.Chain(h, SessionAuthn(r.SessionService, r.UserService))
}

func (r *Router) registerAuth() {
	h := &AuthHandler{
		AuthService: r.AuthService,
		UserService: r.UserService,
		Cookies:     r.cookies,
	}

	r.Mux.Handle("POST /v1/auth/register", http.HandlerFunc(h.HandleRegister))
	r.Mux.Handle("POST /v1/auth/login", http.HandlerFunc(h.HandleLogin))
	r.Mux.Handle("POST /v1/auth/2fa", http.HandlerFunc(h.HandleSecondFactor))
	r.Mux.Handle("POST /v1/auth/logout", http.HandlerFunc(h.HandleLogout))
}

func (r *Router) registerUsers() {
	h := &UsersHandler{
		UserService: r.UserService,
		Guard:       r.Guard,
	}

	r.Mux.Handle("GET /v1/users/{id}", r.authed(http.HandlerFunc(h.HandleGet)))
	r.Mux.Handle("PATCH /v1/users/{id}", r.authed(http.HandlerFunc(h.HandlePatch)))
}

func (r *Router) registerTwoFactor() {
	h := &TwoFactorHandler{
		TwoFactorService: r.TwoFactorService,
		Guard:            r.Guard,
	}

	r.Mux.Handle("POST /v1/users/{id}/2fa/enroll", r.authed(http.HandlerFunc(h.HandleEnroll)))
	r.Mux.Handle("POST /v1/users/{id}/2fa/confirm", r.authed(http.HandlerFunc(h.HandleConfirm)))
	r.Mux.Handle("DELETE /v1/users/{id}/2fa", r.authed(http.HandlerFunc(h.HandleDisable)))
}

func (r *Router) registerAdmin() {
	h := &AdminHandler{
		UserService: r.UserService,
		Guard:       r.Guard,
	}

	r.Mux.Handle("GET /v1/admin/users", r.authed(http.HandlerFunc(h.HandleList)))
	r.Mux.Handle("POST /v1/admin/users", r.authed(http.HandlerFunc(h.HandleCreate)))
	r.Mux.Handle("DELETE /v1/admin/users/{id}", r.authed(http.HandlerFunc(h.HandleDelete)))
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store))
}
