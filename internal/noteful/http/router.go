package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/aussiebroadwan/noteful/api/noteful" // Swagger docs
	"github.com/aussiebroadwan/noteful/internal/noteful/service"
	"github.com/aussiebroadwan/noteful/internal/noteful/store"
	"github.com/aussiebroadwan/noteful/pkg/httpx"
	"github.com/aussiebroadwan/noteful/pkg/jwtx"
	"github.com/aussiebroadwan/noteful/pkg/slogx"
)

// AccessCookieName is the cookie that carries the access token.
const AccessCookieName = "noteful-auth-token"

// Pinger reports whether a dependency is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configure behaviour shared by every handler.
type Options struct {
	BuildVersion string
	// Production hides error details in 500 responses.
	Production bool
	CORSOrigin string
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware
	handler     http.Handler

	verifier  jwtx.Verifier
	opts      Options
	startTime time.Time
	logger    *slog.Logger

	store          store.Store
	SessionService *service.SessionService
	FolderService  *service.FolderService
	NoteService    *service.NoteService

	// Sessions is checked by /readyz when refresh tokens live outside the
	// database. Optional.
	Sessions Pinger
}

func NewRouter(
	verifier jwtx.Verifier,
	opts Options,
	st store.Store,
	logger *slog.Logger,
) *Router {
	if opts.CORSOrigin == "" {
		opts.CORSOrigin = "*"
	}

	r := &Router{
		Mux:       http.NewServeMux(),
		verifier:  verifier,
		opts:      opts,
		startTime: time.Now(),
		store:     st,
		logger:    logger,
	}

	// Outermost first: the request logger sees the status written by the
	// recoverer.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.Recoverer(opts.Production),
		httpx.SecurityHeaders,
		httpx.CORS(opts.CORSOrigin),
	}

	return r
}

// ApplyRoutes registers every route. Call it once after the services are set.
func (r *Router) ApplyRoutes() {
	r.registerSession()
	r.registerSystem()
	r.registerGated()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())

	r.handler = httpx.Chain(r.Mux, r.middlewares...)
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Noteful API
//	@version		0.1.0
//	@description	Notes and folders behind a cookie session.
//	@description
//	@description	POST /login sets an HttpOnly access token cookie. GET /refreshToken swaps an expired
//	@description	access token for a new one using the refresh token kept on the server.
//
//	@contact.name	AussieBroadWAN Team
//	@contact.url	https://github.com/aussiebroadwan/noteful
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8000
//	@BasePath		/
//
//	@schemes		http https
//
//	@securityDefinitions.apikey	CookieAuth
//	@in							cookie
//	@name						noteful-auth-token
//	@description				Access token set by POST /login.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if r.handler == nil {
		httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
		return
	}
	r.handler.ServeHTTP(w, req)
}

func (r *Router) registerSession() {
	r.Mux.Handle("POST /login", &LoginHandler{
		SessionService: r.SessionService,
		Production:     r.opts.Production,
	})
	r.Mux.Handle("GET /refreshToken", &RefreshHandler{
		SessionService: r.SessionService,
		Production:     r.opts.Production,
	})
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.opts.BuildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.opts.BuildVersion, r.store, r.Sessions))
}

// registerGated puts everything else behind the access cookie. Unknown
// paths are rejected by the gate before they can 404.
func (r *Router) registerGated() {
	folders := &FoldersHandler{FolderService: r.FolderService, Production: r.opts.Production}
	notes := &NotesHandler{NoteService: r.NoteService, Production: r.opts.Production}

	api := chi.NewRouter()
	api.Get("/", HelloHandler)

	api.Route("/api/folders", func(cr chi.Router) {
		cr.Get("/", folders.HandleList)
		cr.Post("/", folders.HandleCreate)
		cr.Get("/{id}", folders.HandleGet)
		cr.Patch("/{id}", folders.HandleRename)
		cr.Put("/{id}", folders.HandleRename)
		cr.Delete("/{id}", folders.HandleDelete)
	})

	api.Route("/api/notes", func(cr chi.Router) {
		cr.Get("/", notes.HandleList)
		cr.Post("/", notes.HandleCreate)
		cr.Get("/{id}", notes.HandleGet)
		cr.Patch("/{id}", notes.HandleUpdate)
		cr.Put("/{id}", notes.HandleUpdate)
		cr.Delete("/{id}", notes.HandleDelete)
	})

	api.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteMessage(w, http.StatusNotFound, "Not Found")
	})
	api.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteMessage(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Mux.Handle("/", httpx.Chain(api,
		httpx.CookieAuthnMiddleware(r.verifier, AccessCookieName),
	))
}
