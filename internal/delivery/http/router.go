package http

import (
	"net/http"
	"strings"

	"clinic-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

// ResourceHandler is the uniform verb set every clinic entity exposes.
type ResourceHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetAll(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Patch(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// Resource binds a handler to its path segment under /api.
type Resource struct {
	Path    string
	Handler ResourceHandler
}

type Router struct {
	router         *mux.Router
	resources      []Resource
	requestLogger  *middleware.RequestLogger
	recovery       *middleware.Recovery
	corsMiddleware *middleware.CORSMiddleware
	rateLimiter    *middleware.RateLimiter
}

// NewRouter builds the router. rateLimiter may be nil to disable rate limiting.
func NewRouter(
	resources []Resource,
	requestLogger *middleware.RequestLogger,
	recovery *middleware.Recovery,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimiter *middleware.RateLimiter,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		resources:      resources,
		requestLogger:  requestLogger,
		recovery:       recovery,
		corsMiddleware: corsMiddleware,
		rateLimiter:    rateLimiter,
	}
}

func (r *Router) Setup() http.Handler {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	for _, resource := range r.resources {
		registerResource(api, resource)
	}

	// Outermost first: recovery, request logging, CORS (so preflights skip routing), rate limit.
	var handler http.Handler = r.router
	if r.rateLimiter != nil {
		handler = r.rateLimiter.Handle(handler)
	}
	handler = r.corsMiddleware.Handle(handler)
	handler = r.requestLogger.Handle(handler)
	handler = r.recovery.Handle(handler)

	return handler
}

func registerResource(api *mux.Router, resource Resource) {
	collection := "/" + strings.TrimPrefix(resource.Path, "/")
	member := collection + "/{id:[0-9]+}"
	h := resource.Handler

	api.HandleFunc(collection, h.Create).Methods(http.MethodPost)
	api.HandleFunc(collection, h.GetAll).Methods(http.MethodGet)
	api.HandleFunc(member, h.GetByID).Methods(http.MethodGet)
	api.HandleFunc(member, h.Update).Methods(http.MethodPut)
	api.HandleFunc(member, h.Patch).Methods(http.MethodPatch)
	api.HandleFunc(member, h.Delete).Methods(http.MethodDelete)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
