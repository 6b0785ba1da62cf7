package routes

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"postboard/app/controllers"
	"postboard/app/middleware"
)

// Handlers groups the controllers the router dispatches to.
type Handlers struct {
	Posts    *controllers.PostController
	Comments *controllers.CommentController
	Health   *controllers.HealthController
}

// Route is one entry of the API route table. Path is relative to the
// configured base path.
type Route struct {
	Name    string
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Table lists every API route. Collection routes answer with and without a
// trailing slash.
func Table(h Handlers) []Route {
	return []Route{
		{"ListPosts", http.MethodGet, "", h.Posts.Index},
		{"ListPosts", http.MethodGet, "/", h.Posts.Index},
		{"CreatePost", http.MethodPost, "", h.Posts.Create},
		{"CreatePost", http.MethodPost, "/", h.Posts.Create},
		{"GetPost", http.MethodGet, "/{id:[0-9]+}", h.Posts.Show},
		{"UpdatePost", http.MethodPut, "/{id:[0-9]+}", h.Posts.Edit},
		{"DeletePost", http.MethodDelete, "/{id:[0-9]+}", h.Posts.Delete},
		{"ListComments", http.MethodGet, "/{id:[0-9]+}/comments", h.Comments.Index},
		{"CreateComment", http.MethodPost, "/{id:[0-9]+}/comments", h.Comments.Create},
	}
}

// SetupRoutes defines the application's routes and returns a router.
func SetupRoutes(basePath string, h Handlers, log zerolog.Logger) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer)

	// mux skips middleware for unmatched requests, so wrap these explicitly
	router.NotFoundHandler = wrap(http.HandlerFunc(controllers.NotFound), log)
	router.MethodNotAllowedHandler = wrap(http.HandlerFunc(controllers.MethodNotAllowed), log)

	if h.Health != nil {
		router.HandleFunc("/healthz", h.Health.Check).Methods(http.MethodGet)
	}

	// API routes with JSON content type
	prefix := strings.TrimRight(basePath, "/")
	var api *mux.Router
	if prefix == "" {
		api = router.NewRoute().Subrouter()
	} else {
		api = router.PathPrefix(prefix).Subrouter()
	}
	api.Use(middleware.ContentTypeJSON)

	for _, rt := range Table(h) {
		api.HandleFunc(rt.Path, rt.Handler).Methods(rt.Method).Name(rt.Name)
	}

	return router
}

func wrap(h http.Handler, log zerolog.Logger) http.Handler {
	return middleware.RequestID(middleware.Logger(log)(middleware.Recoverer(h)))
}
