package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

type RouterDeps struct {
	Tasks          *TaskHandler
	Comments       *CommentHandler
	DB             Pinger
	Logger         *zap.Logger
	AllowedOrigins []string
}

// NewRouter registers every route of the API.
func NewRouter(d RouterDeps) http.Handler {
	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(d.Logger))
	r.Use(middleware.Recoverer)

	r.Get("/", Home)
	r.Get("/health", Health(d.DB, d.Logger))

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			ExposedHeaders: []string{"Location"},
			MaxAge:         300,
		}))

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", d.Tasks.List)
			r.Post("/", d.Tasks.Create)
			r.Put("/{id}", d.Tasks.Update)
			r.Patch("/{id}", d.Tasks.Update)
			r.Delete("/{id}", d.Tasks.Delete)

			r.Get("/{id}/comments", d.Comments.List)
			r.Post("/{id}/comments", d.Comments.Create)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Put("/{id}", d.Comments.Update)
			r.Patch("/{id}", d.Comments.Update)
			r.Delete("/{id}", d.Comments.Delete)
		})
	})

	return r
}
