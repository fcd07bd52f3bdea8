package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func NewRouter(h *Handler, allowedOrigins []string, scanLimit *IPRateLimiter) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/state", h.GetState)
		r.Post("/navigate", h.Navigate)
		r.Post("/logout", h.Logout)

		r.Get("/login", h.GetLoginForm)
		r.Post("/login", h.SubmitLogin)
		r.Post("/login/mode", h.ToggleLoginMode)

		r.Group(func(r chi.Router) {
			if scanLimit != nil {
				r.Use(scanLimit.Middleware)
			}
			r.Post("/scan", h.Scan)
		})

		r.Route("/community/posts", func(r chi.Router) {
			r.Get("/", h.ListPosts)
			r.Post("/", h.CreatePost)
			r.Post("/{id}/like", h.ToggleLike)
			r.Put("/{id}/comment-input", h.SetCommentInput)
			r.Post("/{id}/comments", h.AddComment)
		})
	})

	return r
}
