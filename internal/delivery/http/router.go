package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/SaiDecoratives/templehub-catalog/internal/config"
	"github.com/SaiDecoratives/templehub-catalog/internal/delivery/http/handler"
	"github.com/SaiDecoratives/templehub-catalog/internal/delivery/http/middleware"
	"github.com/SaiDecoratives/templehub-catalog/internal/delivery/http/response"
	"github.com/SaiDecoratives/templehub-catalog/internal/pkg/logger"
)

// Router holds HTTP handlers and router configuration
type Router struct {
	productHandler *handler.ProductHandler
	imageHandler   *handler.ImageHandler
	reviewHandler  *handler.ReviewHandler
	logger         *logger.Logger
	cfg            *config.Config
}

// NewRouter creates a new HTTP router
func NewRouter(
	productHandler *handler.ProductHandler,
	imageHandler *handler.ImageHandler,
	reviewHandler *handler.ReviewHandler,
	cfg *config.Config,
	log *logger.Logger,
) *Router {
	return &Router{
		productHandler: productHandler,
		imageHandler:   imageHandler,
		reviewHandler:  reviewHandler,
		logger:         log,
		cfg:            cfg,
	}
}

// Setup configures and returns the HTTP router
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   rt.cfg.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", rt.healthCheck)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Uploaded product images are served statically under /images.
	fileServer := http.StripPrefix("/images/", http.FileServer(http.Dir(rt.cfg.Images.Dir)))
	r.Get("/images/*", func(w http.ResponseWriter, r *http.Request) {
		fileServer.ServeHTTP(w, r)
	})

	r.Route("/products", func(r chi.Router) {
		// Public catalog reads.
		r.Get("/", rt.productHandler.List)
		r.Get("/find/{id}", rt.productHandler.GetByID)

		// Authenticated surface.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.cfg.Auth.JWTSecret))

			r.Put("/review/{id}", rt.reviewHandler.Add)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdmin)

				r.Post("/", rt.productHandler.Create)
				r.Put("/{id}", rt.productHandler.Update)
				r.Delete("/{id}", rt.productHandler.Delete)
				r.Post("/sale", rt.productHandler.SetSale)
				r.Get("/sale", rt.productHandler.GetSale)
				r.Post("/images/upload/{id}", rt.imageHandler.Upload)
				r.Delete("/images/remove/{id}", rt.imageHandler.Remove)
			})
		})
	})

	return r
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
