package router

import (
	"log"
	"net/http"

	"github.com/dessertly/api/internal/config"
	"github.com/dessertly/api/internal/database"
	"github.com/dessertly/api/internal/handler"
	mw "github.com/dessertly/api/internal/middleware"
	"github.com/dessertly/api/internal/service"
	"github.com/dessertly/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, queries *database.Queries, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	metrics := mw.NewServerMetrics(nil)
	r.Use(metrics.Instrument)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173", // dashboard dev server
			"https://app.dessertly.com",
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(queries, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		r.Get("/me", authHandler.Me)

		// Orders
		orderService := service.NewOrderService(queries)
		orderHandler := handler.NewOrderHandler(orderService, queries, hub)
		r.Route("/orders", orderHandler.RegisterRoutes)

		// Clients
		clientHandler := handler.NewClientHandler(queries)
		r.Route("/clients", clientHandler.RegisterRoutes)

		// Recipes
		recipeHandler := handler.NewRecipeHandler(queries)
		r.Route("/recipes", recipeHandler.RegisterRoutes)

		// Dashboard
		dashboardHandler := handler.NewDashboardHandler(queries, nil)
		r.Route("/dashboard", dashboardHandler.RegisterRoutes)
	})

	log.Println("Router initialized with all handlers")
	return r
}
