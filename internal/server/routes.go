package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contentdash/internal/handlers"
	"contentdash/internal/handlers/api"
	"contentdash/views"
)

// Store is everything the routes need from the database.
type Store interface {
	handlers.TopicReader
	handlers.Pinger
	api.UserFinder
	api.TopicWriter
}

// RegisterRoutes registers all application routes. notifier may be nil.
func (s *Server) RegisterRoutes(store Store, notifier api.SelectionNotifier) {
	pageHandler := handlers.NewPageHandler(store, s.Cfg)
	authHandler := api.NewAuthHandler(store, s.Cfg)
	topicHandler := api.NewTopicHandler(store, notifier, s.Cfg)

	// Static assets
	s.App.Get("/static*", static.New("", static.Config{FS: views.Static()}))

	// Pages; the auth gate decides who may see them
	s.App.Get("/", pageHandler.Home)
	s.App.Get("/dashboard", pageHandler.Dashboard)
	s.App.Get("/selected-topics", pageHandler.SelectedTopics)
	s.App.Get("/topic/:id", pageHandler.Topic)

	// JSON API
	apiGroup := s.App.Group("/api")
	apiGroup.Post("/auth/login", authHandler.Login)
	apiGroup.Post("/auth/logout", authHandler.Logout)
	apiGroup.Put("/topics/update-status", topicHandler.UpdateStatus)
	apiGroup.Put("/topics/update-note", topicHandler.UpdateNote)
	apiGroup.Put("/topics/update-urls", topicHandler.UpdateURLs)

	// Operations
	s.App.Get("/healthz", handlers.Healthz(store))
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
