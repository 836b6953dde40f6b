// Package server wires the dependency graph and defines the route table.
// This is the composition root: database, services, handlers and middleware
// all come together here, and main.go stays minimal.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/snippet-manager/internal/auth"
	"github.com/sakif/snippet-manager/internal/catalog"
	"github.com/sakif/snippet-manager/internal/config"
	"github.com/sakif/snippet-manager/internal/executor/judge0"
	"github.com/sakif/snippet-manager/internal/handler"
	"github.com/sakif/snippet-manager/internal/middleware"
	sqliteRepo "github.com/sakif/snippet-manager/internal/repository/sqlite"
	"github.com/sakif/snippet-manager/internal/seeder"
	"github.com/sakif/snippet-manager/internal/service"
)

// Server owns the router and the database connection; the connection is
// closed during graceful shutdown.
type Server struct {
	router  *chi.Mux
	config  *config.Config
	logger  *slog.Logger
	db      *sqliteRepo.DB
	catalog *service.CatalogService
}

// New assembles the full dependency chain: database, token service,
// services, handlers, routes. Each layer receives only the interfaces it
// needs.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	authSvc := service.NewAuthService(db.Users(), tokens, logger)
	snippetSvc := service.NewSnippetService(db.Snippets(), logger)
	catalogSvc := service.NewCatalogService(db.Languages(), catalog.New(cfg.LanguagesURL), logger)
	adminSvc := service.NewAdminService(db.Stats(), db.Users(), db, seeder.New(cfg.SeedUsersURL), logger)

	runner := judge0.New(judge0.DefaultConfig(cfg.RapidAPIKey), logger)

	s := &Server{
		router:  chi.NewRouter(),
		config:  cfg,
		logger:  logger,
		db:      db,
		catalog: catalogSvc,
	}

	s.setupRoutes(tokens, authSvc, snippetSvc, adminSvc, runner)
	return s, nil
}

func (s *Server) setupRoutes(
	tokens *auth.TokenService,
	authSvc *service.AuthService,
	snippetSvc *service.SnippetService,
	adminSvc *service.AdminService,
	runner *judge0.Client,
) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	authHandler := handler.NewAuthHandler(authSvc, s.logger)
	snippetHandler := handler.NewSnippetHandler(snippetSvc, s.logger)
	languageHandler := handler.NewLanguageHandler(s.catalog, s.logger)
	executeHandler := handler.NewExecuteHandler(runner, s.logger)
	adminHandler := handler.NewAdminHandler(adminSvc, authSvc, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.With(auth.RequireAuth(tokens)).Get("/auth/me", authHandler.HandleMe)

		r.Get("/languages", languageHandler.HandleList)
		r.Get("/languages/{id}", languageHandler.HandleGet)

		// Snippet routes take an optional session: reads work anonymously
		// with reduced visibility, writes are rejected by the service.
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth(tokens))
			r.Get("/snippets", snippetHandler.HandleList)
			r.Get("/snippets/{id}", snippetHandler.HandleGet)
			r.Post("/snippets", snippetHandler.HandleCreate)
			r.Put("/snippets/{id}", snippetHandler.HandleEdit)
			r.Patch("/snippets/{id}", snippetHandler.HandleUpdateMeta)
			r.Delete("/snippets/{id}", snippetHandler.HandleDelete)
		})

		r.With(auth.OptionalAuth(tokens)).Post("/execute", executeHandler.HandleExecute)

		r.Route("/admin", func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Use(handler.RequireAdmin(authSvc))
			r.Get("/stats", adminHandler.HandleStats)
			r.Get("/users", adminHandler.HandleListUsers)
			r.Post("/users", adminHandler.HandleAddUser)
			r.Post("/query", adminHandler.HandleQuery)
			r.Post("/seed", adminHandler.HandleSeed)
			r.Post("/languages/sync", languageHandler.HandleSync)
		})
	})
}

// Start runs the HTTP server until a shutdown signal arrives, then drains
// in-flight requests and closes the database.
//
// Before listening it makes one best-effort catalog sync; failure is a
// warning, not a startup error, since the stored catalog keeps serving.
func (s *Server) Start() error {
	defer s.db.Close()

	syncCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if _, err := s.catalog.Sync(syncCtx); err != nil {
		s.logger.Warn("startup catalog sync failed", slog.String("error", err.Error()))
	}
	cancel()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // execution requests block while polling
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
