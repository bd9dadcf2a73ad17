package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"Delver/internal/api/middleware"
	"Delver/internal/api/routes"
	"Delver/internal/config"
	"Delver/internal/core/comments"
	"Delver/internal/core/posts"
	"Delver/internal/core/reactions"
	"Delver/internal/core/users"
	"Delver/internal/db/stores"
	"Delver/internal/logger"
)

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file overlaid on the environment")
	flag.Parse()

	cfg, err := config.New(*envFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	logr, logCloser, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer func() { _ = logCloser.Close() }()
	slog.SetDefault(logr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := stores.Open(ctx, cfg)
	if err != nil {
		logr.Error("failed to open store", "backend", cfg.Backend, "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logr.Warn("failed to close store", "error", err)
		}
	}()
	logr.Info("store ready", "backend", cfg.Backend)

	// Initialize services
	userService := users.NewUserService(st.Users, cfg.RoleCacheTTL, logr)
	postService := posts.NewPostService(st.Posts, userService, logr)
	commentService := comments.NewCommentService(st.Posts, userService, logr)
	reactionService := reactions.NewService(st.Posts, logr)

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)
	rateLimiter := middleware.NewRateLimiter(cfg.RPS, cfg.Burst)

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	if cfg.TrustProxy {
		// Rewrites RemoteAddr from the proxy headers before rate limiting
		r.Use(chiMiddleware.RealIP)
	}
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			log.Printf("Failed to write health response: %v", err)
		}
	})
	r.Handle("/metrics", promhttp.Handler())

	// Forum API is rate limited per client; health and metrics are not
	r.Group(func(r chi.Router) {
		r.Use(rateLimiter.Middleware)
		routes.RegisterPostRoutes(r, postService, authMiddleware)
		routes.RegisterCommentRoutes(r, commentService, authMiddleware)
		routes.RegisterReactionRoutes(r, reactionService, authMiddleware)
		routes.RegisterUserRoutes(r, userService)
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logr.Error("graceful shutdown failed", "error", err)
		}
	}()

	logr.Info("Delver forum starting", "port", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logr.Error("server stopped", "error", err)
		os.Exit(1)
	}
	logr.Info("server stopped")
}
