package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"crmstock/internal/server"
)

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func logLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func main() {
	addr := envOr("CS_ADDR", ":8080")
	dbPath := envOr("CS_DB_PATH", "./data/crmstock.db")
	webDir := envOr("CS_WEB_DIR", "./web")
	adminUser := envOr("CS_ADMIN_USER", server.DefaultAdminUser)
	adminPass := envOr("CS_ADMIN_PASS", server.DefaultAdminPass)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(os.Getenv("CS_LOG_LEVEL")),
	}))

	// Ensure DB directory exists
	dbDir := filepath.Dir(dbPath)
	if dbDir != "." && dbDir != "" {
		if err := os.MkdirAll(dbDir, 0700); err != nil {
			log.Fatalf("failed to create db dir %s: %v", dbDir, err)
		}
	}

	db, err := server.OpenDB(dbPath)
	if err != nil {
		log.Fatalf("failed to open db %s: %v", dbPath, err)
	}

	if err := server.RunMigrations(db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}

	store := server.NewSQLiteStore(db)

	auth := server.NewAuthenticator(store, logger.With("component", "auth"))
	if err := auth.BootstrapDefaultAccount(context.Background(), adminUser, adminPass); err != nil {
		log.Fatalf("bootstrap default account: %v", err)
	}

	api := &server.API{
		Store: store,
		Auth:  auth,
		Log:   logger.With("component", "api"),
	}

	r := chi.NewRouter()
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(server.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	}))

	api.Register(r)
	// Frontend assets; API routes above win over the catch-all.
	r.Handle("/*", http.FileServer(http.Dir(webDir)))

	logger.Info("cs-server listening", "addr", addr, "db", dbPath, "web", webDir)
	log.Fatal(http.ListenAndServe(addr, r))
}
