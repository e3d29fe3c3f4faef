package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lumiskin/skincare-api/internal/catalog"
	"github.com/lumiskin/skincare-api/internal/http/health"
	"github.com/lumiskin/skincare-api/internal/http/v1/routes"
	"github.com/lumiskin/skincare-api/internal/platform/auth"
	"github.com/lumiskin/skincare-api/internal/platform/firebase"
	"github.com/lumiskin/skincare-api/internal/platform/logging"
	appmiddleware "github.com/lumiskin/skincare-api/internal/platform/middleware"
	"github.com/lumiskin/skincare-api/internal/reconcile"
	"github.com/lumiskin/skincare-api/internal/service/account"
	"github.com/lumiskin/skincare-api/internal/service/routine"
	"github.com/lumiskin/skincare-api/internal/session"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

func main() {
	// Local development convenience; missing .env is not an error.
	_ = godotenv.Load()

	defer func() {
		if err := logging.Sync(); err != nil {
			logging.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := logging.Err(); err != nil {
		logging.LogError(context.Background(), "logger init error", err)
	}

	ctx := context.Background()

	items, err := catalog.Load()
	if err != nil {
		logging.LogFatal(ctx, "failed to load catalog", err)
	}
	engine := catalog.NewEngine(items)

	sessionPath := os.Getenv("SESSION_DB_PATH")
	if sessionPath == "" {
		sessionPath = "./data/sessions"
	}
	sessionDB, err := session.OpenBadger(sessionPath)
	if err != nil {
		logging.LogFatal(ctx, "failed to open session storage", err, zap.String("path", sessionPath))
	}
	defer func() {
		if err := sessionDB.Close(); err != nil {
			logging.LogError(context.Background(), "session storage close error", err)
		}
	}()
	sessions := session.NewManager(sessionDB)

	clients, err := firebase.InitializeClients(ctx, firebase.Config{
		ProjectID:                    os.Getenv("FIREBASE_PROJECT_ID"),
		GoogleApplicationCredentials: os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
	})
	if err != nil {
		logging.LogFatal(ctx, "failed to initialize Firebase", err)
	}
	defer func() {
		if err := clients.Close(); err != nil {
			logging.LogError(context.Background(), "Firebase close error", err)
		}
	}()

	verifier := auth.NewFirebaseVerifier(clients.Auth)
	accounts := account.NewFirestoreStore(clients.Firestore)
	routines := routine.NewFirestoreStore(clients.Firestore)
	reconciler := reconcile.New(accounts, routines)

	router := chi.NewRouter()

	// Base middleware stack
	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address.
		chimiddleware.RealIP,
		// RequestSize limits request body size to prevent memory exhaustion from large payloads.
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		logging.RequestLogger(),
		logging.AccessLogger(),
		chimiddleware.Recoverer,
	)

	router.Get("/healthz", health.Handler)

	cfg := huma.DefaultConfig("LumiSkin Catalog API", Version)
	cfg.DocsPath = "/api-docs"
	api := humachi.New(router, cfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	routes.Register(api, verifier, routes.Deps{
		Catalog:    engine,
		Sessions:   sessions,
		Accounts:   accounts,
		Reconciler: reconciler,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		logging.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		logging.LogError(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	case <-stop:
		logging.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.LogError(shutdownCtx, "server shutdown error", err)
	}
	logging.LogInfo(context.Background(), "server exited")
}
