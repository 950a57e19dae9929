package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/maktaba-cloud/matndex/internal/config"
	"github.com/maktaba-cloud/matndex/internal/engine"
	"github.com/maktaba-cloud/matndex/internal/engine/opensearch"
	"github.com/maktaba-cloud/matndex/internal/highlight"
	logpkg "github.com/maktaba-cloud/matndex/internal/logger"
	"github.com/maktaba-cloud/matndex/internal/metrics"
	"github.com/maktaba-cloud/matndex/internal/repository/metadata"
	searchrepo "github.com/maktaba-cloud/matndex/internal/repository/search"
	chiTransport "github.com/maktaba-cloud/matndex/internal/transport/chi"
	healthuc "github.com/maktaba-cloud/matndex/internal/usecase/health"
	searchuc "github.com/maktaba-cloud/matndex/internal/usecase/search"
	"github.com/maktaba-cloud/matndex/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting matndex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("engine_addr", cfg.Engine.Addr),
		zap.String("engine_index", cfg.Engine.Index),
		zap.String("metadata_driver", cfg.Metadata.Driver),
	)

	store, err := opensearch.NewStore(opensearch.Config{
		Addr:     cfg.Engine.Addr,
		Username: cfg.Engine.Username,
		Password: cfg.Engine.Password,
		Timeout:  time.Duration(cfg.Engine.RequestTimeout) * time.Second,
	})
	if err != nil {
		logger.Fatal("Failed to create engine store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Engine.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Engine not ready", zap.Error(err))
	}
	logger.Info("Connected to search engine")

	if cfg.Engine.EnsureIndex {
		if err := ensureIndex(ctx, store, cfg); err != nil {
			logger.Fatal("Failed to ensure index", zap.Error(err))
		}
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	snapshot, err := loadCatalog(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to load catalog", zap.Error(err))
	}
	logger.Info("Catalog loaded",
		zap.Int("texts", snapshot.TextCount()),
		zap.Int("authors", snapshot.AuthorCount()),
	)
	metrics.CatalogEntries.WithLabelValues("text").Set(float64(snapshot.TextCount()))
	metrics.CatalogEntries.WithLabelValues("author").Set(float64(snapshot.AuthorCount()))

	searchRepo := searchrepo.New(store, searchrepo.Config{
		Index:           cfg.Engine.Index,
		ExactField:      cfg.Search.ExactField,
		CliticField:     cfg.Search.CliticField(),
		MaxResultWindow: cfg.Search.MaxResultWindow,
		FragmentCount:   cfg.Search.FragmentCount,
		FragmentSize:    cfg.Search.FragmentSize,
		PreTag:          cfg.Search.HighlightPre,
		PostTag:         cfg.Search.HighlightPost,
	})

	highlighter := highlight.New(cfg.Search.HighlightPre, cfg.Search.HighlightPost)

	searchSvc := searchuc.New(searchRepo, snapshot, highlighter, searchuc.Limits{
		DefaultPageSize: cfg.Search.DefaultPageSize,
		MaxPageSize:     cfg.Search.MaxPageSize,
		ExportPageSize:  cfg.Search.ExportPageSize,
	})
	healthSvc := healthuc.New(store, snapshot)

	server := chiTransport.NewServer(searchSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// ensureIndex creates the page index with the corpus mapping when absent.
func ensureIndex(ctx context.Context, store *opensearch.Store, cfg config.Config) error {
	exists, err := store.IndexExists(ctx, cfg.Engine.Index)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	body, err := opensearch.BuildIndexBody(opensearch.MappingConfig{
		ContentField:    cfg.Search.ExactField,
		CliticSubfield:  cfg.Search.CliticSubfield,
		Clitics:         cfg.Search.Clitics,
		MaxResultWindow: cfg.Search.MaxResultWindow,
	})
	if err != nil {
		return fmt.Errorf("build index body: %w", err)
	}

	if err := store.CreateIndex(ctx, cfg.Engine.Index, body); err != nil {
		// A concurrent replica may have won the race; that is fine.
		if errors.Is(err, engine.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// loadCatalog builds the metadata snapshot from the configured source.
func loadCatalog(ctx context.Context, cfg config.Config, logger *zap.Logger) (*metadata.Snapshot, error) {
	var src metadata.Source

	switch cfg.Metadata.Driver {
	case "file":
		src = metadata.NewFileSource(cfg.Metadata.Path)
	case "redis":
		redisSrc, err := metadata.NewRedisSource(metadata.RedisConfig{
			Addrs:     cfg.Metadata.Addrs,
			Username:  cfg.Metadata.Username,
			Password:  cfg.Metadata.Password,
			KeyPrefix: cfg.Metadata.KeyPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("create redis source: %w", err)
		}
		defer redisSrc.Close()

		if err := redisSrc.Ping(ctx); err != nil {
			return nil, fmt.Errorf("redis not reachable: %w", err)
		}
		src = redisSrc
	default:
		return nil, fmt.Errorf("unknown metadata driver %q", cfg.Metadata.Driver)
	}

	logger.Info("Loading catalog", zap.String("driver", cfg.Metadata.Driver))
	return metadata.Load(ctx, src)
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.WithContext(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
