package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/css-prep/backend/internal/config"
	"github.com/css-prep/backend/internal/database"
	"github.com/css-prep/backend/internal/generator"
	"github.com/css-prep/backend/internal/history"
	"github.com/css-prep/backend/internal/kv"
	"github.com/css-prep/backend/internal/logger"
	"github.com/css-prep/backend/internal/quiz"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Storage backend
	store, closeStore, err := newKVStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("Failed to initialise storage")
	}
	defer closeStore()

	historyStore := history.NewStore(store, log)
	provider := newProvider(cfg, log)
	registry := quiz.NewRegistry(provider, historyStore, log)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	quiz.NewHandler(registry, log).RegisterRoutes(api)
	history.NewHandler(historyStore, log).RegisterRoutes(api)

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           c.Handler(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("generator", cfg.Generator).Str("storage", cfg.StorageBackend).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}
}

func newKVStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (kv.Store, func(), error) {
	switch cfg.StorageBackend {
	case config.StorageRedis:
		rdb, err := database.NewRedisClient(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewRedis(rdb, cfg.KVNamespace), func() { rdb.Close() }, nil

	case config.StoragePostgres:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.Migrate(db, log); err != nil {
			db.Close()
			return nil, nil, err
		}
		return kv.NewPostgres(db), func() { db.Close() }, nil

	default:
		if cfg.StorageBackend != config.StorageMemory {
			log.Warn().Str("backend", cfg.StorageBackend).Msg("Unknown storage backend, using memory")
		}
		return kv.NewMemory(), func() {}, nil
	}
}

func newProvider(cfg *config.Config, log zerolog.Logger) quiz.Provider {
	switch cfg.Generator {
	case "remote":
		log.Info().Str("url", cfg.MCQServiceURL).Msg("Questions from remote MCQ service")
		return generator.NewRemoteClient(cfg.MCQServiceURL, cfg.GenerationTimeout)
	case "api":
		log.Info().Str("model", cfg.AnthropicModel).Msg("Questions from Anthropic API")
		return generator.NewGenerator(generator.NewAPIClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, log), cfg.AnthropicModel, cfg.GenerationTimeout, log)
	case "cli":
		log.Info().Str("path", cfg.ClaudeCLIPath).Msg("Questions from Claude CLI")
		return generator.NewGenerator(generator.NewCLIClient(cfg.ClaudeCLIPath), "claude-cli", cfg.GenerationTimeout, log)
	default:
		log.Info().Msg("Questions from mock generator")
		return generator.NewGenerator(generator.NewMockClient(), "mock", cfg.GenerationTimeout, log)
	}
}
