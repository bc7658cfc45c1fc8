// Command souqnad serves the Souqna marketplace session API.
//
// Configuration is environment-driven:
//
//	PORT             listen port (default 8080)
//	GEMINI_API_KEY   enables the shopping assistant
//	GEMINI_MODEL     overrides the generation model
//	REDIS_URL        shared session-liveness store (default in-process)
//	SEED_FILE        YAML seed overriding the embedded marketplace data
//	SESSION_TTL      idle session lifetime, e.g. "45m"
//	LOG_LEVEL        DEBUG | INFO | WARN | ERROR
//
// OpenTelemetry export follows the usual OTEL_* variables.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/souqna/souqna/internal/httpapi"
	"github.com/souqna/souqna/pkg/genai"
	"github.com/souqna/souqna/pkg/logger"
	"github.com/souqna/souqna/pkg/memory"
	"github.com/souqna/souqna/pkg/storefront"
	"github.com/souqna/souqna/pkg/telemetry"
)

func main() {
	log := logger.NewDefaultLogger()
	if err := run(log); err != nil {
		log.Error("Server exited", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run(log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	provider, err := telemetry.Init("souqna")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = provider.Shutdown(shutdownCtx)
	}()

	opts, err := optionsFromEnv(log)
	if err != nil {
		return err
	}

	manager := storefront.NewManager(opts...)
	defer func() {
		_ = manager.Close()
	}()

	go manager.CleanupLoop(ctx, 5*time.Minute)

	server := &http.Server{
		Addr:              ":" + envOr("PORT", "8080"),
		Handler:           httpapi.NewServer(manager, log, provider).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening", map[string]interface{}{
			"operation": "startup",
			"addr":      server.Addr,
		})
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down", map[string]interface{}{"operation": "shutdown"})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func optionsFromEnv(log logger.Logger) ([]storefront.Option, error) {
	opts := []storefront.Option{storefront.WithLogger(log)}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		clientOpts := []genai.Option{genai.WithLogger(log)}
		if model := os.Getenv("GEMINI_MODEL"); model != "" {
			clientOpts = append(clientOpts, genai.WithModel(model))
		}
		opts = append(opts, storefront.WithGenerator(genai.NewClient(key, clientOpts...)))
	} else {
		log.Warn("GEMINI_API_KEY not set, assistant replies will be the fallback apology", map[string]interface{}{
			"operation": "startup",
		})
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		store, err := memory.NewRedisStore(redisURL, "")
		if err != nil {
			return nil, err
		}
		opts = append(opts, storefront.WithMemoryStore(store))
	}

	if seedFile := os.Getenv("SEED_FILE"); seedFile != "" {
		seed, err := storefront.LoadSeed(seedFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, storefront.WithSeed(seed))
	}

	if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return nil, err
		}
		opts = append(opts, storefront.WithSessionTTL(d))
	}

	return opts, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
