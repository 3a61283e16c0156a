package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manjuraavi/linkedin-career-coach/internal/ai"
	"github.com/manjuraavi/linkedin-career-coach/internal/ai/gemini"
	"github.com/manjuraavi/linkedin-career-coach/internal/coach"
	"github.com/manjuraavi/linkedin-career-coach/internal/scraper"
	"github.com/manjuraavi/linkedin-career-coach/internal/secrets"
	"github.com/manjuraavi/linkedin-career-coach/internal/session"

	"go.uber.org/zap"
)

// newCompleter builds the Gemini-backed completion collaborator from config.
func newCompleter(ctx context.Context, config *Config, logger *zap.Logger) (ai.Completer, error) {
	var cfg GeminiConfig
	if config != nil && config.Gemini != nil {
		cfg = *config.Gemini
	}

	apiKey, err := secrets.Load(secrets.Source{
		Name: "gemini api key",
		File: cfg.APIKeyFile,
		Env:  "GEMINI_API_KEY",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set gemini.api-key-file or GEMINI_API_KEY)", err)
	}

	logger.Info("using gemini completer", zap.String("model", cfg.Model))

	return gemini.NewGenerator(ctx, apiKey, cfg.Model, cfg.Timeout)
}

// newScraper builds the Apify-backed profile fetcher from config.
func newScraper(config *Config, logger *zap.Logger) (*scraper.Client, error) {
	var cfg ScraperConfig
	if config != nil && config.Scraper != nil {
		cfg = *config.Scraper
	}

	token, err := secrets.Load(secrets.Source{
		Name: "apify token",
		File: cfg.TokenFile,
		Env:  "APIFY_TOKEN",
	})
	if err != nil {
		return nil, fmt.Errorf("%w (set scraper.token-file or APIFY_TOKEN)", err)
	}

	client := scraper.New(token, logger)
	if len(cfg.ActorIDs) > 0 {
		client.ActorIDs = cfg.ActorIDs
	}
	if cfg.PollInterval > 0 {
		client.PollInterval = cfg.PollInterval
	}
	if cfg.RunTimeout > 0 {
		client.RunTimeout = cfg.RunTimeout
	}

	return client, nil
}

// newStore builds the configured session store. The returned closer is a no-op
// for the in-memory backend.
func newStore(ctx context.Context, config *Config, logger *zap.Logger) (session.Store, func() error, error) {
	backend := "memory"
	if config != nil && config.Store != nil && config.Store.Backend != "" {
		backend = strings.ToLower(strings.TrimSpace(config.Store.Backend))
	}

	switch backend {
	case "memory":
		logger.Info("using in-memory session store")
		return session.NewMemoryStore(), func() error { return nil }, nil
	case "redis":
		if config.Store.Redis == nil {
			return nil, nil, errors.New("store.redis configuration is required for the redis backend")
		}

		store, err := session.NewRedisStore(ctx, *config.Store.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}

		logger.Info("using redis session store", zap.String("address", config.Store.Redis.Address))
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", backend)
	}
}

// buildService wires the full conversational service from config.
func buildService(ctx context.Context, config *Config, logger *zap.Logger) (*coach.Service, func() error, error) {
	completer, err := newCompleter(ctx, config, logger)
	if err != nil {
		return nil, nil, err
	}

	fetcher, err := newScraper(config, logger)
	if err != nil {
		return nil, nil, err
	}

	store, closer, err := newStore(ctx, config, logger)
	if err != nil {
		return nil, nil, err
	}

	engine := coach.NewEngine(completer, logger)

	return coach.NewService(engine, store, fetcher, logger), closer, nil
}
