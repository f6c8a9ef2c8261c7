package cli

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/opsdata/opschat/internal/ai"
	"github.com/opsdata/opschat/internal/catalog"
	"github.com/opsdata/opschat/internal/config"
	"github.com/opsdata/opschat/internal/dictionary"
	"github.com/opsdata/opschat/internal/sqlexec"
)

// newLogger builds the logger every opschat command uses.
func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// loadConfig loads .env before anything reads os.Getenv, then validates the
// environment-driven configuration.
func loadConfig(logger *logrus.Logger) (*config.Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newDictionaryStore picks the dictionary backend from configuration. The
// returned cleanup releases whatever the backend holds open.
func newDictionaryStore(ctx context.Context, cfg *config.Config) (dictionary.Store, func(), error) {
	switch cfg.DictionaryProvider {
	case "supabase":
		return dictionary.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey), func() {}, nil
	case "postgres":
		store, err := dictionary.OpenPostgresStore(ctx, cfg.DictionaryDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unsupported dictionary provider: %s", cfg.DictionaryProvider)
	}
}

// buildAgent wires dictionary → catalog → model → executor into an agent.
func buildAgent(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (*ai.Agent, *catalog.Loader, func(), error) {
	store, cleanup, err := newDictionaryStore(ctx, cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create dictionary store: %w", err)
	}

	loader := catalog.NewLoader(store, logger)

	model, err := ai.NewModel(ctx, ai.ModelConfig{
		Provider: cfg.LLMProvider,
		APIKey:   cfg.LLMAPIKey(),
		Model:    cfg.LLMModel,
	})
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	executor := sqlexec.NewExecutor(cfg.PostgresDSN(), logger)

	agent, err := ai.NewAgent(ai.AgentDeps{
		Model:    model,
		Loader:   loader,
		Executor: executor,
		Logger:   logger,
	})
	if err != nil {
		cleanup()
		return nil, nil, nil, err
	}

	logger.WithFields(logrus.Fields{
		"dictionary": cfg.DictionaryProvider,
		"provider":   cfg.LLMProvider,
	}).Debug("agent wired")
	return agent, loader, cleanup, nil
}
