package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/taxxyapp/taxxy/internal/common"
	"github.com/taxxyapp/taxxy/internal/config"
	"github.com/taxxyapp/taxxy/internal/llm"
	"github.com/taxxyapp/taxxy/internal/relevance"
	"github.com/taxxyapp/taxxy/internal/service"
	"github.com/taxxyapp/taxxy/internal/storage"
)

// initStorage initializes the storage service with migrations applied.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/taxxy/taxxy.db"
	}

	dbPath = config.ExpandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// initClassifier wires the retriever and classifier on top of storage.
func initClassifier(store service.Storage) (*llm.Classifier, error) {
	cfg := llm.Config{
		Provider:    viper.GetString("llm.provider"),
		Model:       viper.GetString("llm.model"),
		APIKey:      viper.GetString("llm.api_key"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		MaxRetries:  viper.GetInt("llm.max_retries"),
		RetryDelay:  viper.GetDuration("llm.retry_delay"),
		CacheTTL:    viper.GetDuration("llm.cache_ttl"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
	}

	if cfg.Provider == "" {
		cfg.Provider = "openai"
	}
	if cfg.APIKey == "" {
		switch cfg.Provider {
		case "anthropic":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		default:
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		}
	}

	retriever := relevance.NewRetriever(store, slog.Default())
	return llm.NewClassifier(cfg, retriever, slog.Default())
}

// requireOwner resolves the owner identity from flag/config.
func requireOwner() (string, error) {
	owner := viper.GetString("owner")
	if owner == "" {
		return "", common.NewUserError("no owner configured: pass --owner or set owner in config", common.ErrMissingOwner)
	}
	return owner, nil
}

// classifyTimeout bounds a single completion round trip so a hung call never
// blocks transaction creation indefinitely.
const classifyTimeout = 30 * time.Second
