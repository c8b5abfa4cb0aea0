package main

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sparrowbot/sparrowbot/internal/config"
	"github.com/sparrowbot/sparrowbot/internal/core"
	"github.com/sparrowbot/sparrowbot/internal/providers/llm"
	ragprov "github.com/sparrowbot/sparrowbot/internal/providers/rag"
	"github.com/sparrowbot/sparrowbot/internal/rag"
	"github.com/sparrowbot/sparrowbot/internal/service/bot"
	"github.com/sparrowbot/sparrowbot/internal/service/command"
	"github.com/sparrowbot/sparrowbot/internal/storage/sqlite"
	"github.com/sparrowbot/sparrowbot/pkg/log"
	"github.com/sparrowbot/sparrowbot/pkg/srv"
)

// Deps is everything a transport needs to talk as Jack. Services holds the
// background pieces (cleanups, watcher); commands append their own
// transports before starting them.
type Deps struct {
	App      *config.AppConfig
	Bot      *bot.Bot
	Router   core.CmdRouter
	Services []srv.Service
}

func NewDeps(ctx context.Context) *Deps {
	logger := log.FromCtx(ctx)
	services := make([]srv.Service, 0)

	// init env
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		logger.Fatal().Err(err).Msg("failed to init env")
	}

	// 1. Configuration
	appCfg := config.NewAppConfig(ctx)
	providerCfg := config.NewProviderConfig(ctx)
	embeddingCfg := config.NewEmbeddingConfig(ctx)

	// 2. Storage
	db, archive, err := initStorage(ctx, appCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize storage")
	}
	services = append(services, srv.NewCleanup(db.Close))

	// 3. Embedder and knowledge index
	embedder, err := ragprov.NewEmbedder(ctx, embeddingCfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize embedder")
	}

	index := rag.NewIndex(embedder)
	if n, err := index.LoadFile(ctx, appCfg.GetKnowledgePath()); err != nil {
		// The bot still answers with an empty index, so a missing or broken
		// knowledge file is not fatal.
		logger.Warn().Err(err).Str("path", appCfg.GetKnowledgePath()).Msg("knowledge base not loaded")
	} else {
		logger.Info().Int("facts", n).Str("path", appCfg.GetKnowledgePath()).Msg("knowledge base loaded")
	}

	if appCfg.WatchKnowledge {
		services = append(services, rag.NewWatcher(index, appCfg.GetKnowledgePath()))
	}

	// 4. AI provider, or offline mode without credentials
	var aiProvider core.AIProvider
	if providerCfg.HasCredentials() {
		aiProvider, err = llm.NewProvider(ctx, providerCfg)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
		}
	} else {
		logger.Warn().Str("provider", providerCfg.Provider).Msg("no credentials, running in offline mode")
	}

	// 5. Conversation service and command router
	sparrow := bot.New(appCfg, aiProvider, index, archive)
	router := command.New(command.NewCommands(sparrow))

	return &Deps{
		App:      appCfg,
		Bot:      sparrow,
		Router:   router,
		Services: services,
	}
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (*sql.DB, core.TranscriptRepository, error) {
	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return db, sqlite.NewTranscriptRepo(db), nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}
