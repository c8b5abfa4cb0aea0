package config

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sparrowbot/sparrowbot/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"SPARROW_RUNTIME_PATH" envDefault:".sparrowbot"`

	// Knowledge base
	KnowledgeFile  string `env:"SPARROW_KNOWLEDGE_FILE" envDefault:"data/sparrow_facts.txt"`
	WatchKnowledge bool   `env:"SPARROW_WATCH_KNOWLEDGE" envDefault:"false"`

	// Conversation window, counted in user/assistant exchange pairs
	MaxTurns int `env:"SPARROW_MAX_TURNS" envDefault:"10"`

	// Budget for a single backend round trip
	BackendTimeout time.Duration `env:"SPARROW_BACKEND_TIMEOUT" envDefault:"60s"`

	// Transport flags. The terminal REPL is its own command and needs none.
	EnableTelegram bool `env:"SPARROW_ENABLE_TELEGRAM" envDefault:"false"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}

	// Same resolution rule as GetRuntimePath, so a relative default never
	// drifts with the working directory.
	if !filepath.IsAbs(c.RuntimePath) {
		home, _ := os.UserHomeDir()
		c.RuntimePath = filepath.Join(home, c.RuntimePath)
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	return filepath.Join(c.RuntimePath, "sparrowbot.db")
}

// GetKnowledgePath resolves the knowledge file against the runtime
// directory unless an absolute path was configured.
func (c AppConfig) GetKnowledgePath() string {
	if filepath.IsAbs(c.KnowledgeFile) {
		return c.KnowledgeFile
	}
	return filepath.Join(c.RuntimePath, c.KnowledgeFile)
}
