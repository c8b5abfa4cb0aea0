package installer

import "github.com/sparrowbot/sparrowbot/internal/config"

// InstallState accumulates answers directly into the config structs, so the
// saved .env keys can never drift from what the loaders parse.
type InstallState struct {
	App      *config.AppConfig
	Provider *config.ProviderConfig
	Telegram *config.TelegramConfig
}

func NewInstallState() *InstallState {
	return &InstallState{
		App:      &config.AppConfig{},
		Provider: &config.ProviderConfig{},
		Telegram: &config.TelegramConfig{},
	}
}
