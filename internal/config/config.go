package config

import (
	"context"

	"github.com/helpdesk-tools/deskctl/internal/client"
	"github.com/helpdesk-tools/deskctl/internal/session"
)

type contextKey string

const configKey contextKey = "deskctl-config"

// GlobalConfig holds shared configuration for all deskctl commands.
// The root command injects it into the cobra command context in its
// PersistentPreRun hook; subcommands consume it from there.
type GlobalConfig struct {
	ServerURL      string
	NonInteractive bool
	SuggestAPIKey  string
	Sessions       session.Store
	Provider       *client.Provider
}

// Inject adds config to the cobra command context.
func Inject(ctx context.Context, cfg *GlobalConfig) context.Context {
	return context.WithValue(ctx, configKey, cfg)
}

// FromContext retrieves config from the command context.
// Returns (nil, false) if config is not present.
func FromContext(ctx context.Context) (*GlobalConfig, bool) {
	cfg, ok := ctx.Value(configKey).(*GlobalConfig)
	return cfg, ok
}

// MustFromContext retrieves config from context or panics. Only for use
// in RunE functions, where the root command has already injected it.
func MustFromContext(ctx context.Context) *GlobalConfig {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("deskctl: config not found in context - this is a bug in deskctl")
	}
	return cfg
}
