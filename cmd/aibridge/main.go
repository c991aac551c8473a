package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/leofalp/aibridge/core/capability"
	"github.com/leofalp/aibridge/core/registry"
	"github.com/leofalp/aibridge/internal/config"
	"github.com/leofalp/aibridge/providers/ai"
	"github.com/leofalp/aibridge/providers/builtin"
	"github.com/leofalp/aibridge/providers/observability"
	"github.com/leofalp/aibridge/providers/observability/slogobs"
	"github.com/leofalp/aibridge/providers/observability/zapobs"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app is the state shared by every command once the root pre-run has loaded
// the environment and the config file.
type app struct {
	cfg      *config.Config
	catalog  *capability.Catalog
	factory  *registry.Factory
	observer observability.Provider
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "aibridge",
		Short: "Inspect and call AI providers through one normalized interface",
		Long: `aibridge exposes the provider catalog, the error normalizer and the JSON
extractor, and can call any built-in provider for chat, structured output,
images and speech.

Credentials are read from <PROVIDER>_API_KEY (or the api_key_env set in the
config file). A .env file in the working directory is loaded first.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			envFile, _ := cmd.Flags().GetString("env-file")
			cfgPath, _ := cmd.Flags().GetString("config")
			return a.load(envFile, cfgPath)
		},
	}
	root.PersistentFlags().StringP("config", "c", "aibridge.yaml", "Path to config file")
	root.PersistentFlags().String("env-file", ".env", "Path to a .env file to load")

	root.AddCommand(
		a.providersCmd(),
		a.modelsCmd(),
		a.classifyCmd(),
		a.extractCmd(),
		a.validateCmd(),
		a.chatCmd(),
		a.structuredCmd(),
		a.imageCmd(),
		a.speakCmd(),
	)
	return root
}

func (a *app) load(envFile, cfgPath string) error {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", envFile, err)
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.cfg = cfg
	a.catalog = builtin.Catalog()
	a.factory = builtin.NewFactory()
	a.observer = newObserver(cfg.Log)
	return nil
}

// newObserver builds the log backend named by cfg.Backend.
func newObserver(cfg config.LogConfig) observability.Provider {
	if cfg.Backend == "zap" {
		level := cfg.Level
		if level == "" {
			level = firstEnv("AIBRIDGE_LOG_LEVEL", "LOG_LEVEL")
		}
		format := slogobs.GetFormatFromEnv()
		if cfg.Format != "" {
			format = slogobs.ParseFormat(cfg.Format)
		}
		return zapobs.New(
			zapobs.WithLevel(zapobs.ParseLevel(strings.ToLower(level))),
			zapobs.WithJSON(format == slogobs.FormatJSON),
		)
	}

	var opts []slogobs.Option
	if cfg.Format != "" {
		opts = append(opts, slogobs.WithFormat(slogobs.ParseFormat(cfg.Format)))
	}
	if cfg.Level != "" {
		opts = append(opts, slogobs.WithLevel(slogobs.ParseLogLevel(cfg.Level)))
	}
	return slogobs.New(opts...)
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// ctx returns the command context carrying the observer.
func (a *app) ctx(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return observability.ContextWithObserver(ctx, a.observer)
}

// provider builds the adapter for id with the configured credential and
// resolved config. The caller must Close it.
func (a *app) provider(id string) (ai.Provider, error) {
	if enabled, _ := a.cfg.IsEnabled(context.Background(), id); !enabled {
		return nil, fmt.Errorf("provider %q is disabled in the config", id)
	}
	credential, err := a.cfg.ResolveAPIKey(id)
	if err != nil {
		return nil, err
	}
	return a.factory.Create(id, credential, a.cfg.ResolvedConfig(id))
}
