package main

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/benaskins/seedkeeper/internal/config"
	"github.com/benaskins/seedkeeper/internal/i18n"
)

var (
	configPath string
	logLevel   string
	langFlag   string

	cfg      *config.Config
	levelVar slog.LevelVar
)

var rootCmd = &cobra.Command{
	Use:           "seedkeeper",
	Short:         "Wallet seed viewer backed by the system keychain",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if cmd.Flags().Changed("lang") {
			loaded.Language = langFlag
		}

		level, err := config.ParseLevel(loaded.LogLevel)
		if err != nil {
			return err
		}
		levelVar.Set(level)
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &levelVar})))

		i18n.Init(loaded.Language)
		if !slices.Contains(i18n.Available(), i18n.Lang()) {
			slog.Warn("unsupported language, using English", "language", i18n.Lang(), "available", i18n.Available())
		}
		cfg = loaded
		slog.Debug("configuration loaded", "path", configPath, "language", i18n.Lang())
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "en", "Interface language")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
