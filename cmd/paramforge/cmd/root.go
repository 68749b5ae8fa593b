/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ashenlab/paramforge/pkg/archive"
	"github.com/ashenlab/paramforge/pkg/bank"
	"github.com/ashenlab/paramforge/pkg/config"
	"github.com/ashenlab/paramforge/pkg/enums"
	"github.com/ashenlab/paramforge/pkg/paramdef"
)

// app bundles everything a subcommand needs, stashed in the command context
// by the root PersistentPreRunE.
type app struct {
	cfg  *config.Config
	log  *logrus.Logger
	arch archive.Archive
	bank *bank.Bank
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "paramforge",
	Short: "Paramforge - game param table toolkit",
	Long: `Paramforge reads, edits and repacks binary param tables using
externally supplied paramdef schemas. Tables are loaded from an archive
directory of .param blobs (or a pebble store) and decoded field by field.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init writes the config file and must not require one
		if cmd.Name() == "init" {
			return nil
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		log := logrus.New()
		level, err := logrus.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
		}
		log.SetLevel(level)

		var arch archive.Archive
		if pebblePath, _ := cmd.Flags().GetString("pebble"); pebblePath != "" {
			arch, err = archive.OpenPebble(pebblePath)
		} else {
			arch, err = archive.OpenDir(cfg.ArchiveDir)
		}
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}

		defs := paramdef.NewCache(paramdef.NewDirProvider(cfg.DefsDir))
		b := bank.New(arch, defs, enums.NewRegistry(), log)
		if err := b.Load(); err != nil {
			return fmt.Errorf("failed to load param bank: %w", err)
		}

		// Store in command context
		a := &app{cfg: cfg, log: log, arch: arch, bank: b}
		cmd.SetContext(context.WithValue(cmd.Context(), "app", a))
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: platform config dir)")
	rootCmd.PersistentFlags().StringP("archive", "a", "", "Directory of .param blobs (overrides config)")
	rootCmd.PersistentFlags().StringP("defs", "d", "", "Directory of paramdef schemas (overrides config)")
	rootCmd.PersistentFlags().String("pebble", "", "Use a pebble store at this path instead of a directory archive")
	rootCmd.PersistentFlags().String("log-level", "", "Log level (overrides config)")
}

// loadConfig resolves the effective config: file if present, defaults
// otherwise, with command line flags winning over both.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	var cfg *config.Config
	if config.ConfigExists(configPath) {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	if dir, _ := cmd.Flags().GetString("archive"); dir != "" {
		cfg.ArchiveDir = dir
	}
	if dir, _ := cmd.Flags().GetString("defs"); dir != "" {
		cfg.DefsDir = dir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Logging.Level = level
	}
	return cfg, nil
}

// appFromContext pulls the app out of the command context.
func appFromContext(cmd *cobra.Command) (*app, bool) {
	a, ok := cmd.Context().Value("app").(*app)
	return a, ok
}
