package main

import (
	"fmt"
	"os"

	"jobswipe/internal/app"
	"jobswipe/internal/config"
	"jobswipe/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "jobswipectl"

var (
	cfgFile string
	debug   bool
	jsonLog bool

	rootCmd = &cobra.Command{
		Use:          appName,
		Short:        "jobswipectl manages the jobswipe database",
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a YAML config file (same keys as the environment)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&jsonLog, "json", "j", false, "json format for logging")
}

// env loads the store settings and opens the database.
type env struct {
	cfg       config.Config
	logger    *zap.Logger
	container *app.Container
}

func setup() (*env, error) {
	if cfgFile != "" {
		if err := os.Setenv("CONFIG_FILE", cfgFile); err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadStore()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	lg, err := logger.New(jsonLog || cfg.Log.JSON, debug || cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	c, err := app.NewStoreContainer(cfg, lg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &env{cfg: cfg, logger: lg, container: c}, nil
}

func (e *env) close() {
	if err := e.container.Close(); err != nil {
		e.logger.Warn("close", zap.Error(err))
	}
	_ = e.logger.Sync()
}
