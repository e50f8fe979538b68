package cmd

import (
	"context"
	"fmt"
	"os"

	"path-store/core/config"
	"path-store/core/logger"
	"path-store/core/storage"
	"path-store/feature/pathstore"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "path-store",
	Short: "Path Store Service",
	Long: `Path Store is a path-oriented convenience layer over S3-compatible
object storage. It adds "/"-rooted paths, recursive listing, recursive
deletion, and bucket lifecycle helpers, served over HTTP or from the CLI.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		l, logErr := logger.NewConsole()
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

// buildStore wires config, logger, backend, and store for the CLI commands.
// The configured startup bucket is selected when one is set.
func buildStore(ctx context.Context) (*pathstore.Store, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	backend, err := storage.NewBackend(cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage backend: %w", err)
	}

	store := pathstore.New(backend, l)
	if cfg.Storage.Bucket != "" {
		if err := store.SetBucketName(ctx, cfg.Storage.Bucket); err != nil {
			return nil, nil, fmt.Errorf("failed to select bucket %q: %w", cfg.Storage.Bucket, err)
		}
	}
	return store, l, nil
}
