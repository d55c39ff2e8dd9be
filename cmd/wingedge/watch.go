package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Faultbox/wingedge/internal/logger"
	"github.com/Faultbox/wingedge/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch [scene.yaml]",
	Short: "Rebuild and report whenever the scene file changes",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	path := args[0]
	out := cmd.OutOrStdout()

	// Rebuilds run on timer goroutines; keep reports from interleaving.
	var mu sync.Mutex
	rebuild := func(string) {
		mu.Lock()
		defer mu.Unlock()
		if err := runBuild(out, path, cfg); err != nil {
			logger.Error("rebuild failed", zap.String("scene", path), zap.Error(err))
		}
	}

	fw, err := watcher.New(cfg.Watch.Debounce)
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Watch([]string{path}, rebuild); err != nil {
		return err
	}

	rebuild(path)
	logger.Info("watching for changes", zap.String("scene", path), zap.Duration("debounce", cfg.Watch.Debounce))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fw.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
