// wingedge builds winged-edge meshes from scene files and reports their
// topology.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Faultbox/wingedge/internal/config"
	"github.com/Faultbox/wingedge/internal/logger"
)

var (
	flags *config.Flags
	cfg   *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "wingedge",
	Short: "Build winged-edge meshes from scene files",
	Long: `wingedge walks a YAML scene graph, converts every indexed face set into a
world-space winged-edge mesh and reports vertices, faces, edges, boundary
edges, crease vertices, bounds and anomalies per mesh.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { logger.Sync() },
}

func init() {
	flags = config.RegisterFlags(rootCmd.PersistentFlags())
}

// setup loads configuration and initializes logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(flags)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.LoggerOptions()); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logger.Sugar.Debugf("config: %+v", cfg)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
