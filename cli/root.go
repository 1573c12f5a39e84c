// Package cli is the lumen command tree.
package cli

import (
	"lumen/internal/config"

	"github.com/spf13/cobra"
)

var (
	configFile string
	settings   = config.New()
)

var rootCmd = &cobra.Command{
	Use:           "lumen",
	Short:         "Pointer-reactive particle cursor and interactive skill scenes.",
	Long:          "Pointer-reactive particle cursor and interactive 3D skill scenes, rendered into a window, a terminal or headless.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree with os.Args.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file.")
}
