package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/pasumbalss/wansilog/cmd/wansilog/app"
	"github.com/pasumbalss/wansilog/configs"
)

// Set at build time via ldflags.
var version = "dev"

var cfgDir string

var rootCmd = &cobra.Command{
	Use:          "wansilog",
	Short:        "Wansilog cash register - single-terminal POS for the food stall",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		env := os.Getenv("APP_ENV") // dev | staging | prod
		if env == "" {
			env = "dev"
		}

		cfg, err := configs.Load(cfgDir, env)
		if err != nil {
			return err
		}

		a, cleanup, err := app.InitWithConfig(cfg)
		if err != nil {
			return err
		}
		defer cleanup()

		return a.Session.Run(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display the application version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wansilog %s (%s)\n", version, runtime.Version())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config-dir", "configs", "directory holding base.yaml and env overlays")
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
