package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"prepdash/internal/config"
	"prepdash/internal/logging"
)

var (
	// Global flags
	verbose       bool
	appConfigPath string
	cataloguePath string

	logger *zap.Logger
	env    config.Env
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "prepdash",
	Short: "Placement-preparation dashboard backend",
	Long: `prepdash serves the learner dashboard: personalized curriculum tracks with
completion progress, a motivation feed and a placement-prep chat assistant.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = logging.New(verbose)
		if err != nil {
			return err
		}
		env = config.LoadEnv(logger)
		if appConfigPath != "" {
			env.AppConfigPath = appConfigPath
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&appConfigPath, "config", "", "app config JSON file (default $PREPDASH_APP_CONFIG or config/app_config.json)")
	rootCmd.PersistentFlags().StringVar(&cataloguePath, "catalogue", "", "curriculum catalogue YAML file (overrides the app config)")

	rootCmd.AddCommand(serveCmd, tracksCmd, motivateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
