package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"prepdash/internal/config"
)

var displayName string

var motivateCmd = &cobra.Command{
	Use:   "motivate",
	Short: "Fetch one motivation message and print it",
	RunE: func(cmd *cobra.Command, args []string) error {
		appConfigService := config.NewAppConfigService(env.AppConfigPath, logger)
		appConfig, err := appConfigService.LoadAppConfig()
		if err != nil {
			return err
		}
		a := &app{appConfigService: appConfigService}
		if err := a.initMotivation(appConfig, env, logger); err != nil {
			return err
		}
		o, err := a.motivation.Mount(cmd.Context(), "cli", displayName)
		if err != nil {
			return err
		}
		o.Wait()
		fmt.Fprintln(cmd.OutOrStdout(), o.State().Text)
		return nil
	},
}

func init() {
	motivateCmd.Flags().StringVarP(&displayName, "name", "n", "Learner", "display name the message is addressed to")
}
