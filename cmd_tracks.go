package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"prepdash/internal/config"
	tracksapp "prepdash/internal/features/tracks/application"
	"prepdash/internal/features/tracks/domain"
)

var progressFile string

var tracksCmd = &cobra.Command{
	Use:   "tracks",
	Short: "Print the matched tracks and completion for a progress file",
	Long: `Reads a learner progress document (active_domains, preferences,
completed_topic_ids) and prints the dashboard the server would build for it.`,
	Example: "  prepdash tracks --progress progress.json",
	RunE:    runTracks,
}

func init() {
	tracksCmd.Flags().StringVarP(&progressFile, "progress", "p", "", "learner progress JSON file")
	_ = tracksCmd.MarkFlagRequired("progress")
}

func runTracks(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(progressFile)
	if err != nil {
		return fmt.Errorf("failed to read progress file: %w", err)
	}
	var progress domain.UserProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return fmt.Errorf("failed to parse progress file: %w", err)
	}

	appConfig, err := config.NewAppConfigService(env.AppConfigPath, logger).LoadAppConfig()
	if err != nil {
		return err
	}
	a := &app{}
	if err := a.initCatalogue(appConfig, logger); err != nil {
		return err
	}
	dashboard := tracksapp.NewDashboardService(a.catalogue, logger).BuildDashboard(progress)

	out := cmd.OutOrStdout()
	if len(dashboard.Tracks) == 0 {
		fmt.Fprintln(out, "No tracks match the active domains.")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DOMAIN\tTRACK\tLEVEL\tTOPICS\tDONE")
	for _, t := range dashboard.Tracks {
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%d/%d\t%d%%\n",
			t.DomainInfo.Icon, t.DomainInfo.Title, t.LanguageOrTech, t.Level, t.Completed, t.TotalTopics, t.Completion)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\nOverall: %d%%\n", dashboard.GlobalCompletion)
	return nil
}
