package commands

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/config"
	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/jira"
	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/logging"
	"github.com/jabuddie/Custom-Jira-Kanban-Metrics/internal/stats"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	project string
	charts  bool

	cfg        *config.AppConfig
	jiraClient jira.Client
)

var rootCmd = &cobra.Command{
	Use:   "kanban-metrics",
	Short: "Kanban delivery metrics from Jira",
	Long: `Computes engineering delivery metrics (throughput, lead time, cycle time,
work in progress) from Jira issue and changelog data and renders them as
terminal tables, mermaid charts, and HTML reports.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("loading configuration: %w", err)
		}

		if project == "" {
			project = cfg.Project
		}
		if project == "" {
			return fmt.Errorf("no project key: pass --project or set JIRA_PROJECT")
		}
		if !cmd.Flags().Changed("charts") {
			charts = cfg.EnableCharts
		}

		jiraClient = jira.NewClient(cfg.Jira)

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("project", project).
			Msg("kanban-metrics starting")
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

// extractOptions builds the interval-extraction options from configuration.
// The clock is read here at the edge; the stats layer only sees explicit
// instants.
func extractOptions() stats.Options {
	return stats.Options{
		TrackedStatus:    cfg.TrackedStatus,
		FallbackLookback: time.Duration(cfg.FallbackDays) * 24 * time.Hour,
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&project, "project", "p", "", "Jira project key (overrides JIRA_PROJECT)")
	rootCmd.PersistentFlags().BoolVar(&charts, "charts", false, "print mermaid charts alongside tables")
}
