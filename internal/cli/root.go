// Package cli wires configuration, discovery, the engine, and the TUI into
// the antmon command.
package cli

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/dm/antmon/internal/client"
	"github.com/dm/antmon/internal/discovery"
	"github.com/dm/antmon/internal/engine"
	"github.com/dm/antmon/internal/logger"
	"github.com/dm/antmon/internal/tui"
)

var (
	configFlag            string
	pathFlag              string
	intervalFlag          string
	discoveryIntervalFlag string
)

// rootCmd runs the monitor.
var rootCmd = &cobra.Command{
	Use:   "antmon",
	Short: "Terminal monitor for a local antnode fleet",
	Long: `antmon discovers locally-running antnode processes by scanning their
data directories and log files, polls each node's metrics endpoint every
second, and renders a live fleet view with bandwidth sparklines, reward and
record totals, and record-store disk usage.

Examples:
  antmon
  antmon --path "/srv/antnode/node-*"
  antmon --interval 5s --config ~/.config/antmon.yaml`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMonitor()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (YAML)")
	rootCmd.Flags().StringVar(&pathFlag, "path", "", "glob matching node root directories")
	rootCmd.Flags().StringVar(&intervalFlag, "interval", "", "poll interval (e.g. 1s, 5s)")
	rootCmd.Flags().StringVar(&discoveryIntervalFlag, "discovery-interval", "", "node rescan interval (e.g. 60s)")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the root command. Exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func runMonitor() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.NewEnvLogger("[antmon]")

	eng := engine.New(engine.Config{
		RecordStoreSubdir:   cfg.RecordStoreSubdir,
		StoragePerNodeBytes: cfg.StoragePerNodeBytes,
		HistoryLength:       cfg.HistoryLength,
	}, log)

	// Initial discovery before the TUI takes over the terminal. A bad glob
	// is fatal here; an empty fleet is not — the periodic rescan keeps
	// looking.
	glob := cfg.ExpandedGlob()
	dirs, err := discovery.NodeDirs(glob)
	if err != nil {
		return err
	}
	endpoints, err := discovery.MetricsEndpoints(glob, cfg.LogRelPath, log)
	if err != nil {
		return err
	}
	eng.ReconcileDiscovery(dirs, endpoints)
	if len(endpoints) == 0 {
		fmt.Fprintln(os.Stderr, "warning: no metrics endpoints found yet; waiting for discovery")
	}

	app := tui.NewApp(eng, client.NewFetcher(cfg.FetchTimeout), cfg, log)
	_, err = tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
