package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lyndonlyu/tact/internal/config"
	"github.com/lyndonlyu/tact/internal/history"
)

var (
	historyFormat string
	historyLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Recorded token counts",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent counts",
	RunE:  runHistoryList,
}

var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show history database status",
	RunE:  runHistoryStatus,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every recorded count",
	RunE:  runHistoryClear,
}

func init() {
	historyListCmd.Flags().StringVar(&historyFormat, "format", "", "Output format (json)")
	historyListCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of counts to show (0 = all)")
	historyCmd.AddCommand(historyListCmd, historyStatusCmd, historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}

func openHistory() (*history.DB, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}
	if !cfg.History.Enabled {
		return nil, fmt.Errorf("history is disabled (history.enabled: false in %s)", path)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, err
	}
	return history.Open(cfg.History.Path)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.List(historyLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if historyFormat == "json" {
		s, err := history.FormatListJSON(records)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
		return nil
	}
	fmt.Fprint(out, history.FormatList(records))
	return nil
}

func runHistoryStatus(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	s, err := db.Stats()
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), history.FormatStatus(db.Path(), s))
	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	db, err := openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	n, err := db.Clear()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d recorded counts.\n", n)
	return nil
}
