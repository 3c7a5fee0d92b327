package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/reteki/outreach/internal/config"
	"github.com/reteki/outreach/internal/history"
	"github.com/spf13/cobra"
)

var sentCmd = &cobra.Command{
	Use:   "sent",
	Short: "Manage the log of sent messages",
}

var (
	sentSearch string
	sentSort   string
	sentAsc    bool
)

var sentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List sent messages",
	Args:  cobra.NoArgs,
	RunE:  runSentList,
}

var sentExportOut string

var sentExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export sent messages as CSV",
	Args:  cobra.NoArgs,
	RunE:  runSentExport,
}

var sentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one sent message",
	Args:  cobra.ExactArgs(1),
	RunE:  runSentDelete,
}

var sentClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every sent message",
	Args:  cobra.NoArgs,
	RunE:  runSentClear,
}

func init() {
	sentListCmd.Flags().StringVarP(&sentSearch, "search", "s", "", "Filter by name or message text")
	sentListCmd.Flags().StringVar(&sentSort, "sort", history.SortByDate, "Sort by date or name")
	sentListCmd.Flags().BoolVar(&sentAsc, "asc", false, "Ascending order")
	sentExportCmd.Flags().StringVarP(&sentExportOut, "out", "o", "", "Write CSV to file instead of stdout")

	sentCmd.AddCommand(sentListCmd)
	sentCmd.AddCommand(sentExportCmd)
	sentCmd.AddCommand(sentDeleteCmd)
	sentCmd.AddCommand(sentClearCmd)
}

func openSentLog() (*history.Log, func() error, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := openDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return history.New(db), db.Close, nil
}

func runSentList(cmd *cobra.Command, args []string) error {
	if sentSort != history.SortByDate && sentSort != history.SortByName {
		return fmt.Errorf("--sort must be %s or %s", history.SortByDate, history.SortByName)
	}
	sent, closeDB, err := openSentLog()
	if err != nil {
		return err
	}
	defer closeDB()

	msgs, err := sent.List(history.Query{Search: sentSearch, SortBy: sentSort, Asc: sentAsc})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(msgs) == 0 {
		fmt.Fprintln(out, "No sent messages.")
		return nil
	}
	for _, m := range msgs {
		fmt.Fprintf(out, "%s  %s  %s\n", m.ID, m.SentAt.Local().Format("2006-01-02 15:04"), m.Name)
		msg := m.Message
		if r := []rune(msg); len(r) > 200 {
			msg = string(r[:200]) + "..."
		}
		fmt.Fprintf(out, "   %s\n\n", strings.ReplaceAll(msg, "\n", " "))
	}

	stats, err := sent.Stats()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "total: %d  this week: %d  this month: %d\n", stats.Total, stats.ThisWeek, stats.ThisMonth)
	return nil
}

func runSentExport(cmd *cobra.Command, args []string) error {
	sent, closeDB, err := openSentLog()
	if err != nil {
		return err
	}
	defer closeDB()

	msgs, err := sent.List(history.Query{})
	if err != nil {
		return err
	}

	if sentExportOut == "" {
		return history.ExportCSV(cmd.OutOrStdout(), msgs)
	}
	f, err := os.Create(sentExportOut)
	if err != nil {
		return fmt.Errorf("create %s: %w", sentExportOut, err)
	}
	if err := history.ExportCSV(f, msgs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported %d messages to %s\n", len(msgs), sentExportOut)
	return nil
}

func runSentDelete(cmd *cobra.Command, args []string) error {
	sent, closeDB, err := openSentLog()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := sent.Delete(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}

func runSentClear(cmd *cobra.Command, args []string) error {
	sent, closeDB, err := openSentLog()
	if err != nil {
		return err
	}
	defer closeDB()

	n, err := sent.Clear()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %d messages\n", n)
	return nil
}
