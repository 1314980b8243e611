package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pmelby/roomscan/internal/archive"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived sweep snapshots",
	Long: `List snapshots recorded with 'roomscan unread --archive',
newest first.

Examples:
  roomscan history
  roomscan history --limit 5 --human`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum runs to list (0 for all)")
}

// HistoryResponse is the JSON output for roomscan history.
type HistoryResponse struct {
	Runs  []archive.RunSummary `json:"runs"`
	Error *string              `json:"error"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	path, err := archive.DefaultPath()
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	a, err := archive.Open(path)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer a.Close()

	runs, err := a.ListRuns(historyLimit)
	if err != nil {
		exitWithError(ExitError, "listing runs: %v", err)
	}

	if humanOutput {
		printHistoryHuman(runs)
		return nil
	}
	if runs == nil {
		runs = []archive.RunSummary{}
	}
	return outputJSONCompact(HistoryResponse{Runs: runs})
}

func printHistoryHuman(runs []archive.RunSummary) {
	if len(runs) == 0 {
		fmt.Println("No archived runs.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TAKEN AT\tWINDOW\tTOTAL\tUNREAD\tREAD\tID")
	fmt.Fprintln(w, "--------\t------\t-----\t------\t----\t--")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%dh\t%d\t%d\t%d\t%s\n",
			r.TakenAt, r.WindowHours, r.Total, r.Unread, r.Read, r.ID)
	}
	w.Flush()

	fmt.Printf("\nTotal: %d runs\n", len(runs))
}
