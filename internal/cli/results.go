package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"kartrace/internal/config"
	"kartrace/internal/results"
)

var errNoDB = errors.New("no results database configured, set --db")

func NewResultsCmd() *cobra.Command {
	limit := 10
	cmd := &cobra.Command{
		Use:   "results",
		Short: "lists recently recorded races",
		RunE: func(cmd *cobra.Command, args []string) error {
			return listResults(cmd, config.Current.DB, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", limit, "number of races to show")
	return cmd
}

func listResults(cmd *cobra.Command, dbPath string, limit int) error {
	if dbPath == "" {
		return errNoDB
	}
	store, err := results.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open results: %w", err)
	}
	defer store.Close()

	races, err := store.RecentRaces(cmd.Context(), limit)
	if err != nil {
		return err
	}
	return printRaces(cmd.OutOrStdout(), races)
}

func printRaces(out io.Writer, races []results.Race) error {
	if len(races) == 0 {
		_, err := fmt.Fprintln(out, "no races recorded")
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, r := range races {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d laps\t%.2fs\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.ID.String()[:8], r.Track, r.Laps, r.Duration)
		for _, e := range r.Entries {
			pos := "-"
			if e.Place > 0 {
				pos = fmt.Sprintf("%d", e.Place)
			}
			fmt.Fprintf(tw, "\t%s\t%s\t%d\t%.2fs\n", pos, e.Name, e.Laps, e.FinishTime)
		}
	}
	return tw.Flush()
}
