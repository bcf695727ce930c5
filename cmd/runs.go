package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hpfold/hpfold/sim/store"
)

var runsStorePath string // SQLite database to list

// runsCmd lists the run records persisted with --store sqlite.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List persisted folding runs",
	Run: func(cmd *cobra.Command, args []string) {
		if err := listRuns(cmd.Context(), runsStorePath, os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func listRuns(ctx context.Context, path string, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("run store %s: %w", path, err)
	}
	st, err := store.NewStore("sqlite", path)
	if err != nil {
		return err
	}
	if err := st.Init(ctx); err != nil {
		return fmt.Errorf("opening run store: %w", err)
	}
	defer func() {
		if err := store.CloseIfSupported(st); err != nil {
			logrus.Warnf("closing store: %v", err)
		}
	}()

	runs, err := st.ListRuns(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tCREATED\tALGO\tMOVES\tSTEPS\tSEED\tBEST\tSEQUENCE")
	for _, r := range runs {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%d\t%s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.Algorithm, r.MoveSet, r.Steps, r.Seed, r.BestEnergy, r.Sequence)
	}
	return tw.Flush()
}

func init() {
	runsCmd.Flags().StringVar(&runsStorePath, "store-path", "hpfold.db", "SQLite database path")
	rootCmd.AddCommand(runsCmd)
}
