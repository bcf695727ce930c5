package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hpfold/hpfold/sim/sequence"
)

// classifyCmd prints the HP classes of an amino-acid sequence or FASTA file.
var classifyCmd = &cobra.Command{
	Use:   "classify <sequence|fasta-path>",
	Short: "Map an amino-acid sequence to H/P classes",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := classify(args[0], os.Stdout); err != nil {
			logrus.Fatalf("%v", err)
		}
	},
}

func classify(input string, w io.Writer) error {
	seq, err := sequence.Parse(input)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(w, seq.String())
	_, _ = fmt.Fprintf(w, "length=%d hydrophobic=%d\n", len(seq), seq.HydrophobicCount())
	return nil
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
