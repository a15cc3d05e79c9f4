package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dyluth/lockstep/internal/printer"
	"github.com/dyluth/lockstep/pkg/introspect"
	"github.com/dyluth/lockstep/pkg/lockstep"
)

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "List every signal and its body signature",
	Long: `List every signal declared in the introspection XML, in the order
lockstep searches them, together with its body signature.`,
	Args: cobra.NoArgs,
	RunE: runSignals,
}

func init() {
	rootCmd.AddCommand(signalsCmd)
}

func runSignals(cmd *cobra.Command, args []string) error {
	docs, err := loadDocuments(xmlPath)
	if err != nil {
		return printer.Diagnose(err)
	}

	formatSignals(cmd.OutOrStdout(), docs)
	return nil
}

// formatSignals writes one row per signal. Returns the number of signals.
func formatSignals(w io.Writer, docs []*introspect.Document) int {
	fmt.Fprintf(w, "%-32s %-24s %-16s %s\n", "INTERFACE", "SIGNAL", "SIGNATURE", "DOCUMENT")

	count := 0
	for _, doc := range docs {
		for _, iface := range doc.Interfaces() {
			for _, sig := range iface.Signals {
				fmt.Fprintf(w, "%-32s %-24s %-16q %s\n", iface.Name, sig.Name, lockstep.Extract(sig), doc.ID)
				count++
			}
		}
	}

	noun := "signal"
	if count != 1 {
		noun = "signals"
	}
	fmt.Fprintf(w, "\n%d %s found\n", count, noun)
	return count
}
