package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/dyluth/lockstep/internal/printer"
	"github.com/dyluth/lockstep/pkg/lockstep"
)

var (
	resolveInterface string
	resolveSignal    string
	resolveCompare   string
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <structure>",
	Short: "Show which signal a structure name resolves to",
	Long: `Resolve a structure name to its signal and print the documented body signature.

With --compare, the given signature is also checked against the documented
one, exactly as 'lockstep check' would.`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveInterface, "interface", "", "Restrict resolution to this interface")
	resolveCmd.Flags().StringVar(&resolveSignal, "signal", "", "Resolve this exact signal name")
	resolveCmd.Flags().StringVar(&resolveCompare, "compare", "", "Signature of the local structure to compare against")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	var opts []lockstep.HintOption
	if resolveInterface != "" {
		opts = append(opts, lockstep.WithInterface(resolveInterface))
	}
	if resolveSignal != "" {
		opts = append(opts, lockstep.WithSignal(resolveSignal))
	}
	hint := lockstep.NewHint(args[0], opts...)

	docs, err := loadDocuments(xmlPath)
	if err != nil {
		return printer.Diagnose(err)
	}

	resolved, err := lockstep.Resolve(docs, hint)
	if err != nil {
		return printer.Diagnose(err)
	}

	printer.Printf("Interface: %s\n", resolved.Interface)
	printer.Printf("Signal:    %s\n", resolved.Signal)
	printer.Printf("Document:  %s\n", resolved.Document)
	printer.Printf("Signature: %q\n", resolved.Signature())
	for i, arg := range resolved.Args() {
		name := arg.Name
		if name == "" {
			name = "-"
		}
		printer.Info("  arg %d: %-16s %s\n", i, name, arg.Type)
	}

	if !cmd.Flags().Changed("compare") {
		return nil
	}
	if err := lockstep.Compare(resolved.Signature(), lockstep.Signature(resolveCompare)); err != nil {
		var mismatch *lockstep.MismatchError
		if errors.As(err, &mismatch) {
			mismatch.Signal = resolved
		}
		return printer.Diagnose(err)
	}
	printer.Success("%q matches %s\n", resolveCompare, resolved)
	return nil
}
