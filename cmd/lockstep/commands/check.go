package commands

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/cobra"

	"github.com/dyluth/lockstep/internal/config"
	"github.com/dyluth/lockstep/internal/printer"
	"github.com/dyluth/lockstep/internal/report"
	"github.com/dyluth/lockstep/pkg/introspect"
	"github.com/dyluth/lockstep/pkg/lockstep"
)

var (
	checkConfigPath string
	checkOutput     string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every structure declared in the manifest",
	Long: `Validate every structure declared in lockstep.yml (or lockstep.toml)
against the introspection XML.

Each check names a local structure and the body signature it decodes. The
structure is matched to the signal whose name it contains, unless the check
sets an explicit interface or signal.

Example manifest:

  version: "1.0"
  xml: xml
  checks:
    - name: NodeRemovedHappening
      signature: "(so)"
    - name: ChangedEvent
      signature: "a{sv}"
      interface: org.example.B

Exits non-zero if any check fails.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkConfigPath, "config", "c", "", "Manifest path (default: lockstep.yml, lockstep.yaml or lockstep.toml)")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "table", "Output format (table, jsonl)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if checkOutput != "table" && checkOutput != "jsonl" {
		return printer.Error("Invalid output format",
			fmt.Sprintf("Unknown output format '%s'.", checkOutput),
			[]string{"Use --output table or --output jsonl"})
	}

	path := checkConfigPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return printer.Diagnose(err)
		}
		if path, err = config.Find(cwd); err != nil {
			return printer.Error("No manifest found", err.Error(),
				[]string{"Create lockstep.yml", "Pass --config <path>"})
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return printer.ErrorWithContext("Invalid manifest", err.Error(),
			[]printer.Field{{Key: "Manifest", Value: path}}, nil)
	}
	logger.Debug("loaded manifest", "path", path, "checks", len(cfg.Checks))

	explicit := xmlPath
	if explicit == "" {
		explicit = cfg.XML
	}
	docs, err := loadDocuments(explicit)
	if err != nil {
		return printer.Diagnose(err)
	}

	if checkOutput == "table" {
		printer.Step("Checking %d structures against %d documents\n\n", len(cfg.Checks), len(docs))
	}
	r := runChecks(docs, cfg.Checks)

	var failed int
	if checkOutput == "jsonl" {
		if err := report.FormatJSONL(cmd.OutOrStdout(), r); err != nil {
			return printer.Diagnose(err)
		}
		failed = len(r.Failed())
	} else {
		failed = report.FormatTable(cmd.OutOrStdout(), r)
		for _, o := range r.Failed() {
			fmt.Fprintf(printer.Stderr, "\n%s:\n", o.Name)
			printer.Diagnose(o.Err)
		}

		if failed > 0 {
			printer.Failure("%d of %d checks failed\n", failed, len(r.Outcomes))
		} else {
			printer.Success("All %d checks passed\n", len(r.Outcomes))
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d checks failed", failed, len(r.Outcomes))
	}
	return nil
}

// runChecks validates every check against docs concurrently. docs are
// read-only, and outcomes keep the manifest order.
func runChecks(docs []*introspect.Document, checks []config.Check) *report.Report {
	r := report.New()
	r.Outcomes = make([]report.Outcome, len(checks))

	var wg sync.WaitGroup
	for i, check := range checks {
		wg.Add(1)
		go func(i int, check config.Check) {
			defer wg.Done()
			actual := lockstep.Signature(check.Signature)
			resolved, err := lockstep.Validate(docs, check.Hint(), actual)
			r.Outcomes[i] = report.NewOutcome(check.Name, actual, resolved, err)
			logger.Debug("check finished", "run_id", r.RunID, "name", check.Name, "status", r.Outcomes[i].Status)
		}(i, check)
	}
	wg.Wait()

	return r
}
