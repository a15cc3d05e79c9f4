package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dyluth/lockstep/internal/printer"
	"github.com/dyluth/lockstep/internal/xmlsource"
	"github.com/dyluth/lockstep/pkg/introspect"
)

var (
	version string
	commit  string
	date    string
)

var (
	xmlPath   string
	logLevel  string
	logFormat string

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "lockstep",
	Short: "lockstep - keep D-Bus signal structs in step with introspection XML",
	Long: `lockstep checks that the local structures a client decodes D-Bus signals
into still match the signal bodies documented in the service's introspection XML.

XML is located with the following precedence:
  1. the LOCKSTEP_XML_PATH environment variable
  2. the --xml flag (or the manifest's xml field)
  3. ./xml or ./XML`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is specified, show help
		return cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = newLogger(logLevel, logFormat, cmd.ErrOrStderr())
	},
	// Enable strict flag parsing - unknown flags will cause an error
	FParseErrWhitelist: cobra.FParseErrWhitelist{},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	// Silence Cobra's default error and usage printing
	// We print formatted colored errors directly in the printer package
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&xmlPath, "xml", "", "Introspection XML file or directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Log format (text, json)")
}

// newLogger creates a slog.Logger writing to outW. It does not set the
// global logger.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelWarn
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if formatStr == "json" {
		handler = slog.NewJSONHandler(outW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(outW, handlerOpts)
	}

	return slog.New(handler)
}

// loadDocuments locates, reads and parses the introspection XML. explicit is
// the path from --xml or the manifest; the environment still overrides it.
func loadDocuments(explicit string) ([]*introspect.Document, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to determine working directory: %w", err)
	}

	path, err := xmlsource.Locate(explicit, os.LookupEnv, cwd)
	if err != nil {
		return nil, err
	}
	logger.Debug("located introspection XML", "path", path)

	sources, err := xmlsource.Load(path)
	if err != nil {
		return nil, err
	}

	docs, err := introspect.ParseAll(sources)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		logger.Debug("parsed document", "document", doc.ID, "interfaces", len(doc.Interfaces()), "signals", doc.SignalCount())
	}
	if len(docs) == 0 {
		printer.Warning("no *.xml files found in %s\n", path)
	}
	return docs, nil
}
