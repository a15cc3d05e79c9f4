package printer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/dyluth/lockstep/internal/xmlsource"
	"github.com/dyluth/lockstep/pkg/introspect"
	"github.com/dyluth/lockstep/pkg/lockstep"
)

func init() {
	// Force color output even when not connected to TTY
	// Users can disable with NO_COLOR environment variable
	if os.Getenv("NO_COLOR") == "" {
		color.NoColor = false
	}
}

var (
	// Color definitions
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Output destinations, replaceable in tests
var (
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// Field is one line of error context, printed in the given order
type Field struct {
	Key   string
	Value string
}

// Success prints a success message in green with a checkmark prefix
func Success(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		green.Fprintf(Stdout, "✓ %s", msg)
	} else {
		green.Fprint(Stdout, msg)
	}
}

// Failure prints a failure line in red with a cross prefix
func Failure(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✗") {
		red.Fprintf(Stdout, "✗ %s", msg)
	} else {
		red.Fprint(Stdout, msg)
	}
}

// Info prints an informational message in the default color
func Info(format string, a ...any) {
	fmt.Fprintf(Stdout, format, a...)
}

// Warning prints a warning message in yellow with a warning emoji prefix.
// Warnings go to Stderr so machine-readable Stdout stays clean.
func Warning(format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		yellow.Fprintf(Stderr, "⚠️  %s", msg)
	} else {
		yellow.Fprint(Stderr, msg)
	}
}

// Step prints a step message with emphasis (used in multi-step operations)
func Step(format string, a ...any) {
	cyan.Fprintf(Stdout, "→ %s", fmt.Sprintf(format, a...))
}

// Error creates a formatted error message with title, explanation, and suggestions
// Prints the formatted error to stderr with colors and returns a simple error for Cobra
func Error(title string, explanation string, suggestions []string) error {
	return ErrorWithContext(title, explanation, nil, suggestions)
}

// ErrorWithContext creates a formatted error with context details
// Prints the formatted error to stderr with colors and returns a simple error for Cobra
func ErrorWithContext(title string, explanation string, context []Field, suggestions []string) error {
	// Print title in red to stderr
	red.Fprintf(Stderr, "%s\n\n", title)

	// Print explanation
	if explanation != "" {
		fmt.Fprintf(Stderr, "%s\n", explanation)
	}

	// Print context details
	if len(context) > 0 {
		fmt.Fprintf(Stderr, "\n")
		for _, f := range context {
			fmt.Fprintf(Stderr, "  %s: %s\n", f.Key, f.Value)
		}
	}

	// Print suggestions
	if len(suggestions) > 0 {
		fmt.Fprintf(Stderr, "\n")
		if len(suggestions) == 1 {
			fmt.Fprintf(Stderr, "%s\n", suggestions[0])
		} else {
			fmt.Fprintf(Stderr, "Either:\n")
			for i, suggestion := range suggestions {
				fmt.Fprintf(Stderr, "  %d. %s\n", i+1, suggestion)
			}
		}
	}

	// Return simple error for Cobra (won't be printed due to SilenceErrors)
	return fmt.Errorf("%s", title)
}

// Diagnose prints err as a build diagnostic and returns the short error for Cobra.
// Errors that are not lockstep failures are printed with their message only.
func Diagnose(err error) error {
	var (
		structural *introspect.StructuralError
		ambiguous  *lockstep.AmbiguityError
		notFound   *lockstep.NotFoundError
		mismatch   *lockstep.MismatchError
		noLocation *xmlsource.NoLocationError
	)

	switch {
	case errors.As(err, &mismatch):
		return ErrorWithContext("Signature mismatch",
			"The local structure does not match the documented signal body.",
			append(resolvedFields(mismatch.Signal),
				Field{"Expected", quote(mismatch.Expected)},
				Field{"Actual", quote(mismatch.Actual)},
			),
			[]string{"Update the structure's fields to match the signal's args, in order."})

	case errors.As(err, &ambiguous):
		return ErrorWithContext("Ambiguous signal",
			fmt.Sprintf("More than one signal matches '%s'.", ambiguous.Key),
			[]Field{
				{"First", ambiguous.First.String()},
				{"Second", ambiguous.Second.String()},
			},
			[]string{
				fmt.Sprintf("Add an interface hint (e.g. interface: %s)", ambiguous.First.Interface),
				fmt.Sprintf("Add an explicit signal hint (e.g. signal: %s)", ambiguous.First.Signal),
			})

	case errors.As(err, &notFound):
		context := []Field{{"Search key", notFound.Key}, {"Kind", notFound.Kind.String()}}
		if notFound.Interface != "" {
			context = append(context, Field{"Interface", notFound.Interface})
		}
		return ErrorWithContext("Signal not found", capitalize(notFound.Error())+".", context,
			[]string{"Name the structure after the signal it mirrors, or add a signal hint."})

	case errors.As(err, &structural):
		return ErrorWithContext("Malformed introspection XML", structural.Err.Error(),
			[]Field{{"Document", structural.Document}}, nil)

	case errors.As(err, &noLocation):
		return Error("No introspection XML", capitalize(noLocation.Error())+".",
			[]string{
				fmt.Sprintf("Set %s", xmlsource.EnvXMLPath),
				"Pass --xml <path>",
				"Create an xml/ directory",
			})
	}

	return Error("Error", err.Error(), nil)
}

func resolvedFields(r lockstep.Resolved) []Field {
	if r.Signal == "" {
		return nil
	}
	return []Field{
		{"Document", r.Document},
		{"Interface", r.Interface},
		{"Signal", r.Signal},
	}
}

func quote(s lockstep.Signature) string {
	return fmt.Sprintf("%q", s)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Printf prints a plain formatted message (for output that doesn't need coloring)
func Printf(format string, a ...any) {
	fmt.Fprintf(Stdout, format, a...)
}
