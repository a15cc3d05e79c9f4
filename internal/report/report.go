// Package report collects the verdicts of a check run and renders them.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/dyluth/lockstep/pkg/lockstep"
)

// Status is the verdict of a single check.
type Status string

const (
	StatusPass Status = "pass"
	StatusFail Status = "fail"
)

// Outcome is the result of validating one declared structure.
type Outcome struct {
	Name      string `json:"name"`
	Status    Status `json:"status"`
	Interface string `json:"interface,omitempty"`
	Signal    string `json:"signal,omitempty"`
	Document  string `json:"document,omitempty"`
	Expected  string `json:"expected"`
	Actual    string `json:"actual"`
	Error     string `json:"error,omitempty"`

	Err error `json:"-"`
}

// Report is one run over a manifest.
type Report struct {
	RunID       string    `json:"run_id"`
	StartedAtMs int64     `json:"started_at_ms"`
	Outcomes    []Outcome `json:"outcomes"`
}

// New starts an empty report with a fresh run ID.
func New() *Report {
	return &Report{
		RunID:       uuid.New().String(),
		StartedAtMs: time.Now().UnixMilli(),
	}
}

// NewOutcome builds the outcome of a lockstep.Validate call.
func NewOutcome(name string, actual lockstep.Signature, resolved lockstep.Resolved, err error) Outcome {
	o := Outcome{
		Name:      name,
		Status:    StatusPass,
		Interface: resolved.Interface,
		Signal:    resolved.Signal,
		Document:  resolved.Document,
		Actual:    string(actual),
	}
	if resolved.Signal != "" {
		o.Expected = string(resolved.Signature())
	}
	if err != nil {
		o.Status = StatusFail
		o.Error = err.Error()
		o.Err = err
	}
	return o
}

// Failed returns the outcomes that did not pass, in order.
func (r *Report) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status != StatusPass {
			failed = append(failed, o)
		}
	}
	return failed
}

// FormatTable writes outcomes as a formatted table to the provided writer.
// Returns the number of failed outcomes.
func FormatTable(w io.Writer, r *Report) int {
	if len(r.Outcomes) == 0 {
		fmt.Fprintf(w, "No checks run (run %s)\n", shortID(r.RunID))
		return 0
	}

	fmt.Fprintf(w, "Checks for run %s:\n\n", shortID(r.RunID))

	fmt.Fprintf(w, "%-4s %-28s %-32s %-12s %-12s\n",
		"", "NAME", "SIGNAL", "EXPECTED", "ACTUAL")
	fmt.Fprintf(w, "%-4s %-28s %-32s %-12s %-12s\n",
		"----", "----------------------------", "--------------------------------", "------------", "------------")

	for _, o := range r.Outcomes {
		fmt.Fprintf(w, "%-4s %-28s %-32s %-12s %-12s\n",
			formatStatus(o.Status),
			truncate(o.Name, 28),
			truncate(formatSignal(o), 32),
			truncate(formatSignature(o.Expected), 12),
			truncate(formatSignature(o.Actual), 12),
		)
	}

	failed := len(r.Failed())
	fmt.Fprintf(w, "\n%d passed, %d failed\n", len(r.Outcomes)-failed, failed)
	return failed
}

// FormatJSONL writes one JSON object per outcome, each tagged with the run ID.
func FormatJSONL(w io.Writer, r *Report) error {
	for _, o := range r.Outcomes {
		line := struct {
			RunID string `json:"run_id"`
			Outcome
		}{RunID: r.RunID, Outcome: o}

		data, err := json.Marshal(line)
		if err != nil {
			return fmt.Errorf("failed to marshal outcome %s: %w", o.Name, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write outcome: %w", err)
		}
	}
	return nil
}

func formatStatus(s Status) string {
	if s == StatusPass {
		return "ok"
	}
	return "FAIL"
}

func formatSignal(o Outcome) string {
	if o.Signal == "" {
		return "-"
	}
	return o.Interface + "." + o.Signal
}

func formatSignature(s string) string {
	if s == "" {
		return `""`
	}
	return s
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}
