package types

import (
	"fmt"

	"github.com/acarl005/stripansi"
)

// Outcome represents the final classification of a test item
type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
	OutcomeError   Outcome = "error"
)

// Phase identifies the sub-step of running a single item
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseCall     Phase = "call"
	PhaseTeardown Phase = "teardown"
)

// RawOutcome is the per-phase outcome as reported by the host framework
type RawOutcome string

const (
	RawPassed  RawOutcome = "passed"
	RawFailed  RawOutcome = "failed"
	RawSkipped RawOutcome = "skipped"
)

// ClassifyOutcome maps a raw per-phase outcome to a final Outcome.
// A failure outside the call phase is an error (broken setup or teardown),
// not a test failure.
func ClassifyOutcome(phase Phase, raw RawOutcome) Outcome {
	if raw == RawFailed && phase != PhaseCall {
		return OutcomeError
	}

	switch raw {
	case RawPassed:
		return OutcomePassed
	case RawFailed:
		return OutcomeFailed
	case RawSkipped:
		return OutcomeSkipped
	}

	return OutcomeError
}

// ReportDetail is the structured long-form representation attached to a
// phase report. The host picks the variant at report time so downstream
// consumers never inspect the shape ad hoc.
type ReportDetail interface {
	reportDetail()
}

// SkipDetail carries the location and reason of a skipped item.
type SkipDetail struct {
	File   string
	Line   int
	Reason string
}

func (SkipDetail) reportDetail() {}

// CrashDetail carries the short crash message of a failed phase.
type CrashDetail struct {
	Message string
}

func (CrashDetail) reportDetail() {}

// PhaseReport is the raw result of one phase of one item as delivered by
// the host framework's result hook.
type PhaseReport struct {
	Phase    Phase
	Outcome  RawOutcome
	Duration float64 // seconds
	Stdout   string
	Stderr   string
	Logs     string
	LongText string       // full textual representation of the failure/skip, may be empty
	Detail   ReportDetail // optional structured detail, nil for plain text
}

// Result is the classified result of a single item.
type Result struct {
	Outcome  Outcome
	Stdout   string
	Stderr   string
	Logs     string
	Duration float64
	Summary  string // short reason, e.g. crash message or skip reason
	Message  string // long message, e.g. full traceback text
}

// NewResult builds a Result from a raw phase report.
func NewResult(report PhaseReport) *Result {
	return &Result{
		Outcome:  ClassifyOutcome(report.Phase, report.Outcome),
		Stdout:   stripansi.Strip(report.Stdout),
		Stderr:   stripansi.Strip(report.Stderr),
		Logs:     stripansi.Strip(report.Logs),
		Duration: report.Duration,
		Summary:  reportSummary(report),
		Message:  reportMessage(report),
	}
}

// reportSummary derives the short summary from a phase report.
func reportSummary(report PhaseReport) string {
	if report.Detail == nil && report.LongText == "" {
		return ""
	}

	switch report.Outcome {
	case RawFailed:
		if crash, ok := report.Detail.(CrashDetail); ok {
			if report.Phase != PhaseCall {
				return fmt.Sprintf("failed on %s with %q", report.Phase, crash.Message)
			}
			return crash.Message
		}
	case RawSkipped:
		if skip, ok := report.Detail.(SkipDetail); ok {
			return skip.Reason
		}
	default:
		return ""
	}

	return report.LongText
}

// reportMessage derives the long message from a phase report.
func reportMessage(report PhaseReport) string {
	if report.Outcome == RawSkipped {
		if skip, ok := report.Detail.(SkipDetail); ok {
			return fmt.Sprintf("%s:%d: %s", skip.File, skip.Line, skip.Reason)
		}
	}

	return report.LongText
}
