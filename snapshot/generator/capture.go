package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
)

// CaptureFailurePolicy decides what happens when the plan of a single query cannot be captured.
type CaptureFailurePolicy string

const (
	// AbortOnCaptureError stops the run at the first failing capture.
	AbortOnCaptureError CaptureFailurePolicy = "abort"

	// MarkCaptureError records an ERROR marker as the plan of the failing query and continues.
	MarkCaptureError CaptureFailurePolicy = "mark"
)

// CaptureErrorMarkerPrefix starts the plan recorded for a failed capture under MarkCaptureError.
const CaptureErrorMarkerPrefix = "ERROR: "

// ErrUnsupportedCaptureFailurePolicy is returned by WithCaptureFailurePolicy for unknown policies.
var ErrUnsupportedCaptureFailurePolicy = errors.New("unsupported capture failure policy")

// CaptureError is returned by PlanCapturer.Capture. It matches snapshot.ErrCaptureFailed and the engine error.
type CaptureError struct {
	Suite    string
	Folder   string
	FileName string
	Cause    error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("%s: suite %s, query %s/%s: %v", snapshot.ErrCaptureFailed, e.Suite, e.Folder, e.FileName, e.Cause)
}

func (e *CaptureError) Unwrap() []error {
	return []error{snapshot.ErrCaptureFailed, e.Cause}
}

// Marker returns the plan text recorded for this failure under MarkCaptureError:
// CaptureErrorMarkerPrefix followed by the first line of the engine's error message.
func (e *CaptureError) Marker() string {
	return CaptureErrorMarkerPrefix + firstLine(engineMessage(e.Cause))
}

// PlanCapturer produces the raw explain plan text of a query.
type PlanCapturer struct {
	runner        StatementRunner
	explainPrefix string
}

// NewPlanCapturer creates a PlanCapturer that prepends explainPrefix to every query.
func NewPlanCapturer(runner StatementRunner, explainPrefix string) *PlanCapturer {
	return &PlanCapturer{runner: runner, explainPrefix: explainPrefix}
}

// ExplainStatement builds the statement sent to the engine: the prefix followed by the trimmed
// query text without its trailing ';'.
func (c *PlanCapturer) ExplainStatement(sql string) string {
	sql = strings.TrimSpace(sql)
	sql = strings.TrimSpace(strings.TrimSuffix(sql, statementSeparator))

	return c.explainPrefix + sql
}

// Capture reads the query file, runs its explain statement and concatenates the text of every
// returned row, each followed by a line feed.
func (c *PlanCapturer) Capture(ctx context.Context, suite string, queryFile snapshot.QueryFile) (string, error) {
	sql, readErr := queryFile.SQL()
	if readErr != nil {
		return "", c.captureError(suite, queryFile, readErr)
	}

	rows, queryErr := c.runner.Query(ctx, c.ExplainStatement(sql))
	if queryErr != nil {
		return "", c.captureError(suite, queryFile, queryErr)
	}

	var plan strings.Builder
	for _, row := range rows {
		plan.WriteString(row.Text())
		plan.WriteString("\n")
	}

	return plan.String(), nil
}

func (c *PlanCapturer) captureError(suite string, queryFile snapshot.QueryFile, cause error) *CaptureError {
	return &CaptureError{
		Suite:    suite,
		Folder:   queryFile.Folder,
		FileName: queryFile.FileName,
		Cause:    cause,
	}
}

// engineMessage returns the message of the innermost cause that is not one of the snapshot sentinels.
func engineMessage(err error) string {
	joined, ok := err.(interface{ Unwrap() []error })
	if !ok {
		return err.Error()
	}

	for _, cause := range joined.Unwrap() {
		if isSentinel(cause) {
			continue
		}

		return engineMessage(cause)
	}

	return err.Error()
}

func isSentinel(err error) bool {
	switch err {
	case snapshot.ErrQueryingFailed,
		snapshot.ErrScanningRowFailed,
		snapshot.ErrReadingQueryFileFailed,
		snapshot.ErrExecutingFailed:
		return true
	default:
		return false
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}
