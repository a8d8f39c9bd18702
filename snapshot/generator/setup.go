package generator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
)

const statementSeparator = ";"

// SetupExecutor runs the setup statements of a suite before any plan is captured.
type SetupExecutor struct {
	runner StatementRunner
	logger snapshot.Logger
}

// NewSetupExecutor creates a SetupExecutor. The logger may be nil.
func NewSetupExecutor(runner StatementRunner, logger snapshot.Logger) *SetupExecutor {
	return &SetupExecutor{runner: runner, logger: logger}
}

// RunFile reads a setup script and runs it, see Run. Errors additionally name the script's path.
func (e *SetupExecutor) RunFile(ctx context.Context, suite, path string) (int, error) {
	script, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Join(snapshot.ErrSetupFailed, snapshot.ErrReadingQueryFileFailed, fmt.Errorf("suite %s: %w", suite, err))
	}

	return e.run(ctx, suite, path, string(script))
}

// Run executes the statements of a setup script strictly in order and returns how many ran.
// The first failing statement stops the script; the error wraps snapshot.ErrSetupFailed and names
// the suite, the statement's 1-based position and its text.
func (e *SetupExecutor) Run(ctx context.Context, suite, script string) (int, error) {
	return e.run(ctx, suite, "", script)
}

// run executes the script; a non-empty path is named in errors and logs.
func (e *SetupExecutor) run(ctx context.Context, suite, path, script string) (int, error) {
	statements := SplitStatements(script)

	location := "suite " + suite
	if path != "" {
		location += ", setup script " + path
	}

	for i, statement := range statements {
		if err := e.runner.Execute(ctx, statement); err != nil {
			e.logError(logMsgSetupStatementFailed, err,
				logAttrSuite, suite, logAttrPath, path, logAttrStatementIndex, i+1, logAttrStatement, statement)

			return i, errors.Join(
				snapshot.ErrSetupFailed,
				fmt.Errorf("%s, statement %d (%s): %w", location, i+1, statement, err),
			)
		}
	}

	e.logDebug(logMsgSetupCompleted, logAttrSuite, suite, logAttrStatementCount, len(statements))

	return len(statements), nil
}

// SplitStatements splits a script on ';' and returns the trimmed, non-empty statements.
// Segments consisting only of "--" comment lines are dropped.
func SplitStatements(script string) []string {
	statements := make([]string, 0)

	for _, segment := range strings.Split(script, statementSeparator) {
		statement := strings.TrimSpace(segment)
		if statement == "" || isCommentOnly(statement) {
			continue
		}

		statements = append(statements, statement)
	}

	return statements
}

func isCommentOnly(statement string) bool {
	for _, line := range strings.Split(statement, "\n") {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "--") {
			return false
		}
	}

	return true
}

func (e *SetupExecutor) logDebug(message string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(message, args...)
	}
}

func (e *SetupExecutor) logError(message string, err error, args ...any) {
	if e.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		e.logger.Error(message, allArgs...)
	}
}
