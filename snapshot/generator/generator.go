package generator

import (
	"context"
	"errors"
	"math"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
	"github.com/AntonStoeckl/plan-snapshots-go/snapshot/corpus"
	"github.com/AntonStoeckl/plan-snapshots-go/snapshot/emit"
)

const outputDirName = "tests"

const (
	logMsgRunStarted           = "plan snapshot run started"
	logMsgRunFinished          = "plan snapshot run finished"
	logMsgRunFailed            = "plan snapshot run failed"
	logMsgSuiteStarted         = "generating plan snapshots for suite"
	logMsgNoSetupScript        = "suite has no setup script"
	logMsgSetupCompleted       = "setup script completed"
	logMsgSetupStatementFailed = "setup statement failed"
	logMsgPlanCaptured         = "captured plan"
	logMsgCaptureMarked        = "capturing plan failed, recording error marker"
	logMsgNoQueryFiles         = "suite has no query files"
	logMsgTemplateWritten      = "wrote template file"
	logAttrRunID               = "run_id"
	logAttrSuite               = "suite"
	logAttrSuiteCount          = "suite_count"
	logAttrFolder              = "folder"
	logAttrFile                = "file"
	logAttrPath                = "path"
	logAttrStatement           = "statement"
	logAttrStatementIndex      = "statement_index"
	logAttrStatementCount      = "statement_count"
	logAttrEntryCount          = "entry_count"
	logAttrFileCount           = "file_count"
	logAttrMarkedCount         = "marked_count"
	logAttrStructured          = "structured"
	logAttrDurationMS          = "duration_ms"
	logAttrError               = "error"
)

// SuiteReport summarizes the work done for one suite.
type SuiteReport struct {
	Suite           string
	SetupStatements int
	Captured        int
	Marked          int
	// Files lists the written template files in writing order.
	Files []string
}

// Report summarizes a run. After a failed run it holds the suites completed before the failure.
type Report struct {
	RunID  string
	Suites []SuiteReport
}

// Files returns all template files written by the run.
func (r Report) Files() []string {
	files := make([]string, 0)
	for _, suite := range r.Suites {
		files = append(files, suite.Files...)
	}

	return files
}

// Generator runs the plan snapshot pipeline for a list of suites over one StatementRunner.
type Generator struct {
	runner             StatementRunner
	logger             snapshot.Logger
	walker             *corpus.Walker
	emitters           []emit.Emitter
	policy             CaptureFailurePolicy
	explainPrefix      string
	keepDiscoveryOrder bool
	outputRoot         string
}

// NewGenerator creates a Generator with optional configuration.
// Without options it emits YAML, aborts on the first capture failure and sorts entries by file name.
func NewGenerator(runner StatementRunner, options ...Option) (*Generator, error) {
	if runner == nil {
		return nil, snapshot.ErrNilDatabaseConnection
	}

	walker, err := corpus.NewWalker()
	if err != nil {
		return nil, err
	}

	g := &Generator{
		runner:        runner,
		walker:        walker,
		emitters:      []emit.Emitter{emit.NewYAMLEmitter()},
		policy:        AbortOnCaptureError,
		explainPrefix: defaultExplainPrefix(runner),
	}

	for _, option := range options {
		if err := option(g); err != nil {
			return nil, err
		}
	}

	return g, nil
}

// Run processes the suites in order. It stops at the first setup, capture or emitting failure,
// and when ctx is canceled.
func (g *Generator) Run(ctx context.Context, suites corpus.Suites) (Report, error) {
	report := Report{RunID: uuid.NewString(), Suites: make([]SuiteReport, 0, len(suites))}
	start := time.Now()

	g.logInfo(logMsgRunStarted, logAttrRunID, report.RunID, logAttrSuiteCount, len(suites))

	for _, suite := range suites {
		if err := ctx.Err(); err != nil {
			g.logError(logMsgRunFailed, err, logAttrRunID, report.RunID)
			return report, err
		}

		suiteReport, err := g.RunSuite(ctx, report.RunID, suite)
		if err != nil {
			g.logError(logMsgRunFailed, err, logAttrRunID, report.RunID, logAttrSuite, suite.Name)
			return report, err
		}

		report.Suites = append(report.Suites, suiteReport)
	}

	g.logInfo(
		logMsgRunFinished,
		logAttrRunID, report.RunID,
		logAttrFileCount, len(report.Files()),
		logAttrDurationMS, toMilliseconds(time.Since(start)),
	)

	return report, nil
}

// RunSuite runs the setup script of one suite, captures the plans of its query files and writes one
// template file per folder and emitter.
func (g *Generator) RunSuite(ctx context.Context, runID string, suite corpus.Suite) (SuiteReport, error) {
	report := SuiteReport{Suite: suite.Name, Files: make([]string, 0)}

	g.logInfo(logMsgSuiteStarted, logAttrRunID, runID, logAttrSuite, suite.Name)

	if suite.HasSetupScript() {
		executed, err := NewSetupExecutor(g.runner, g.logger).RunFile(ctx, suite.Name, suite.SetupScript)
		report.SetupStatements = executed
		if err != nil {
			return report, err
		}
	} else {
		g.logDebug(logMsgNoSetupScript, logAttrSuite, suite.Name)
	}

	aggregator, err := g.capturePlans(ctx, suite, &report)
	if err != nil {
		return report, err
	}

	if aggregator.Len() == 0 {
		g.logInfo(logMsgNoQueryFiles, logAttrSuite, suite.Name)
		return report, nil
	}

	outDir := g.outputDir(suite)

	for _, folder := range aggregator.Groups() {
		group := aggregator.Group(folder)
		if !g.keepDiscoveryOrder {
			group = group.SortedByFileName()
		}

		for _, emitter := range g.emitters {
			path, writeErr := emit.WriteGroup(emitter, outDir, group)
			if writeErr != nil {
				return report, writeErr
			}

			g.logInfo(logMsgTemplateWritten, logAttrPath, path, logAttrEntryCount, len(group.Entries))
			report.Files = append(report.Files, path)
		}
	}

	return report, nil
}

func (g *Generator) capturePlans(ctx context.Context, suite corpus.Suite, report *SuiteReport) (*snapshot.Aggregator, error) {
	aggregator := snapshot.NewAggregator()
	capturer := NewPlanCapturer(g.runner, g.explainPrefix)

	err := g.walker.Walk(suite.QueriesDir, func(queryFile snapshot.QueryFile) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, captureErr := capturer.Capture(ctx, suite.Name, queryFile)
		if captureErr != nil {
			return g.handleCaptureError(ctx, aggregator, queryFile, captureErr, report)
		}

		plan := snapshot.NormalizePlan(raw)
		aggregator.Record(queryFile.Folder, queryFile.FileName, plan)
		report.Captured++

		g.logDebug(
			logMsgPlanCaptured,
			logAttrSuite, suite.Name,
			logAttrFolder, queryFile.Folder,
			logAttrFile, queryFile.FileName,
			logAttrStructured, snapshot.IsStructuredPlan(plan),
		)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return aggregator, nil
}

func (g *Generator) handleCaptureError(
	ctx context.Context,
	aggregator *snapshot.Aggregator,
	queryFile snapshot.QueryFile,
	captureErr error,
	report *SuiteReport,
) error {
	var failure *CaptureError
	if g.policy != MarkCaptureError || ctx.Err() != nil || !errors.As(captureErr, &failure) {
		return captureErr
	}

	marker := failure.Marker()
	aggregator.Record(queryFile.Folder, queryFile.FileName, marker)
	report.Marked++

	g.logWarn(
		logMsgCaptureMarked,
		logAttrSuite, failure.Suite,
		logAttrFolder, queryFile.Folder,
		logAttrFile, queryFile.FileName,
		logAttrError, marker,
	)

	return nil
}

func (g *Generator) outputDir(suite corpus.Suite) string {
	if g.outputRoot == "" {
		return filepath.Join(suite.Root, outputDirName)
	}

	return filepath.Join(g.outputRoot, suite.Name, outputDirName)
}

func (g *Generator) logDebug(message string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(message, args...)
	}
}

func (g *Generator) logInfo(message string, args ...any) {
	if g.logger != nil {
		g.logger.Info(message, args...)
	}
}

func (g *Generator) logWarn(message string, args ...any) {
	if g.logger != nil {
		g.logger.Warn(message, args...)
	}
}

func (g *Generator) logError(message string, err error, args ...any) {
	if g.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		g.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
