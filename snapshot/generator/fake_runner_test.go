package generator_test

import (
	"context"
	"fmt"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot/engine"
)

// fakeRunner answers statements from canned results and records what it was asked to run.
type fakeRunner struct {
	executed  []string
	queried   []string
	plans     map[string]engine.Rows
	execErrs  map[string]error
	queryErrs map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		plans:     make(map[string]engine.Rows),
		execErrs:  make(map[string]error),
		queryErrs: make(map[string]error),
	}
}

func (r *fakeRunner) givenPlan(statement string, lines ...string) *fakeRunner {
	rows := make(engine.Rows, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, engine.NewRow(line))
	}

	r.plans[statement] = rows

	return r
}

func (r *fakeRunner) givenQueryError(statement string, err error) *fakeRunner {
	r.queryErrs[statement] = err
	return r
}

func (r *fakeRunner) givenExecError(statement string, err error) *fakeRunner {
	r.execErrs[statement] = err
	return r
}

func (r *fakeRunner) Execute(_ context.Context, statement string) error {
	r.executed = append(r.executed, statement)

	return r.execErrs[statement]
}

func (r *fakeRunner) Query(ctx context.Context, statement string) (engine.Rows, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.queried = append(r.queried, statement)

	if err, ok := r.queryErrs[statement]; ok {
		return nil, err
	}

	rows, ok := r.plans[statement]
	if !ok {
		return nil, fmt.Errorf("unexpected statement: %s", statement)
	}

	return rows, nil
}
