package generator

import (
	"errors"
	"fmt"

	"github.com/AntonStoeckl/plan-snapshots-go/snapshot"
	"github.com/AntonStoeckl/plan-snapshots-go/snapshot/corpus"
	"github.com/AntonStoeckl/plan-snapshots-go/snapshot/emit"
)

// ErrNoEmitters is returned by WithEmitters when called without any emitter.
var ErrNoEmitters = errors.New("at least one emitter is required")

// Option defines a functional option for configuring a Generator.
type Option func(*Generator) error

// WithLogger sets the logger for run progress, warnings and errors.
func WithLogger(logger snapshot.Logger) Option {
	return func(g *Generator) error {
		g.logger = logger
		return nil
	}
}

// WithCaptureFailurePolicy sets what happens when a single query's plan cannot be captured.
// The default is AbortOnCaptureError.
func WithCaptureFailurePolicy(policy CaptureFailurePolicy) Option {
	return func(g *Generator) error {
		switch policy {
		case AbortOnCaptureError, MarkCaptureError:
			g.policy = policy
			return nil
		default:
			return fmt.Errorf("%w: %q", ErrUnsupportedCaptureFailurePolicy, string(policy))
		}
	}
}

// WithExplainPrefix overrides the explain directive derived from the runner's dialect.
// An empty prefix keeps the default.
func WithExplainPrefix(prefix string) Option {
	return func(g *Generator) error {
		if prefix != "" {
			g.explainPrefix = prefix
		}

		return nil
	}
}

// WithDiscoveryOrder keeps the entries of a group in discovery order instead of sorting them by file name.
func WithDiscoveryOrder() Option {
	return func(g *Generator) error {
		g.keepDiscoveryOrder = true
		return nil
	}
}

// WithEmitters replaces the default YAML emitter. Every group is written once per emitter.
func WithEmitters(emitters ...emit.Emitter) Option {
	return func(g *Generator) error {
		if len(emitters) == 0 {
			return ErrNoEmitters
		}

		g.emitters = emitters

		return nil
	}
}

// WithOutputRoot writes template files to <root>/<suite>/tests instead of the suite's own directory.
func WithOutputRoot(root string) Option {
	return func(g *Generator) error {
		g.outputRoot = root
		return nil
	}
}

// WithWalker replaces the default query corpus Walker.
func WithWalker(walker *corpus.Walker) Option {
	return func(g *Generator) error {
		if walker != nil {
			g.walker = walker
		}

		return nil
	}
}
