// Package helper provides test helpers shared by the plan snapshot packages.
//
// It contains a capturing slog.Handler to assert on log output and small fixture builders
// for query corpora on disk.
package helper
