// Package snapshot provides the core types for generating query-plan snapshot fixtures.
//
// A run walks a corpus of SQL query files, captures each query's explain plan from a
// database engine, normalizes the plan text and groups the results by the folder the
// query file lives in. Each group is then rendered into one template file that a
// downstream test suite uses as its golden baseline.
//
// This package defines the pieces shared by all stages of that pipeline:
//   - QueryFile: one discovered query file (folder, file name, path)
//   - NormalizePlan: canonical, idempotent plan text
//   - Aggregator: ordered folder -> (file name -> plan) buffer
//   - Group and Entry: the value handed to a template emitter
//   - the sentinel errors used across the subpackages
//
// Common usage pattern:
//
//	agg := snapshot.NewAggregator()
//	for _, qf := range files {
//		raw, err := capturer.Capture(ctx, qf)
//		if err != nil {
//			// handle error
//		}
//		agg.Record(qf.Folder, qf.FileName, snapshot.NormalizePlan(raw))
//	}
//
//	for _, folder := range agg.Groups() {
//		_, err := emit.WriteGroup(emit.NewYAMLEmitter(), outDir, agg.Group(folder))
//	}
package snapshot
