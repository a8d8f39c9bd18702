// Package generator drives a plan snapshot run.
//
// For every suite it runs the suite's setup script once, captures the explain plan of every query
// file, normalizes and aggregates the plans per folder, and hands each folder to the configured
// emitters. All statements of a run go through one StatementRunner, one at a time.
//
// Setup scripts are split on every ';'. A ';' inside a string literal, a quoted identifier or a
// function body therefore splits the statement; such setup must be moved into separate statements.
package generator
