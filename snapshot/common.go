package snapshot

import (
	"errors"
)

var (
	// ErrDiscoveryFailed is returned when the query corpus or a suite cannot be discovered.
	ErrDiscoveryFailed = errors.New("query corpus discovery failed")

	// ErrSetupFailed is returned when a setup statement fails. It aborts the whole run.
	ErrSetupFailed = errors.New("setup statement failed")

	// ErrCaptureFailed is returned when the explain plan of a query file cannot be captured.
	ErrCaptureFailed = errors.New("capturing explain plan failed")

	// ErrEmittingFailed is returned when a template file cannot be rendered or written.
	ErrEmittingFailed = errors.New("emitting template file failed")

	// ErrReadingQueryFileFailed is returned when a query or setup file cannot be read.
	ErrReadingQueryFileFailed = errors.New("reading query file failed")
)

var ErrNilDatabaseConnection = errors.New("database connection is nil")
var ErrUnsupportedAdapterType = errors.New("unsupported adapter type")
var ErrQueryingFailed = errors.New("querying the engine failed")
var ErrExecutingFailed = errors.New("executing statement failed")
var ErrScanningRowFailed = errors.New("scanning result row failed")
