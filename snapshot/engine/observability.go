package engine

import (
	"math"
	"time"
)

// logStatementWithDuration logs statements with execution time at debug level if the logger is configured.
func (s *Session) logStatementWithDuration(
	message string,
	statement string,
	duration time.Duration,
	args ...any,
) {
	if s.logger != nil {
		allArgs := []any{logAttrDurationMS, toMilliseconds(duration), logAttrStatement, statement}
		allArgs = append(allArgs, args...)
		s.logger.Debug(message, allArgs...)
	}
}

// logDebug logs at debug level if the logger is configured.
func (s *Session) logDebug(message string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(message, args...)
	}
}

// logInfo logs operational information at info level if the logger is configured.
func (s *Session) logInfo(message string, args ...any) {
	if s.logger != nil {
		s.logger.Info(message, args...)
	}
}

// logWarn logs non-critical issues at warn level if the logger is configured.
func (s *Session) logWarn(message string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(message, args...)
	}
}

// logError logs error information at the error level if the logger is configured.
func (s *Session) logError(
	message string,
	err error,
	args ...any,
) {
	if s.logger != nil {
		allArgs := []any{logAttrError, err.Error()}
		allArgs = append(allArgs, args...)
		s.logger.Error(message, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
