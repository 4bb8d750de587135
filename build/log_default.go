//go:build !stdlog && !nolog
// +build !stdlog,!nolog

package build

// LoggingType is a log type that writes to the handler supplied by the
// caller of NewSubLogger.
const LoggingType = LogTypeDefault
