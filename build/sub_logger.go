package build

import (
	"sort"
	"sync"

	"github.com/btcsuite/btclog/v2"
)

// SubLoggerManager manages a set of subsystem loggers that all write to one
// btclog handler. It implements LeveledSubLogger so that debug level strings
// can be applied to it with ParseAndSetDebugLevels.
type SubLoggerManager struct {
	handler btclog.Handler

	loggers SubLoggers
	mu      sync.Mutex
}

// A compile time check to ensure SubLoggerManager implements the
// LeveledSubLogger interface.
var _ LeveledSubLogger = (*SubLoggerManager)(nil)

// NewSubLoggerManager constructs a SubLoggerManager writing to handler.
func NewSubLoggerManager(handler btclog.Handler) *SubLoggerManager {
	return &SubLoggerManager{
		handler: handler,
		loggers: make(SubLoggers),
	}
}

// GenSubLogger creates a new logger for the given subsystem. The logger is
// not registered with the manager; use RegisterSubLogger for that.
func (r *SubLoggerManager) GenSubLogger(subsystem string) btclog.Logger {
	return btclog.NewSLogger(r.handler.SubSystem(subsystem))
}

// RegisterSubLogger creates a logger for the subsystem, registers it with the
// manager and hands it to useLogger.
func (r *SubLoggerManager) RegisterSubLogger(subsystem string,
	useLogger func(btclog.Logger)) {

	logger := NewSubLogger(subsystem, r.GenSubLogger)
	useLogger(logger)

	r.mu.Lock()
	r.loggers[subsystem] = logger
	r.mu.Unlock()
}

// SubLoggers returns all currently registered subsystem loggers for this log
// writer.
//
// NOTE: This is part of the LeveledSubLogger interface.
func (r *SubLoggerManager) SubLoggers() SubLoggers {
	r.mu.Lock()
	defer r.mu.Unlock()

	loggers := make(SubLoggers, len(r.loggers))
	for k, v := range r.loggers {
		loggers[k] = v
	}

	return loggers
}

// SupportedSubsystems returns a sorted string slice of all keys in the
// subsystems map, corresponding to the names of the subsystems.
//
// NOTE: This is part of the LeveledSubLogger interface.
func (r *SubLoggerManager) SupportedSubsystems() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	subsystems := make([]string, 0, len(r.loggers))
	for subsysID := range r.loggers {
		subsystems = append(subsystems, subsysID)
	}

	// Sort the subsystems for stable display.
	sort.Strings(subsystems)

	return subsystems
}

// SetLogLevel sets the logging level for provided subsystem. Invalid
// subsystems are ignored.
//
// NOTE: This is part of the LeveledSubLogger interface.
func (r *SubLoggerManager) SetLogLevel(subsystemID string, logLevel string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	setLogLevel(r.loggers, subsystemID, logLevel)
}

// SetLogLevels sets the log level for all registered subsystem loggers to the
// passed level.
//
// NOTE: This is part of the LeveledSubLogger interface.
func (r *SubLoggerManager) SetLogLevels(logLevel string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Configure all sub-systems with the new logging level.
	for subsystemID := range r.loggers {
		setLogLevel(r.loggers, subsystemID, logLevel)
	}
}

// setLogLevel sets the log level of the logger registered under subsystemID.
// The caller must hold the manager's mutex.
func setLogLevel(loggers SubLoggers, subsystemID, logLevel string) {
	logger, ok := loggers[subsystemID]
	if !ok {
		return
	}

	// Defaults to info if the log level is invalid.
	level, _ := btclog.LevelFromString(logLevel)

	logger.SetLevel(level)
}
