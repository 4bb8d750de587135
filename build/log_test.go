package build

import (
	"bytes"
	"testing"

	btclogv1 "github.com/btcsuite/btclog"
	"github.com/btcsuite/btclog/v2"
	"github.com/stretchr/testify/require"
)

func newTestManager(buf *bytes.Buffer) *SubLoggerManager {
	manager := NewSubLoggerManager(btclog.NewDefaultHandler(buf))
	for _, subsystem := range []string{"AAAA", "BBBB"} {
		manager.RegisterSubLogger(subsystem, func(btclog.Logger) {})
	}

	return manager
}

// TestParseAndSetDebugLevels checks global and per subsystem level strings.
func TestParseAndSetDebugLevels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		level    string
		expErr   bool
		expLevel map[string]btclogv1.Level
	}{
		{
			name:  "global",
			level: "debug",
			expLevel: map[string]btclogv1.Level{
				"AAAA": btclogv1.LevelDebug,
				"BBBB": btclogv1.LevelDebug,
			},
		},
		{
			name:  "global and subsystem",
			level: "warn,BBBB=trace",
			expLevel: map[string]btclogv1.Level{
				"AAAA": btclogv1.LevelWarn,
				"BBBB": btclogv1.LevelTrace,
			},
		},
		{
			name:  "subsystem only",
			level: "AAAA=error",
			expLevel: map[string]btclogv1.Level{
				"AAAA": btclogv1.LevelError,
			},
		},
		{
			name:   "invalid global",
			level:  "loud",
			expErr: true,
		},
		{
			name:   "invalid subsystem",
			level:  "CCCC=debug",
			expErr: true,
		},
		{
			name:   "invalid pair",
			level:  "debug,AAAA",
			expErr: true,
		},
		{
			name:   "invalid subsystem level",
			level:  "AAAA=loud",
			expErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			manager := newTestManager(&buf)

			err := ParseAndSetDebugLevels(tc.level, manager)
			if tc.expErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			loggers := manager.SubLoggers()
			for subsystem, level := range tc.expLevel {
				require.Equal(t, level, loggers[subsystem].Level(),
					subsystem)
			}
		})
	}
}

// TestSubLoggerManager checks registration and output routing.
func TestSubLoggerManager(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	manager := NewSubLoggerManager(btclog.NewDefaultHandler(&buf))

	var logger btclog.Logger
	manager.RegisterSubLogger("TEST", func(l btclog.Logger) {
		logger = l
	})
	require.NotNil(t, logger)
	require.Equal(t, []string{"TEST"}, manager.SupportedSubsystems())

	manager.SetLogLevels("info")
	logger.Infof("hello %d", 42)
	require.Contains(t, buf.String(), "TEST")
	require.Contains(t, buf.String(), "hello 42")

	buf.Reset()
	manager.SetLogLevel("TEST", "off")
	logger.Infof("hidden")
	require.Empty(t, buf.String())

	// Unknown subsystems are ignored.
	manager.SetLogLevel("NOPE", "debug")
}

// TestNewSubLoggerWithoutBackend checks a nil generator yields a disabled
// logger in the default build.
func TestNewSubLoggerWithoutBackend(t *testing.T) {
	t.Parallel()

	if LoggingType != LogTypeDefault {
		t.Skip("only applies to the default log type")
	}

	require.Equal(t, btclog.Disabled, NewSubLogger("NONE", nil))
}

func TestVersion(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0.3.0-beta", Version())
}

func TestDeployment(t *testing.T) {
	t.Parallel()

	require.Contains(
		t, []string{"development", "production"}, Deployment.String(),
	)
	require.Equal(t, "unknown(7)", DeploymentType(7).String())
}
