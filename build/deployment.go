package build

import "fmt"

// DeploymentType selects how sub-loggers are wired, set at compile time by
// the dev build tag.
type DeploymentType byte

const (
	// Development routes sub-loggers to stdout when built with the stdlog
	// tag, which is what unit tests of this module use.
	Development DeploymentType = iota

	// Production hands every sub-logger to the backend given at start-up.
	Production
)

// String returns the name reported by lnpcli --version.
func (d DeploymentType) String() string {
	switch d {
	case Development:
		return "development"
	case Production:
		return "production"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(d))
	}
}
