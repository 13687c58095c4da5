package autoconf

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a Build failure.
type ErrorKind int

const (
	// MissingConfig means a required input was neither provided nor
	// derivable (e.g. ACME without a domain or public IP).
	MissingConfig ErrorKind = iota
	// ConfigConflict means two provided inputs contradict each other.
	// Reserved: no current rule produces it.
	ConfigConflict
	// InvalidConfig means a provided input is not acceptable for the
	// protocol (e.g. TLS disabled on Hysteria2).
	InvalidConfig
)

func (k ErrorKind) String() string {
	switch k {
	case MissingConfig:
		return "missing config"
	case ConfigConflict:
		return "config conflict"
	case InvalidConfig:
		return "invalid config"
	default:
		return "unknown"
	}
}

// BuildError is the failure a protocol Build returns. The builder produced
// nothing; there is no partial result to recover.
type BuildError struct {
	Protocol Protocol
	Kind     ErrorKind
	Msg      string
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Protocol, e.Kind, e.Msg)
}

func missingConfig(p Protocol, format string, args ...any) *BuildError {
	return &BuildError{Protocol: p, Kind: MissingConfig, Msg: fmt.Sprintf(format, args...)}
}

func invalidConfig(p Protocol, format string, args ...any) *BuildError {
	return &BuildError{Protocol: p, Kind: InvalidConfig, Msg: fmt.Sprintf(format, args...)}
}

// ErrBuilderConsumed is returned by Build when the builder has already
// produced a result or failed; builders are strictly one-shot.
var ErrBuilderConsumed = errors.New("builder already consumed")

// ErrNoAvailablePort is returned by the multi-protocol Build when every
// default port is already taken by another enabled protocol.
var ErrNoAvailablePort = errors.New("no available port")
