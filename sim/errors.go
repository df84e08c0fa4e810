package sim

import "github.com/pkg/errors"

// ErrorReason classifies the kind of validation failure a SimulationError
// carries, so callers can branch on it with IsReason instead of parsing
// the error string.
type ErrorReason int

const (
	// InvalidLatency: a Link or BcastLink was constructed with
	// latency <= 0.
	InvalidLatency ErrorReason = iota
	// InvalidDelay: Timer.Set was called with delay <= 0, or Send was
	// called with a negative extraDelay.
	InvalidDelay
	// Unconnected: Link.Send was called with no target Port, or a
	// Link/BcastLink send or Timer.Set was attempted on an edge whose
	// owning component is not registered with a Simulator.
	Unconnected
	// CrossSimulator: Connect was attempted between a link and a port
	// owned by components registered with different Simulators.
	CrossSimulator
	// BackRefConflict: an edge's owning-component back-reference was
	// set to a second, different component.
	BackRefConflict
)

func (r ErrorReason) String() string {
	switch r {
	case InvalidLatency:
		return "InvalidLatency"
	case InvalidDelay:
		return "InvalidDelay"
	case Unconnected:
		return "Unconnected"
	case CrossSimulator:
		return "CrossSimulator"
	case BackRefConflict:
		return "BackRefConflict"
	default:
		return "Unknown"
	}
}

// SimulationError is the single error family raised by every validation
// failure in this package. All such failures are synchronous, at the
// offending call, with no retries.
type SimulationError struct {
	Reason ErrorReason
	Op     string
	cause  error
}

func (e *SimulationError) Error() string {
	if e.cause != nil {
		return e.Op + ": " + e.Reason.String() + ": " + e.cause.Error()
	}
	return e.Op + ": " + e.Reason.String()
}

func (e *SimulationError) Unwrap() error {
	return e.cause
}

func newSimError(reason ErrorReason, op, format string, args ...any) *SimulationError {
	return &SimulationError{
		Reason: reason,
		Op:     op,
		cause:  errors.Errorf(format, args...),
	}
}

// IsReason reports whether err is a *SimulationError with the given
// reason, unwrapping as errors.As would.
func IsReason(err error, reason ErrorReason) bool {
	var simErr *SimulationError
	if !errors.As(err, &simErr) {
		return false
	}
	return simErr.Reason == reason
}
