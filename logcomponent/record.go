// Package logcomponent implements the logging collaborator: an
// ordinary sim.Component that receives log Records over a Port, plus a
// Handle other components embed to send Records over a BatchLink
// without the engine treating log traffic any differently from user
// messages.
package logcomponent

import (
	"github.com/rs/zerolog"
)

// Level is a log severity, ordered low to high.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

func (l Level) zerologLevel() zerolog.Level {
	switch l {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.NoLevel
	}
}

// Record is the message type carried over the logging Port/BatchLink.
// It travels over a BatchLink, so its delivery time is never part of
// the simulated semantics; only Tick, stamped by the sender, is
// meaningful for a reader of the log.
type Record struct {
	ID      string
	Source  string
	Level   Level
	Message string
	Tick    int64
}
