package logcomponent

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/syifan/desim/sim"
)

// Logger is an ordinary component with a Port[Record]: no special
// engine support, just a component whose Behavior drains its Port each
// tick and forwards to a structured logger.
type Logger struct {
	sim.Base

	In *sim.Port[Record]

	out zerolog.Logger
}

// New returns a Logger named name that writes to w.
func New(name string, w io.Writer) *Logger {
	return &Logger{
		Base: sim.NewBase(name),
		In:   sim.NewPort[Record](),
		out:  zerolog.New(w).With().Timestamp().Str("component", name).Logger(),
	}
}

// Behavior implements sim.Component. It has no startup or shutdown
// special casing beyond switching which iterator it drains: due
// records each tick, and whatever never arrived by the time shutdown
// runs.
func (l *Logger) Behavior(s *sim.Simulator, isStartup, isShutdown bool) {
	if isShutdown {
		for rec, tick := range l.In.RemainingMessages() {
			l.emit(rec, int64(tick))
		}
		return
	}
	for rec := range l.In.Messages(s.CurrentTime()) {
		l.emit(rec, int64(s.CurrentTime()))
	}
}

func (l *Logger) emit(rec Record, deliveredAt int64) {
	l.out.WithLevel(rec.Level.zerologLevel()).
		Str("id", rec.ID).
		Str("source", rec.Source).
		Int64("sent_tick", rec.Tick).
		Int64("delivered_tick", deliveredAt).
		Msg(rec.Message)
}
