package logcomponent

import (
	"fmt"

	"github.com/rs/xid"

	"github.com/syifan/desim/sim"
)

// Handle is what any other component embeds to gain the ability to log
// without depending on the Logger component directly, only on a
// BatchLink connected to one at graph-construction time.
type Handle struct {
	Out      *sim.BatchLink[Record]
	Source   string
	MinLevel Level
}

// NewHandle returns a Handle identifying its sender as source, filtering
// out records below minLevel before they are ever sent.
func NewHandle(source string, minLevel Level) Handle {
	return Handle{
		Out:      sim.NewBatchLink[Record](),
		Source:   source,
		MinLevel: minLevel,
	}
}

// Log sends a Record if level meets the handle's MinLevel filter.
// Below-threshold calls are a no-op, not an error, matching BcastLink's
// own "zero targets is a no-op" posture for traffic the framework is
// allowed to silently drop.
func (h *Handle) Log(s *sim.Simulator, level Level, format string, args ...any) error {
	if level < h.MinLevel {
		return nil
	}
	rec := Record{
		ID:      xid.New().String(),
		Source:  h.Source,
		Level:   level,
		Message: fmt.Sprintf(format, args...),
		Tick:    int64(s.CurrentTime()),
	}
	return h.Out.Send(rec)
}
