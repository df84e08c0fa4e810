package sim

import "github.com/rs/xid"

// newID returns a short opaque identifier used only for diagnostics
// (error messages, log records), never for ordering or correctness.
func newID() string {
	return xid.New().String()
}
