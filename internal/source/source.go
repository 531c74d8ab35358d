// Package source provides expression sources for the sampler. A source wraps
// whatever actually looks at a face — an external detector service or a
// synthetic generator — behind one small interface.
package source

import (
	"context"

	"github.com/meowmocha24/emotionmap/internal/emotion"
)

// Source produces one expression reading per request.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// Probe checks that the source is reachable. The daemon calls it once
	// at startup; failure is logged and tolerated — the sampler keeps
	// ticking and records zero samples until readings succeed.
	Probe(ctx context.Context) error

	// Detect captures one reading. Any error is treated by the caller the
	// same as a reading with no face found.
	Detect(ctx context.Context) (emotion.Reading, error)
}
