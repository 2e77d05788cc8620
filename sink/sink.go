package sink

import (
	"context"

	"github.com/kbukum/voicebridge/audio"
)

// Sink receives the synthesized audio at the end of a pipeline run.
type Sink interface {
	// Emit persists the buffer and returns a destination identifier:
	// a path for file sinks, an opaque id for memory sinks. A failed
	// Emit leaves no partial output behind.
	Emit(ctx context.Context, buf *audio.Buffer) (string, error)
}
