package audio

import "context"

// Source delivers audio in fixed-size frames. Implementations block in
// ReadFrame until a frame is available, the stream ends (io.EOF), or the
// context is canceled.
type Source interface {
	// SampleRate returns the rate frames are delivered at.
	SampleRate() int
	// ReadFrame returns the next frame of samples. The returned slice is
	// owned by the caller.
	ReadFrame(ctx context.Context) ([]float32, error)
	// Close releases the underlying device or stream.
	Close() error
}
