package audio

import "time"

// DefaultSampleRate is the rate the ASR stage expects (16 kHz mono).
const DefaultSampleRate = 16000

// Buffer holds mono PCM samples normalized to [-1, 1]. A Buffer is owned
// by whichever stage currently holds it; stages hand it off rather than
// aliasing it.
type Buffer struct {
	Samples    []float32
	SampleRate int
}

// Duration returns the buffer length as wall-clock time.
func (b *Buffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}

// Seconds returns the buffer length in seconds.
func (b *Buffer) Seconds() float64 {
	if b.SampleRate <= 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Empty reports whether the buffer contains no samples.
func (b *Buffer) Empty() bool {
	return b == nil || len(b.Samples) == 0
}
