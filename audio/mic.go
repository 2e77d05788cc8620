package audio

import (
	"context"
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	"github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/logger"
)

// portaudio.Initialize is process-wide; guard it so concurrent captures
// initialize the host API once.
var (
	paInitOnce sync.Once
	paInitErr  error
)

// Microphone is a Source backed by the default portaudio input device.
type Microphone struct {
	stream *portaudio.Stream
	frame  []float32
	rate   int
	log    *logger.Logger
}

// NewMicrophone opens the default input device at the given rate and
// frame size. Failure to acquire the device maps to DeviceUnavailable.
func NewMicrophone(sampleRate, frameSize int) (*Microphone, error) {
	paInitOnce.Do(func() {
		paInitErr = portaudio.Initialize()
	})
	if paInitErr != nil {
		return nil, errors.DeviceUnavailable("microphone", paInitErr)
	}

	m := &Microphone{
		frame: make([]float32, frameSize),
		rate:  sampleRate,
		log:   logger.Get("capture"),
	}

	stream, err := portaudio.OpenDefaultStream(1, 0, float64(sampleRate), frameSize, m.frame)
	if err != nil {
		return nil, errors.DeviceUnavailable("microphone", err)
	}
	if err := stream.Start(); err != nil {
		stream.Close() //nolint:errcheck // best-effort cleanup after failed start
		return nil, errors.DeviceUnavailable("microphone", err)
	}

	m.stream = stream
	m.log.Debug("microphone opened", logger.Fields("sample_rate", sampleRate, "frame_size", frameSize))
	return m, nil
}

// SampleRate returns the configured capture rate.
func (m *Microphone) SampleRate() int { return m.rate }

// ReadFrame blocks until the device delivers the next frame. Transient
// overflows are retried; the context bounds the wait.
func (m *Microphone) ReadFrame(ctx context.Context) ([]float32, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		err := m.stream.Read()
		if err == portaudio.InputOverflowed {
			// Overflow drops old frames; the current read still filled the buffer.
			m.log.Warn("input overflow, frames dropped")
		} else if err != nil {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(10 * time.Millisecond):
				continue
			}
		}

		out := make([]float32, len(m.frame))
		copy(out, m.frame)
		return out, nil
	}
}

// Close stops and releases the stream.
func (m *Microphone) Close() error {
	if m.stream == nil {
		return nil
	}
	m.stream.Stop() //nolint:errcheck // stop before close, errors are not actionable
	err := m.stream.Close()
	m.stream = nil
	return err
}
