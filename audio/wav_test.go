package audio

import (
	"encoding/binary"
	"math"
	"testing"
)

func sineBuffer(rate int, seconds float64, freq float64) *Buffer {
	n := int(float64(rate) * seconds)
	samples := make([]float32, n)
	for i := range samples {
		samples[i] = float32(0.6 * math.Sin(2*math.Pi*freq*float64(i)/float64(rate)))
	}
	return &Buffer{Samples: samples, SampleRate: rate}
}

func TestEncodeDecodeWAV(t *testing.T) {
	orig := sineBuffer(16000, 0.25, 440)
	data := EncodeWAV(orig)

	decoded, err := DecodeWAV(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decoded.SampleRate != orig.SampleRate {
		t.Errorf("expected rate %d, got %d", orig.SampleRate, decoded.SampleRate)
	}
	if len(decoded.Samples) != len(orig.Samples) {
		t.Fatalf("expected %d samples, got %d", len(orig.Samples), len(decoded.Samples))
	}
	// 16-bit quantization bounds the error.
	for i := range orig.Samples {
		if diff := math.Abs(float64(orig.Samples[i] - decoded.Samples[i])); diff > 1.0/32000 {
			t.Fatalf("sample %d drifted by %f", i, diff)
		}
	}
}

func TestDecodeWAVStereoDownmix(t *testing.T) {
	// Hand-build a 2-channel WAV with left=0.5, right=-0.5 everywhere.
	const rate, frames = 8000, 64
	data := make([]byte, 0, wavHeaderSize+frames*4)
	data = append(data, []byte("RIFF")...)
	data = binary.LittleEndian.AppendUint32(data, uint32(36+frames*4))
	data = append(data, []byte("WAVE")...)
	data = append(data, []byte("fmt ")...)
	data = binary.LittleEndian.AppendUint32(data, 16)
	data = binary.LittleEndian.AppendUint16(data, 1) // PCM
	data = binary.LittleEndian.AppendUint16(data, 2) // stereo
	data = binary.LittleEndian.AppendUint32(data, rate)
	data = binary.LittleEndian.AppendUint32(data, rate*4)
	data = binary.LittleEndian.AppendUint16(data, 4)
	data = binary.LittleEndian.AppendUint16(data, 16)
	data = append(data, []byte("data")...)
	data = binary.LittleEndian.AppendUint32(data, frames*4)
	for i := 0; i < frames; i++ {
		data = binary.LittleEndian.AppendUint16(data, uint16(int16(16384)))
		data = binary.LittleEndian.AppendUint16(data, uint16(int16(-16384)))
	}

	buf, err := DecodeWAV(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.SampleRate != rate {
		t.Errorf("expected rate %d, got %d", rate, buf.SampleRate)
	}
	if len(buf.Samples) != frames {
		t.Fatalf("expected %d mono samples, got %d", frames, len(buf.Samples))
	}
	for _, s := range buf.Samples {
		if math.Abs(float64(s)) > 0.001 {
			t.Fatalf("expected downmix to cancel to ~0, got %f", s)
		}
	}
}

func TestDecodeWAVRejectsGarbage(t *testing.T) {
	cases := map[string][]byte{
		"too short":  {1, 2, 3},
		"bad magic":  make([]byte, 64),
	}
	for name, data := range cases {
		if _, err := DecodeWAV(data); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestBufferDuration(t *testing.T) {
	buf := &Buffer{Samples: make([]float32, 8000), SampleRate: 16000}
	if got := buf.Seconds(); got != 0.5 {
		t.Errorf("expected 0.5s, got %f", got)
	}
	var nilBuf *Buffer
	if !nilBuf.Empty() {
		t.Error("nil buffer should be empty")
	}
}
