package audio

import (
	"math"
	"testing"
)

func TestResampleHalvesLength(t *testing.T) {
	buf := sineBuffer(16000, 1.0, 200)
	out := Resample(buf, 8000)
	if out.SampleRate != 8000 {
		t.Errorf("expected rate 8000, got %d", out.SampleRate)
	}
	if got, want := len(out.Samples), 8000; got != want {
		t.Errorf("expected %d samples, got %d", want, got)
	}
}

func TestResampleUpsamplePreservesShape(t *testing.T) {
	buf := sineBuffer(8000, 0.5, 100)
	out := Resample(buf, 16000)
	if got := out.Seconds(); math.Abs(got-0.5) > 0.01 {
		t.Errorf("expected ~0.5s after upsample, got %f", got)
	}
	// A low-frequency sine survives linear interpolation nearly intact.
	probe := Resample(out, 8000)
	for i := 0; i < len(buf.Samples)-16; i += 97 {
		if diff := math.Abs(float64(buf.Samples[i] - probe.Samples[i])); diff > 0.05 {
			t.Fatalf("sample %d drifted by %f after round trip", i, diff)
		}
	}
}

func TestResampleSameRateIsIdentity(t *testing.T) {
	buf := sineBuffer(16000, 0.1, 440)
	if out := Resample(buf, 16000); out != buf {
		t.Error("expected same-rate resample to return the input unchanged")
	}
}
