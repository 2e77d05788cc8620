package audio

// Resample converts the buffer to the target sample rate using linear
// interpolation. Resampling happens at stage boundaries, never inside a
// stage; a buffer already at the target rate is returned unchanged.
func Resample(buf *Buffer, targetRate int) *Buffer {
	if buf.SampleRate == targetRate || buf.Empty() || targetRate <= 0 {
		return buf
	}

	ratio := float64(buf.SampleRate) / float64(targetRate)
	outLen := int(float64(len(buf.Samples)) / ratio)
	if outLen == 0 {
		outLen = 1
	}

	out := make([]float32, outLen)
	for i := range out {
		pos := float64(i) * ratio
		idx := int(pos)
		if idx >= len(buf.Samples)-1 {
			out[i] = buf.Samples[len(buf.Samples)-1]
			continue
		}
		frac := float32(pos - float64(idx))
		out[i] = buf.Samples[idx]*(1-frac) + buf.Samples[idx+1]*frac
	}

	return &Buffer{Samples: out, SampleRate: targetRate}
}
