package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// WAV header constants for 16-bit PCM.
const (
	wavHeaderSize    = 44
	wavFormatPCM     = 1
	wavBitsPerSample = 16
)

// EncodeWAV serializes the buffer as a 16-bit PCM mono WAV file.
func EncodeWAV(buf *Buffer) []byte {
	dataSize := len(buf.Samples) * 2
	out := bytes.NewBuffer(make([]byte, 0, wavHeaderSize+dataSize))

	out.WriteString("RIFF")
	binary.Write(out, binary.LittleEndian, uint32(36+dataSize)) //nolint:errcheck // bytes.Buffer writes cannot fail
	out.WriteString("WAVE")

	out.WriteString("fmt ")
	binary.Write(out, binary.LittleEndian, uint32(16))                          //nolint:errcheck
	binary.Write(out, binary.LittleEndian, uint16(wavFormatPCM))                //nolint:errcheck
	binary.Write(out, binary.LittleEndian, uint16(1))                           //nolint:errcheck
	binary.Write(out, binary.LittleEndian, uint32(buf.SampleRate))              //nolint:errcheck
	binary.Write(out, binary.LittleEndian, uint32(buf.SampleRate*2))            //nolint:errcheck
	binary.Write(out, binary.LittleEndian, uint16(2))                           //nolint:errcheck
	binary.Write(out, binary.LittleEndian, uint16(wavBitsPerSample))            //nolint:errcheck

	out.WriteString("data")
	binary.Write(out, binary.LittleEndian, uint32(dataSize)) //nolint:errcheck

	for _, s := range buf.Samples {
		out.Write(pcm16Bytes(s))
	}
	return out.Bytes()
}

func pcm16Bytes(s float32) []byte {
	clamped := math.Max(-1, math.Min(1, float64(s)))
	v := int16(clamped * 32767)
	return []byte{byte(v), byte(v >> 8)}
}

// DecodeWAV parses a 16-bit PCM WAV file into a mono Buffer. Stereo input
// is downmixed by averaging channels.
func DecodeWAV(data []byte) (*Buffer, error) {
	if len(data) < wavHeaderSize {
		return nil, fmt.Errorf("wav: file too short (%d bytes)", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("wav: not a RIFF/WAVE file")
	}

	var (
		sampleRate int
		channels   int
		bits       int
		pcm        []byte
	)

	// Walk chunks; fmt must precede data.
	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if body+size > len(data) {
			size = len(data) - body
		}
		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("wav: fmt chunk too short")
			}
			format := int(binary.LittleEndian.Uint16(data[body : body+2]))
			if format != wavFormatPCM {
				return nil, fmt.Errorf("wav: unsupported format %d (only PCM)", format)
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bits = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
		case "data":
			pcm = data[body : body+size]
		}
		// Chunks are word-aligned.
		off = body + size + size%2
	}

	if sampleRate == 0 || channels == 0 {
		return nil, fmt.Errorf("wav: missing fmt chunk")
	}
	if bits != wavBitsPerSample {
		return nil, fmt.Errorf("wav: unsupported bit depth %d (only 16)", bits)
	}
	if pcm == nil {
		return nil, fmt.Errorf("wav: missing data chunk")
	}

	frameCount := len(pcm) / (2 * channels)
	samples := make([]float32, frameCount)
	for i := 0; i < frameCount; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			idx := (i*channels + c) * 2
			v := int16(binary.LittleEndian.Uint16(pcm[idx : idx+2]))
			sum += float64(v) / 32768.0
		}
		samples[i] = float32(sum / float64(channels))
	}

	return &Buffer{Samples: samples, SampleRate: sampleRate}, nil
}
