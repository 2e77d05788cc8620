package audio

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	vberrors "github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/logger"
	"github.com/kbukum/voicebridge/process"
)

// LoadFile reads an audio file into a Buffer resampled to targetRate.
// WAV files are decoded natively; other containers (MP3, FLAC, OGG,
// browser WebM uploads) are transcoded through ffmpeg.
func LoadFile(ctx context.Context, path string, targetRate int) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, vberrors.EmptyInput(path).WithCause(err)
	}
	if len(data) == 0 {
		return nil, vberrors.EmptyInput(path)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".wav" {
		buf, err := DecodeWAV(data)
		if err != nil {
			return nil, vberrors.EmptyInput(path).WithCause(err)
		}
		return finishLoad(buf, targetRate, path)
	}

	buf, err := Transcode(ctx, data, targetRate)
	if err != nil {
		return nil, err
	}
	return finishLoad(buf, targetRate, path)
}

func finishLoad(buf *Buffer, targetRate int, path string) (*Buffer, error) {
	if buf.Empty() {
		return nil, vberrors.EmptyInput(path)
	}
	out := Resample(buf, targetRate)
	logger.Get("capture").Debug("file loaded", logger.Fields(
		"path", path,
		"seconds", out.Seconds(),
		"sample_rate", out.SampleRate,
	))
	return out, nil
}

// Transcode converts arbitrary container bytes to a mono Buffer at
// targetRate by piping them through ffmpeg.
func Transcode(ctx context.Context, data []byte, targetRate int) (*Buffer, error) {
	result, err := process.Run(ctx, process.Command{
		Binary: "ffmpeg",
		Args: []string{
			"-i", "pipe:0",
			"-ac", "1",
			"-ar", fmt.Sprintf("%d", targetRate),
			"-f", "wav",
			"pipe:1",
		},
		Stdin: bytes.NewReader(data),
	})
	if err != nil {
		return nil, vberrors.EmptyInput("transcode").WithCause(
			fmt.Errorf("ffmpeg: %w (stderr: %s)", err, truncate(result, 200)))
	}

	buf, err := DecodeWAV(result.Stdout)
	if err != nil {
		return nil, vberrors.EmptyInput("transcode").WithCause(err)
	}
	return buf, nil
}

func truncate(r *process.Result, n int) string {
	if r == nil {
		return ""
	}
	s := string(r.Stderr)
	if len(s) > n {
		return s[:n]
	}
	return s
}
