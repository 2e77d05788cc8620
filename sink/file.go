package sink

import (
	"context"
	"os"
	"path/filepath"

	"github.com/kbukum/voicebridge/audio"
	"github.com/kbukum/voicebridge/errors"
	"github.com/kbukum/voicebridge/logger"
)

// FileSink writes output audio to a WAV file. The write is atomic: data
// goes to a temp file in the destination directory first and is renamed
// into place, so a failure never leaves a truncated file at the target
// path.
type FileSink struct {
	path string
	log  *logger.Logger
}

// NewFileSink creates a sink writing to the given path.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path, log: logger.Get("sink")}
}

// Path returns the destination path.
func (s *FileSink) Path() string { return s.path }

// Emit encodes the buffer as WAV and writes it to the destination path.
func (s *FileSink) Emit(ctx context.Context, buf *audio.Buffer) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Write(s.path, err)
	}

	data := audio.EncodeWAV(buf)

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".voicebridge-*.wav")
	if err != nil {
		return "", errors.Write(s.path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", errors.Write(s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", errors.Write(s.path, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return "", errors.Write(s.path, err)
	}

	s.log.Debug("wrote output file",
		logger.Fields("destination", s.path, "bytes", len(data)))
	return s.path, nil
}
