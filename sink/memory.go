package sink

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kbukum/voicebridge/audio"
	"github.com/kbukum/voicebridge/errors"
)

// defaultMemoryCapacity bounds how many results the memory sink retains.
// Oldest entries are evicted first.
const defaultMemoryCapacity = 64

// MemorySink keeps encoded WAV results in memory, keyed by generated id.
// The web API serves GET /api/audio/:id from here.
type MemorySink struct {
	mu       sync.Mutex
	entries  map[string][]byte
	order    []string
	capacity int
}

// NewMemorySink creates a memory sink with the default capacity.
func NewMemorySink() *MemorySink {
	return NewMemorySinkWithCapacity(defaultMemoryCapacity)
}

// NewMemorySinkWithCapacity creates a memory sink retaining at most n results.
func NewMemorySinkWithCapacity(n int) *MemorySink {
	if n < 1 {
		n = 1
	}
	return &MemorySink{
		entries:  make(map[string][]byte),
		capacity: n,
	}
}

// Emit stores the encoded buffer and returns its retrieval id.
func (s *MemorySink) Emit(ctx context.Context, buf *audio.Buffer) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", errors.Write("memory", err)
	}

	id := uuid.NewString()
	data := audio.EncodeWAV(buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.order) >= s.capacity {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
	}
	s.entries[id] = data
	s.order = append(s.order, id)
	return id, nil
}

// Get returns the stored WAV bytes for an id.
func (s *MemorySink) Get(id string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.entries[id]
	return data, ok
}

// Len returns the number of retained results.
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
