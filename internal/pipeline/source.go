package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"hubstat/internal/feed"
)

// Source produces a parsed feed payload.
type Source interface {
	Fetch(ctx context.Context) (*feed.Payload, error)
	Endpoint() string
}

// FileSource reads a saved feed response from disk.
type FileSource struct {
	Path string
}

// NewFileSource returns a source reading path on every fetch.
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Endpoint identifies the file as a file:// URL.
func (s *FileSource) Endpoint() string {
	return "file://" + s.Path
}

// Fetch reads and parses the file. Invalid JSON wraps feed.ErrParse.
func (s *FileSource) Fetch(ctx context.Context) (*feed.Payload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start := time.Now()
	body, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("read feed file: %w", err)
	}
	value, err := feed.ParsePayload(body)
	if err != nil {
		return nil, err
	}
	return &feed.Payload{
		Value:     value,
		URL:       s.Endpoint(),
		Bytes:     len(body),
		Latency:   time.Since(start),
		FetchedAt: time.Now(),
	}, nil
}
