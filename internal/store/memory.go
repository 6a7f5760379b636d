package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"docrag/internal/models"
	"docrag/internal/ragerr"
)

// Memory is an in-process Store with the same filename-uniqueness semantics
// as the Postgres implementation. Intended for tests and single-node runs
// that do not need metadata to outlive the process.
type Memory struct {
	mu      sync.Mutex
	records map[string]models.DocumentMetadata
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]models.DocumentMetadata)}
}

func (s *Memory) Init(ctx context.Context) error { return nil }

func (s *Memory) Insert(ctx context.Context, meta *models.DocumentMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[meta.Filename]; ok {
		return ragerr.New(ragerr.KindConflict, "document %q already exists", meta.Filename)
	}
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.UploadDate.IsZero() {
		meta.UploadDate = time.Now().UTC()
	}
	s.records[meta.Filename] = *meta
	return nil
}

func (s *Memory) Count(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records), nil
}

func (s *Memory) List(ctx context.Context) ([]models.DocumentMetadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]models.DocumentMetadata, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UploadDate.Before(records[j].UploadDate)
	})
	return records, nil
}

func (s *Memory) Close() error { return nil }
