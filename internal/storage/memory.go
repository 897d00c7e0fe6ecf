package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/yamkelajack06/Study-Flow/internal/entry"
)

// Memory keeps records in process. It assigns storage ids "mem-1", "mem-2", ...
type Memory struct {
	mu      sync.Mutex
	records []entry.Record
	next    int
	fail    error
}

// NewMemory returns a Memory strategy preloaded with records.
func NewMemory(records ...entry.Record) *Memory {
	return &Memory{records: append([]entry.Record(nil), records...)}
}

// FailWith makes every following call return err. Pass nil to recover.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

func (m *Memory) GetEntries(_ context.Context) ([]entry.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	return append([]entry.Record(nil), m.records...), nil
}

func (m *Memory) AddEntry(_ context.Context, r entry.Record) (entry.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return entry.Record{}, m.fail
	}
	m.next++
	r.StorageID = fmt.Sprintf("mem-%d", m.next)
	m.records = append(m.records, r)
	return r, nil
}

func (m *Memory) UpdateEntry(_ context.Context, id string, r entry.Record) (entry.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return entry.Record{}, m.fail
	}
	i := findIndex(m.records, id)
	if i < 0 {
		return entry.Record{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	r.StorageID = m.records[i].StorageID
	m.records[i] = r
	return r, nil
}

func (m *Memory) DeleteEntry(_ context.Context, id string) error {
	if err := ValidateIdentifier(id); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	i := findIndex(m.records, id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	m.records = append(m.records[:i], m.records[i+1:]...)
	return nil
}

func (m *Memory) Close() error { return nil }
