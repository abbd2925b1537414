package memory

import (
	"context"
	"sync"

	"spendreport/internal/sheets"
)

// Store is an in-memory grid source and import target.
type Store struct {
	mu     sync.Mutex
	name   string
	values [][]string
}

var (
	_ sheets.GridReader = (*Store)(nil)
	_ sheets.GridWriter = (*Store)(nil)
)

// New returns a Store holding values; the first non-blank row is the header.
func New(name string, values [][]string) *Store {
	return &Store{name: name, values: cloneValues(values)}
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) ReadGrid(_ context.Context) (sheets.Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sheets.NewGrid(s.values)
}

// WriteGrid replaces the stored values with g and returns the row count.
func (s *Store) WriteGrid(_ context.Context, g sheets.Grid) (int, error) {
	values := [][]string{g.Header}
	for _, r := range g.Rows {
		values = append(values, r.Cells)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values = cloneValues(values)
	return len(g.Rows), nil
}

func cloneValues(in [][]string) [][]string {
	out := make([][]string, len(in))
	for i, row := range in {
		out[i] = append([]string(nil), row...)
	}
	return out
}
