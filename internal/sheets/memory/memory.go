// Package memory is an in-memory report sink used in tests and as the
// default backend when no spreadsheet is configured.
package memory

import (
	"context"
	"sync"

	"ledgerstats/internal/core"
	ports "ledgerstats/internal/sheets"
)

type Store struct {
	mu      sync.Mutex
	reports map[string]core.Report
}

var _ ports.ReportSink = (*Store)(nil)

func New() *Store {
	return &Store{reports: make(map[string]core.Report)}
}

// WriteReport stores the report, replacing any previous one of the same name.
func (s *Store) WriteReport(_ context.Context, r core.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.Name] = r
	return nil
}

// Report returns a stored report by name.
func (s *Store) Report(name string) (core.Report, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[name]
	return r, ok
}

// Names returns the names of all stored reports.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.reports))
	for name := range s.reports {
		names = append(names, name)
	}
	return names
}
