package scheduler

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/giygas/medtext-analyzer/data"
	"github.com/giygas/medtext-analyzer/referenceparser"
	"github.com/giygas/medtext-analyzer/referenceparser/entities"
	"github.com/giygas/medtext-analyzer/validation"
)

type mockParser struct {
	tables entities.Tables
	err    error
	calls  atomic.Int32
}

func (m *mockParser) ParseTables() (entities.Tables, error) {
	m.calls.Add(1)
	if m.err != nil {
		return entities.Tables{}, m.err
	}
	return m.tables, nil
}

func newTestScheduler(parser *mockParser, times []string) (*Scheduler, *data.DataContainer) {
	container := data.NewDataContainer()
	s := NewScheduler(container, parser, validation.NewDataValidator(0), times)
	return s, container
}

func TestStartLoadsTables(t *testing.T) {
	parser := &mockParser{tables: referenceparser.DefaultTables()}
	s, container := newTestScheduler(parser, nil)
	defer s.Stop()

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	tables := container.GetTables()
	if len(tables.Drugs) != len(parser.tables.Drugs) {
		t.Errorf("Expected %d drugs, got %d", len(parser.tables.Drugs), len(tables.Drugs))
	}
	if container.GetLastUpdated().IsZero() {
		t.Error("Expected last updated to be set")
	}
	if container.GetReport() == nil {
		t.Error("Expected a data quality report")
	}
	if container.IsUpdating() {
		t.Error("Expected update flag to be released")
	}
}

func TestStartFailsOnParserError(t *testing.T) {
	parser := &mockParser{err: errors.New("disk on fire")}
	s, container := newTestScheduler(parser, nil)
	defer s.Stop()

	if err := s.Start(); err == nil {
		t.Fatal("Expected error from Start")
	}
	if !container.GetTables().IsEmpty() {
		t.Error("Expected no tables after failed initial load")
	}
}

func TestStartFailsOnInvalidTables(t *testing.T) {
	parser := &mockParser{tables: entities.Tables{}}
	s, _ := newTestScheduler(parser, nil)
	defer s.Stop()

	if err := s.Start(); err == nil {
		t.Fatal("Expected error for tables without drugs")
	}
}

func TestFailedReloadKeepsActiveTables(t *testing.T) {
	parser := &mockParser{tables: referenceparser.DefaultTables()}
	s, container := newTestScheduler(parser, nil)
	defer s.Stop()

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	loadedAt := container.GetLastUpdated()

	parser.tables = entities.Tables{
		Drugs: []entities.DrugEntry{{Name: ""}},
	}
	if err := s.Reload(); err == nil {
		t.Fatal("Expected reload of invalid tables to fail")
	}

	if got := len(container.GetTables().Drugs); got != len(referenceparser.DefaultTables().Drugs) {
		t.Errorf("Expected previous tables to stay active, got %d drugs", got)
	}
	if !container.GetLastUpdated().Equal(loadedAt) {
		t.Error("Expected last updated to be unchanged after failed reload")
	}
}

func TestReloadSkippedWhileUpdating(t *testing.T) {
	parser := &mockParser{tables: referenceparser.DefaultTables()}
	s, container := newTestScheduler(parser, nil)
	defer s.Stop()

	if !container.BeginUpdate() {
		t.Fatal("Expected to acquire update flag")
	}
	defer container.EndUpdate()

	if err := s.Reload(); err != nil {
		t.Errorf("Expected skipped reload to return nil, got %v", err)
	}
	if got := parser.calls.Load(); got != 0 {
		t.Errorf("Expected parser not to be called, got %d calls", got)
	}
}

func TestStartWithReloadTimes(t *testing.T) {
	parser := &mockParser{tables: referenceparser.DefaultTables()}
	s, _ := newTestScheduler(parser, []string{"06:00", "18:00"})

	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if got := len(s.scheduler.Jobs()); got != 1 {
		t.Errorf("Expected 1 scheduled job, got %d", got)
	}

	s.Stop()
	// Stop is idempotent
	s.Stop()
}

func TestStopConcurrent(t *testing.T) {
	parser := &mockParser{tables: referenceparser.DefaultTables()}
	s, _ := newTestScheduler(parser, []string{"06:00"})
	if err := s.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Stop()
		}()
	}
	wg.Wait()

	select {
	case <-s.stop:
	default:
		t.Error("Expected the stop channel to be closed")
	}
}

func TestStartRejectsBadReloadTimes(t *testing.T) {
	parser := &mockParser{tables: referenceparser.DefaultTables()}
	s, _ := newTestScheduler(parser, []string{"25:99"})
	defer s.Stop()

	if err := s.Start(); err == nil {
		t.Fatal("Expected error for invalid reload time")
	}
}

func TestCalculateNextUpdate(t *testing.T) {
	loc := time.UTC
	times := []string{"06:00", "18:00"}

	tests := []struct {
		name     string
		now      time.Time
		times    []string
		expected time.Time
	}{
		{
			name:     "before first reload",
			now:      time.Date(2024, 1, 1, 3, 0, 0, 0, loc),
			times:    times,
			expected: time.Date(2024, 1, 1, 6, 0, 0, 0, loc),
		},
		{
			name:     "between reloads",
			now:      time.Date(2024, 1, 1, 12, 0, 0, 0, loc),
			times:    times,
			expected: time.Date(2024, 1, 1, 18, 0, 0, 0, loc),
		},
		{
			name:     "after last reload",
			now:      time.Date(2024, 1, 1, 20, 0, 0, 0, loc),
			times:    times,
			expected: time.Date(2024, 1, 2, 6, 0, 0, 0, loc),
		},
		{
			name:     "exactly at reload time",
			now:      time.Date(2024, 1, 1, 6, 0, 0, 0, loc),
			times:    times,
			expected: time.Date(2024, 1, 1, 18, 0, 0, 0, loc),
		},
		{
			name:     "unordered times",
			now:      time.Date(2024, 1, 1, 7, 0, 0, 0, loc),
			times:    []string{"22:30", "09:15"},
			expected: time.Date(2024, 1, 1, 9, 15, 0, 0, loc),
		},
		{
			name:     "month rollover",
			now:      time.Date(2024, 1, 31, 23, 0, 0, 0, loc),
			times:    times,
			expected: time.Date(2024, 2, 1, 6, 0, 0, 0, loc),
		},
		{
			name:     "no reload times",
			now:      time.Date(2024, 1, 1, 12, 0, 0, 0, loc),
			times:    nil,
			expected: time.Time{},
		},
		{
			name:     "invalid entries ignored",
			now:      time.Date(2024, 1, 1, 12, 0, 0, 0, loc),
			times:    []string{"noon", "18:00"},
			expected: time.Date(2024, 1, 1, 18, 0, 0, 0, loc),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateNextUpdate(tt.times, tt.now)
			if !got.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
