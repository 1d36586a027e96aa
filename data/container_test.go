package data

import (
	"sync"
	"testing"
	"time"

	"github.com/giygas/medtext-analyzer/interfaces"
	"github.com/giygas/medtext-analyzer/referenceparser"
	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

func TestNewDataContainer(t *testing.T) {
	dc := NewDataContainer()

	if dc == nil {
		t.Fatal("NewDataContainer returned nil")
	}
	if dc.IsUpdating() {
		t.Error("NewDataContainer should not be updating")
	}
	if !dc.GetLastUpdated().IsZero() {
		t.Error("NewDataContainer should have zero lastUpdated time")
	}
	if !dc.GetTables().IsEmpty() {
		t.Error("NewDataContainer should have empty tables")
	}
	if dc.GetReport() == nil {
		t.Error("NewDataContainer should have a non-nil report")
	}
}

func TestUpdateTables(t *testing.T) {
	dc := NewDataContainer()
	tables := referenceparser.DefaultTables()
	report := &interfaces.DataQualityReport{DrugsWithoutAliases: 3}

	before := time.Now()
	dc.UpdateTables(tables, report)

	if got := dc.GetTables(); len(got.Drugs) != len(tables.Drugs) {
		t.Errorf("Expected %d drugs, got %d", len(tables.Drugs), len(got.Drugs))
	}
	if dc.GetReport().DrugsWithoutAliases != 3 {
		t.Error("Expected the stored report")
	}
	if dc.GetLastUpdated().Before(before) {
		t.Error("Expected lastUpdated to be refreshed")
	}
}

func TestUpdateTablesNilReport(t *testing.T) {
	dc := NewDataContainer()
	dc.UpdateTables(entities.Tables{}, nil)
	if dc.GetReport() == nil {
		t.Error("Expected a non-nil report after a nil update")
	}
}

func TestBeginEndUpdate(t *testing.T) {
	dc := NewDataContainer()

	if !dc.BeginUpdate() {
		t.Fatal("First BeginUpdate should succeed")
	}
	if dc.BeginUpdate() {
		t.Error("Second BeginUpdate should fail while updating")
	}
	if !dc.IsUpdating() {
		t.Error("Expected IsUpdating to be true")
	}

	dc.EndUpdate()
	if dc.IsUpdating() {
		t.Error("Expected IsUpdating to be false after EndUpdate")
	}
	if !dc.BeginUpdate() {
		t.Error("BeginUpdate should succeed after EndUpdate")
	}
}

func TestServerStartTime(t *testing.T) {
	dc := NewDataContainer()
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	dc.SetServerStartTime(start)
	if !dc.GetServerStartTime().Equal(start) {
		t.Errorf("Expected %v, got %v", start, dc.GetServerStartTime())
	}
}

func TestConcurrentReadsDuringUpdates(t *testing.T) {
	dc := NewDataContainer()
	dc.UpdateTables(referenceparser.DefaultTables(), nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if len(dc.GetTables().Drugs) == 0 {
					t.Error("Reader saw empty tables during swap")
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				dc.UpdateTables(referenceparser.DefaultTables(), nil)
			}
		}()
	}
	wg.Wait()
}
