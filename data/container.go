// Package data provides thread-safe storage of the active reference tables.
// The DataContainer swaps whole table sets atomically so that analyses running
// during a reload keep the snapshot they started with.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/medtext-analyzer/interfaces"
	"github.com/giygas/medtext-analyzer/logging"
	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the reference tables with atomic values for zero-downtime reloads
type DataContainer struct {
	tables          atomic.Value // entities.Tables
	report          atomic.Value // *interfaces.DataQualityReport
	lastUpdated     atomic.Value // time.Time
	updating        atomic.Bool
	serverStartTime atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with empty tables
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.tables.Store(entities.Tables{})
	dc.report.Store(&interfaces.DataQualityReport{})
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// GetTables returns the active tables. The value must be treated as read-only.
func (dc *DataContainer) GetTables() entities.Tables {
	if v := dc.tables.Load(); v != nil {
		if tables, ok := v.(entities.Tables); ok {
			return tables
		}
	}

	logging.Warn("Reference tables are empty or invalid")
	return entities.Tables{}
}

// GetReport returns the quality report of the active tables
func (dc *DataContainer) GetReport() *interfaces.DataQualityReport {
	if v := dc.report.Load(); v != nil {
		if report, ok := v.(*interfaces.DataQualityReport); ok && report != nil {
			return report
		}
	}

	logging.Warn("Data quality report is empty or invalid")
	return &interfaces.DataQualityReport{}
}

// GetLastUpdated returns the timestamp of the last table swap
func (dc *DataContainer) GetLastUpdated() time.Time {
	if v := dc.lastUpdated.Load(); v != nil {
		if lastUpdated, ok := v.(time.Time); ok {
			return lastUpdated
		}
	}

	logging.Warn("Could not get the last updated value")
	return time.Time{}
}

// IsUpdating returns true if a reload is currently in progress
func (dc *DataContainer) IsUpdating() bool {
	return dc.updating.Load()
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	if v := dc.serverStartTime.Load(); v != nil {
		if startTime, ok := v.(time.Time); ok {
			return startTime
		}
	}

	logging.Warn("Could not get the server start time value")
	return time.Time{}
}

// UpdateTables atomically replaces the active tables and their report
func (dc *DataContainer) UpdateTables(tables entities.Tables, report *interfaces.DataQualityReport) {
	if report == nil {
		report = &interfaces.DataQualityReport{}
	}
	dc.tables.Store(tables)
	dc.report.Store(report)
	dc.lastUpdated.Store(time.Now())
}

// BeginUpdate marks the start of a reload.
// Returns true if the reload can proceed, false if another one is in progress
func (dc *DataContainer) BeginUpdate() bool {
	return dc.updating.CompareAndSwap(false, true)
}

// EndUpdate marks the end of a reload
func (dc *DataContainer) EndUpdate() {
	dc.updating.Store(false)
}
