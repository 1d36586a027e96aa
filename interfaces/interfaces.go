// Package interfaces defines core abstractions for the medical text analyzer
// to improve testability, maintainability, and separation of concerns.
package interfaces

import (
	"net/http"
	"time"

	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

// DataQualityReport summarizes problems found in a set of reference tables.
// None of them stops a load; ValidateTables decides what is fatal.
type DataQualityReport struct {
	DuplicateDrugNames  []string
	DrugsWithoutAliases int
	// Aliases under 4 characters, prone to substring false positives
	ShortAliases []string
	// Interaction rules with fewer than two participants can never fire
	RulesWithFewParticipants int
	// Participants matching no drug name in either direction
	UnknownInteractionNames []string
	SideEffectsWithoutDrugs int
	InvalidSeverities       int
	InvalidFrequencies      int
}

// DataStore defines the contract for reference-table storage.
// It provides thread-safe access to the active tables
// with atomic operations for zero-downtime reloads.
type DataStore interface {
	GetTables() entities.Tables
	GetReport() *DataQualityReport
	GetLastUpdated() time.Time
	IsUpdating() bool
	GetServerStartTime() time.Time

	UpdateTables(tables entities.Tables, report *DataQualityReport)
	BeginUpdate() bool
	EndUpdate()
}

// Parser loads reference tables from their source
type Parser interface {
	ParseTables() (entities.Tables, error)
}

// Scheduler defines the contract for job scheduling and health monitoring.
type Scheduler interface {
	Start() error
	Stop()
}

// HTTPHandler defines the contract for HTTP request handlers.
type HTTPHandler interface {
	Analyze(w http.ResponseWriter, r *http.Request)
	AnalyzeBatch(w http.ResponseWriter, r *http.Request)
	ExportAnalysis(w http.ResponseWriter, r *http.Request)
	UploadDocument(w http.ResponseWriter, r *http.Request)

	ServeDrugs(w http.ResponseWriter, r *http.Request)
	ServeInteractions(w http.ResponseWriter, r *http.Request)
	ServeSideEffects(w http.ResponseWriter, r *http.Request)

	ServeDemo(w http.ResponseWriter, r *http.Request)
	HealthCheck(w http.ResponseWriter, r *http.Request)
}

// HealthChecker defines the contract for health check functionality.
type HealthChecker interface {
	// HealthCheck returns current status, details and the HTTP code to answer with
	HealthCheck() (status string, details map[string]any, httpStatus int)

	// CalculateNextUpdate returns the next scheduled reload, zero when reloads are off
	CalculateNextUpdate() time.Time
}

// DataValidator defines the contract for data validation operations.
type DataValidator interface {
	// ValidateTables returns an error for tables the pipeline cannot use
	ValidateTables(tables entities.Tables) error

	// ReportDataQuality lists non fatal issues found in the tables
	ReportDataQuality(tables entities.Tables) *DataQualityReport

	// ValidateText checks text submitted for analysis
	ValidateText(text string) error
}
