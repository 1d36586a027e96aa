package interfaces

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/giygas/medtext-analyzer/referenceparser/entities"
)

// MockDataStore implements DataStore interface for testing
type MockDataStore struct {
	tables      entities.Tables
	report      *DataQualityReport
	lastUpdated time.Time
	startTime   time.Time
	updating    bool
}

func (m *MockDataStore) GetTables() entities.Tables {
	return m.tables
}

func (m *MockDataStore) GetReport() *DataQualityReport {
	return m.report
}

func (m *MockDataStore) GetLastUpdated() time.Time {
	return m.lastUpdated
}

func (m *MockDataStore) IsUpdating() bool {
	return m.updating
}

func (m *MockDataStore) GetServerStartTime() time.Time {
	return m.startTime
}

func (m *MockDataStore) UpdateTables(tables entities.Tables, report *DataQualityReport) {
	m.tables = tables
	m.report = report
	m.lastUpdated = time.Now()
}

func (m *MockDataStore) BeginUpdate() bool {
	if m.updating {
		return false
	}
	m.updating = true
	return true
}

func (m *MockDataStore) EndUpdate() {
	m.updating = false
}

// MockParser implements Parser interface for testing
type MockParser struct {
	shouldFail bool
}

func (m *MockParser) ParseTables() (entities.Tables, error) {
	if m.shouldFail {
		return entities.Tables{}, errors.New("mock parse error")
	}
	return entities.Tables{
		Drugs: []entities.DrugEntry{
			{Name: "Aspirin", Category: "NSAIDs"},
			{Name: "Warfarin", Category: "Anticoagulants"},
		},
		Interactions: []entities.InteractionRule{
			{Participants: []string{"Warfarin", "Aspirin"}, Description: "Increased risk of bleeding", Severity: entities.SeverityHigh},
		},
	}, nil
}

// MockScheduler implements Scheduler interface for testing
type MockScheduler struct {
	started bool
	stopped bool
}

func (m *MockScheduler) Start() error {
	m.started = true
	return nil
}

func (m *MockScheduler) Stop() {
	m.stopped = true
}

// MockHTTPHandler answers every endpoint with a fixed response
type MockHTTPHandler struct {
	responseCode int
	responseBody string
}

func (m *MockHTTPHandler) respond(w http.ResponseWriter) {
	w.WriteHeader(m.responseCode)
	w.Write([]byte(m.responseBody))
}

func (m *MockHTTPHandler) Analyze(w http.ResponseWriter, r *http.Request)           { m.respond(w) }
func (m *MockHTTPHandler) AnalyzeBatch(w http.ResponseWriter, r *http.Request)      { m.respond(w) }
func (m *MockHTTPHandler) ExportAnalysis(w http.ResponseWriter, r *http.Request)    { m.respond(w) }
func (m *MockHTTPHandler) UploadDocument(w http.ResponseWriter, r *http.Request)    { m.respond(w) }
func (m *MockHTTPHandler) ServeDrugs(w http.ResponseWriter, r *http.Request)        { m.respond(w) }
func (m *MockHTTPHandler) ServeInteractions(w http.ResponseWriter, r *http.Request) { m.respond(w) }
func (m *MockHTTPHandler) ServeSideEffects(w http.ResponseWriter, r *http.Request)  { m.respond(w) }
func (m *MockHTTPHandler) ServeDemo(w http.ResponseWriter, r *http.Request)         { m.respond(w) }
func (m *MockHTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request)       { m.respond(w) }

// MockHealthChecker implements HealthChecker interface for testing
type MockHealthChecker struct {
	status     string
	details    map[string]any
	httpStatus int
	nextUpdate time.Time
}

func (m *MockHealthChecker) HealthCheck() (string, map[string]any, int) {
	return m.status, m.details, m.httpStatus
}

func (m *MockHealthChecker) CalculateNextUpdate() time.Time {
	return m.nextUpdate
}

// MockDataValidator implements DataValidator interface for testing
type MockDataValidator struct {
	shouldFail bool
}

func (m *MockDataValidator) ValidateTables(tables entities.Tables) error {
	if m.shouldFail {
		return errors.New("mock validation error")
	}
	return nil
}

func (m *MockDataValidator) ReportDataQuality(tables entities.Tables) *DataQualityReport {
	return &DataQualityReport{DrugsWithoutAliases: len(tables.Drugs)}
}

func (m *MockDataValidator) ValidateText(text string) error {
	if m.shouldFail || strings.TrimSpace(text) == "" {
		return errors.New("mock text error")
	}
	return nil
}

// Test functions demonstrating the benefits of interfaces

func TestDataStoreInterface(t *testing.T) {
	var store DataStore = &MockDataStore{}

	if !store.BeginUpdate() {
		t.Fatal("First BeginUpdate should succeed")
	}
	if store.BeginUpdate() {
		t.Error("Second BeginUpdate should be refused while updating")
	}

	parsed, _ := (&MockParser{}).ParseTables()
	store.UpdateTables(parsed, &DataQualityReport{})
	store.EndUpdate()

	if len(store.GetTables().Drugs) != 2 {
		t.Errorf("Expected 2 drugs, got %d", len(store.GetTables().Drugs))
	}
	if store.IsUpdating() {
		t.Error("Store should not be updating after EndUpdate")
	}
	if store.GetLastUpdated().IsZero() {
		t.Error("UpdateTables should set the last update time")
	}
}

func TestParserInterface(t *testing.T) {
	var parser Parser = &MockParser{shouldFail: false}
	tables, err := parser.ParseTables()
	if err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if len(tables.Drugs) != 2 || len(tables.Interactions) != 1 {
		t.Errorf("Unexpected tables %+v", tables)
	}

	parser = &MockParser{shouldFail: true}
	if _, err = parser.ParseTables(); err == nil {
		t.Error("Expected error but got none")
	}
}

func TestSchedulerInterface(t *testing.T) {
	scheduler := &MockScheduler{}

	if err := scheduler.Start(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if !scheduler.started {
		t.Error("Scheduler should be started")
	}

	scheduler.Stop()
	if !scheduler.stopped {
		t.Error("Scheduler should be stopped")
	}
}

func TestHTTPHandlerInterface(t *testing.T) {
	var handler HTTPHandler = &MockHTTPHandler{
		responseCode: http.StatusOK,
		responseBody: "test response",
	}

	w := httptest.NewRecorder()
	handler.Analyze(w, httptest.NewRequest(http.MethodPost, "/v1/analyze", nil))

	if w.Code != http.StatusOK {
		t.Errorf("Expected status %d, got %d", http.StatusOK, w.Code)
	}
	if w.Body.String() != "test response" {
		t.Errorf("Expected body 'test response', got '%s'", w.Body.String())
	}
}

func TestHealthCheckerInterface(t *testing.T) {
	next := time.Date(2024, 3, 10, 18, 0, 0, 0, time.UTC)
	var checker HealthChecker = &MockHealthChecker{
		status:     "degraded",
		details:    map[string]any{"drugs": 20},
		httpStatus: http.StatusServiceUnavailable,
		nextUpdate: next,
	}

	status, details, code := checker.HealthCheck()
	if status != "degraded" || code != http.StatusServiceUnavailable {
		t.Errorf("Unexpected status %s / %d", status, code)
	}
	if details["drugs"] != 20 {
		t.Errorf("Expected 20 drugs, got %v", details["drugs"])
	}
	if !checker.CalculateNextUpdate().Equal(next) {
		t.Errorf("Unexpected next update %v", checker.CalculateNextUpdate())
	}
}

func TestDataValidatorInterface(t *testing.T) {
	var validator DataValidator = &MockDataValidator{shouldFail: false}

	if err := validator.ValidateText("aspirin"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
	if err := validator.ValidateText("  "); err == nil {
		t.Error("Expected blank text to be rejected")
	}

	validator = &MockDataValidator{shouldFail: true}
	if err := validator.ValidateTables(entities.Tables{}); err == nil {
		t.Error("Expected validation error but got none")
	}
}

// Example of how interfaces enable dependency injection
type Service struct {
	dataStore DataStore
	parser    Parser
	validator DataValidator
}

func NewService(dataStore DataStore, parser Parser, validator DataValidator) *Service {
	return &Service{
		dataStore: dataStore,
		parser:    parser,
		validator: validator,
	}
}

func (s *Service) Reload() error {
	tables, err := s.parser.ParseTables()
	if err != nil {
		return err
	}
	if err := s.validator.ValidateTables(tables); err != nil {
		return err
	}
	s.dataStore.UpdateTables(tables, s.validator.ReportDataQuality(tables))
	return nil
}

func TestServiceWithDependencyInjection(t *testing.T) {
	store := &MockDataStore{}

	if err := NewService(store, &MockParser{}, &MockDataValidator{}).Reload(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(store.GetTables().Drugs) != 2 {
		t.Errorf("Expected 2 drugs, got %d", len(store.GetTables().Drugs))
	}
	if store.GetReport().DrugsWithoutAliases != 2 {
		t.Errorf("Expected the report to be stored, got %+v", store.GetReport())
	}

	// A failing validator keeps the old tables
	before := store.GetTables()
	if err := NewService(store, &MockParser{}, &MockDataValidator{shouldFail: true}).Reload(); err == nil {
		t.Error("Expected validation error")
	}
	if len(store.GetTables().Drugs) != len(before.Drugs) {
		t.Error("Tables should be unchanged after a failed reload")
	}
}

// Compile-time checks to ensure our implementations implement the interfaces
func TestCompileTimeChecks(t *testing.T) {
	var _ DataStore = (*MockDataStore)(nil)
	var _ Parser = (*MockParser)(nil)
	var _ Scheduler = (*MockScheduler)(nil)
	var _ HTTPHandler = (*MockHTTPHandler)(nil)
	var _ HealthChecker = (*MockHealthChecker)(nil)
	var _ DataValidator = (*MockDataValidator)(nil)
}
