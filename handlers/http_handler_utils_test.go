package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/giygas/medtext-analyzer/annotator"
	"github.com/giygas/medtext-analyzer/interfaces"
	"github.com/giygas/medtext-analyzer/referenceparser"
	"github.com/giygas/medtext-analyzer/referenceparser/entities"
	"github.com/giygas/medtext-analyzer/validation"
)

// ============================================================================
// MOCK BUILDERS
// ============================================================================

type MockDataStoreBuilder struct {
	store *MockDataStore
}

func NewMockDataStoreBuilder() *MockDataStoreBuilder {
	return &MockDataStoreBuilder{
		store: &MockDataStore{
			tables:      referenceparser.DefaultTables(),
			lastUpdated: time.Now(),
			startTime:   time.Now().Add(-90 * time.Minute),
		},
	}
}

func (b *MockDataStoreBuilder) WithTables(tables entities.Tables) *MockDataStoreBuilder {
	b.store.tables = tables
	return b
}

func (b *MockDataStoreBuilder) WithStartTime(startTime time.Time) *MockDataStoreBuilder {
	b.store.startTime = startTime
	return b
}

func (b *MockDataStoreBuilder) Build() *MockDataStore {
	return b.store
}

type MockDataValidatorBuilder struct {
	validator *MockDataValidator
}

func NewMockDataValidatorBuilder() *MockDataValidatorBuilder {
	return &MockDataValidatorBuilder{validator: &MockDataValidator{}}
}

// WithTextError makes ValidateText fail with err for every text
func (b *MockDataValidatorBuilder) WithTextError(err error) *MockDataValidatorBuilder {
	b.validator.textError = err
	return b
}

func (b *MockDataValidatorBuilder) Build() *MockDataValidator {
	return b.validator
}

// ============================================================================
// MOCKS
// ============================================================================

type MockDataStore struct {
	tables      entities.Tables
	lastUpdated time.Time
	startTime   time.Time
}

func (m *MockDataStore) GetTables() entities.Tables { return m.tables }
func (m *MockDataStore) GetReport() *interfaces.DataQualityReport {
	return &interfaces.DataQualityReport{}
}
func (m *MockDataStore) GetLastUpdated() time.Time     { return m.lastUpdated }
func (m *MockDataStore) IsUpdating() bool              { return false }
func (m *MockDataStore) GetServerStartTime() time.Time { return m.startTime }
func (m *MockDataStore) UpdateTables(tables entities.Tables, report *interfaces.DataQualityReport) {
	m.tables = tables
}
func (m *MockDataStore) BeginUpdate() bool { return true }
func (m *MockDataStore) EndUpdate()        {}

// MockDataValidator accepts any non-blank text unless textError is set
type MockDataValidator struct {
	textError error
}

func (m *MockDataValidator) ValidateTables(tables entities.Tables) error { return nil }
func (m *MockDataValidator) ReportDataQuality(tables entities.Tables) *interfaces.DataQualityReport {
	return &interfaces.DataQualityReport{}
}
func (m *MockDataValidator) ValidateText(text string) error {
	if m.textError != nil {
		return m.textError
	}
	return annotator.CheckText(text)
}

type MockHealthChecker struct {
	status     string
	details    map[string]any
	httpStatus int
}

func (m *MockHealthChecker) HealthCheck() (string, map[string]any, int) {
	return m.status, m.details, m.httpStatus
}
func (m *MockHealthChecker) CalculateNextUpdate() time.Time { return time.Time{} }

// ============================================================================
// HELPERS
// ============================================================================

func newTestHandler(store interfaces.DataStore, validator interfaces.DataValidator) *HTTPHandlerImpl {
	health := &MockHealthChecker{status: "healthy", details: map[string]any{"drugs": 20}, httpStatus: http.StatusOK}
	return NewHTTPHandler(store, validator, health, Options{BatchWorkers: 2, MaxUploadSize: 1024}).(*HTTPHandlerImpl)
}

// newRealHandler wires the real validator with a small text limit
func newRealHandler() *HTTPHandlerImpl {
	return newTestHandler(NewMockDataStoreBuilder().Build(), validation.NewDataValidator(64))
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal body: %v", err)
	}
	req := httptest.NewRequest(method, target, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func multipartRequest(t *testing.T, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	part.Write(content)
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/v1/upload", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode error body %q: %v", rr.Body.String(), err)
	}
	return body
}

func assertError(t *testing.T, rr *httptest.ResponseRecorder, status int, kind string) {
	t.Helper()
	if rr.Code != status {
		t.Fatalf("Expected status %d, got %d: %s", status, rr.Code, rr.Body.String())
	}
	body := decodeError(t, rr)
	if body.Kind != kind {
		t.Errorf("Expected kind %q, got %q", kind, body.Kind)
	}
	if body.Code != status {
		t.Errorf("Expected code %d in body, got %d", status, body.Code)
	}
	if body.Error != http.StatusText(status) {
		t.Errorf("Expected error %q, got %q", http.StatusText(status), body.Error)
	}
}
