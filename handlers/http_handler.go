// Package handlers provides HTTP request handlers for the medical text analyzer.
// This file implements the HTTPHandler interface with dependency injection.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/giygas/medtext-analyzer/annotator"
	"github.com/giygas/medtext-analyzer/interfaces"
	"github.com/giygas/medtext-analyzer/logging"
	"github.com/giygas/medtext-analyzer/metrics"
	"github.com/giygas/medtext-analyzer/referenceparser/entities"
	"github.com/giygas/medtext-analyzer/synthetic"
	"github.com/giygas/medtext-analyzer/upload"
	"github.com/google/uuid"
)

// Compile-time check to ensure HTTPHandlerImpl implements HTTPHandler interface
var _ interfaces.HTTPHandler = (*HTTPHandlerImpl)(nil)

// MaxBatchSize caps the number of texts in one batch request
const MaxBatchSize = 100

// Options tunes the handler. Zero values fall back to defaults.
type Options struct {
	BatchWorkers  int
	MaxUploadSize int64
}

// HTTPHandlerImpl implements the interfaces.HTTPHandler interface
type HTTPHandlerImpl struct {
	dataStore     interfaces.DataStore
	validator     interfaces.DataValidator
	healthChecker interfaces.HealthChecker
	batchWorkers  int
	maxUploadSize int64
}

// NewHTTPHandler creates a new HTTP handler with injected dependencies
func NewHTTPHandler(dataStore interfaces.DataStore, validator interfaces.DataValidator, healthChecker interfaces.HealthChecker, opts Options) interfaces.HTTPHandler {
	if opts.BatchWorkers < 1 {
		opts.BatchWorkers = 4
	}
	if opts.MaxUploadSize <= 0 {
		opts.MaxUploadSize = upload.DefaultMaxFileSize
	}
	return &HTTPHandlerImpl{
		dataStore:     dataStore,
		validator:     validator,
		healthChecker: healthChecker,
		batchWorkers:  opts.BatchWorkers,
		maxUploadSize: opts.MaxUploadSize,
	}
}

// AnalyzeRequest is the body of the analyze and export endpoints
type AnalyzeRequest struct {
	Text string `json:"text"`
}

// BatchRequest is the body of the batch endpoint
type BatchRequest struct {
	Texts []string `json:"texts"`
}

// AnalyzeResponse carries one analysis
type AnalyzeResponse struct {
	AnalysisID string                   `json:"analysis_id"`
	Filename   string                   `json:"filename,omitempty"`
	Result     annotator.AnalysisResult `json:"result"`
}

// BatchResponse carries the results of a batch, in request order
type BatchResponse struct {
	AnalysisID string                     `json:"analysis_id"`
	Count      int                        `json:"count"`
	Results    []annotator.AnalysisResult `json:"results"`
}

// HealthResponse defines the structure for consistent JSON ordering
type HealthResponse struct {
	Status string         `json:"status"`
	Uptime string         `json:"uptime,omitempty"`
	Data   map[string]any `json:"data"`
	System map[string]any `json:"system"`
}

// RespondWithJSON writes a JSON response
func (h *HTTPHandlerImpl) RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logging.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(data)
}

// RespondWithError writes a JSON error response
func (h *HTTPHandlerImpl) RespondWithError(w http.ResponseWriter, code int, kind, message string) {
	h.RespondWithJSON(w, code, map[string]any{
		"error":   http.StatusText(code),
		"message": message,
		"code":    code,
		"kind":    kind,
	})
}

// fail classifies err, counts the rejection and writes the error response
func (h *HTTPHandlerImpl) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, kind := classify(err)
	metrics.RecordRejected(kind)

	log := logging.WithRequestID(r.Context())
	if code >= http.StatusInternalServerError {
		log.Error("Request failed", "path", r.URL.Path, "error", err)
		h.RespondWithError(w, code, kind, "internal error")
		return
	}
	log.Debug("Request rejected", "path", r.URL.Path, "kind", kind, "error", err)
	h.RespondWithError(w, code, kind, err.Error())
}

// tables returns the active tables, answering 503 when none are loaded yet
func (h *HTTPHandlerImpl) tables(w http.ResponseWriter) (entities.Tables, bool) {
	tables := h.dataStore.GetTables()
	if len(tables.Drugs) == 0 {
		metrics.RecordRejected(KindUnavailable)
		h.RespondWithError(w, http.StatusServiceUnavailable, KindUnavailable, "reference tables are not loaded")
		return tables, false
	}
	return tables, true
}

// decodeJSON reads a JSON body into v. Size limit errors keep their type so
// classify can tell them apart.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return err
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	return nil
}

// readText decodes an AnalyzeRequest and validates its text
func (h *HTTPHandlerImpl) readText(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		h.failJSON(w, r, err)
		return "", false
	}
	if err := h.validator.ValidateText(req.Text); err != nil {
		h.fail(w, r, err)
		return "", false
	}
	return req.Text, true
}

// failJSON answers a body that could not be decoded
func (h *HTTPHandlerImpl) failJSON(w http.ResponseWriter, r *http.Request, err error) {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		h.fail(w, r, err)
		return
	}
	metrics.RecordRejected(KindInvalidJSON)
	h.RespondWithError(w, http.StatusBadRequest, KindInvalidJSON, err.Error())
}

func (h *HTTPHandlerImpl) analyze(endpoint, text string, tables entities.Tables) annotator.AnalysisResult {
	start := time.Now()
	result := annotator.Analyze(text, tables)
	metrics.RecordAnalysis(endpoint, time.Since(start).Seconds(),
		len(result.Drugs), len(result.Interactions), len(result.SideEffects))
	return result
}

// Analyze runs the pipeline over one text
func (h *HTTPHandlerImpl) Analyze(w http.ResponseWriter, r *http.Request) {
	text, ok := h.readText(w, r)
	if !ok {
		return
	}
	tables, ok := h.tables(w)
	if !ok {
		return
	}

	h.RespondWithJSON(w, http.StatusOK, AnalyzeResponse{
		AnalysisID: uuid.NewString(),
		Result:     h.analyze("analyze", text, tables),
	})
}

// AnalyzeBatch runs the pipeline over several independent texts.
// Blank entries give empty results rather than failing the batch.
func (h *HTTPHandlerImpl) AnalyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := decodeJSON(r, &req); err != nil {
		h.failJSON(w, r, err)
		return
	}

	if len(req.Texts) == 0 {
		metrics.RecordRejected(KindEmptyInput)
		h.RespondWithError(w, http.StatusBadRequest, KindEmptyInput, "texts must not be empty")
		return
	}
	if len(req.Texts) > MaxBatchSize {
		metrics.RecordRejected(KindTooManyTexts)
		h.RespondWithError(w, http.StatusBadRequest, KindTooManyTexts,
			fmt.Sprintf("at most %d texts per batch, got %d", MaxBatchSize, len(req.Texts)))
		return
	}

	for i, text := range req.Texts {
		err := h.validator.ValidateText(text)
		if err == nil || errors.Is(err, annotator.ErrEmptyInput) {
			continue
		}
		code, kind := classify(err)
		metrics.RecordRejected(kind)
		h.RespondWithError(w, code, kind, fmt.Sprintf("texts[%d]: %v", i, err))
		return
	}

	tables, ok := h.tables(w)
	if !ok {
		return
	}

	start := time.Now()
	results := annotator.AnalyzeAll(req.Texts, tables, h.batchWorkers)
	elapsed := time.Since(start).Seconds()

	var drugs, interactions, sideEffects int
	for _, res := range results {
		drugs += len(res.Drugs)
		interactions += len(res.Interactions)
		sideEffects += len(res.SideEffects)
	}
	metrics.RecordAnalysis("batch", elapsed, drugs, interactions, sideEffects)

	h.RespondWithJSON(w, http.StatusOK, BatchResponse{
		AnalysisID: uuid.NewString(),
		Count:      len(results),
		Results:    results,
	})
}

// ExportAnalysis analyzes one text and answers with the plain-text report
func (h *HTTPHandlerImpl) ExportAnalysis(w http.ResponseWriter, r *http.Request) {
	text, ok := h.readText(w, r)
	if !ok {
		return
	}
	tables, ok := h.tables(w)
	if !ok {
		return
	}

	id := uuid.NewString()
	report := annotator.Export(h.analyze("export", text, tables))

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="analysis-%s.txt"`, id))
	w.Header().Set("X-Analysis-ID", id)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(report))
}

// UploadDocument reads the multipart "file" field as text and analyzes it
func (h *HTTPHandlerImpl) UploadDocument(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			h.fail(w, r, err)
			return
		}
		h.fail(w, r, fmt.Errorf("%w: missing multipart field \"file\": %v", upload.ErrFileRead, err))
		return
	}
	defer file.Close()

	text, err := upload.ReadText(header.Filename, file, h.maxUploadSize)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if err := h.validator.ValidateText(text); err != nil {
		h.fail(w, r, err)
		return
	}

	tables, ok := h.tables(w)
	if !ok {
		return
	}

	h.RespondWithJSON(w, http.StatusOK, AnalyzeResponse{
		AnalysisID: uuid.NewString(),
		Filename:   header.Filename,
		Result:     h.analyze("upload", text, tables),
	})
}

// ServeDrugs returns the active drug table, optionally filtered by ?category=
func (h *HTTPHandlerImpl) ServeDrugs(w http.ResponseWriter, r *http.Request) {
	drugs := h.dataStore.GetTables().Drugs

	if category := r.URL.Query().Get("category"); category != "" {
		filtered := []entities.DrugEntry{}
		for _, d := range drugs {
			if strings.EqualFold(d.Category, category) {
				filtered = append(filtered, d)
			}
		}
		drugs = filtered
	}

	if drugs == nil {
		drugs = []entities.DrugEntry{}
	}
	h.RespondWithJSON(w, http.StatusOK, drugs)
}

// ServeInteractions returns the active interaction rules, optionally filtered by ?severity=
func (h *HTTPHandlerImpl) ServeInteractions(w http.ResponseWriter, r *http.Request) {
	rules := h.dataStore.GetTables().Interactions

	if s := r.URL.Query().Get("severity"); s != "" {
		severity, ok := entities.ParseSeverity(s)
		if !ok {
			h.RespondWithError(w, http.StatusBadRequest, KindInvalidParameter, "severity must be low, medium or high")
			return
		}
		filtered := []entities.InteractionRule{}
		for _, rule := range rules {
			if rule.Severity == severity {
				filtered = append(filtered, rule)
			}
		}
		rules = filtered
	}

	if rules == nil {
		rules = []entities.InteractionRule{}
	}
	h.RespondWithJSON(w, http.StatusOK, rules)
}

// ServeSideEffects returns the active side-effect rules
func (h *HTTPHandlerImpl) ServeSideEffects(w http.ResponseWriter, r *http.Request) {
	rules := h.dataStore.GetTables().SideEffects
	if rules == nil {
		rules = []entities.SideEffectRule{}
	}
	h.RespondWithJSON(w, http.StatusOK, rules)
}

// ServeDemo returns a randomised, clearly labelled synthetic result.
// ?seed= makes the demo reproducible.
func (h *HTTPHandlerImpl) ServeDemo(w http.ResponseWriter, r *http.Request) {
	seed := uint64(time.Now().UnixNano())
	if s := r.URL.Query().Get("seed"); s != "" {
		parsed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			logging.Warn("Unusual user input", "seed", s)
			h.RespondWithError(w, http.StatusBadRequest, KindInvalidParameter, "seed must be a non-negative integer")
			return
		}
		seed = parsed
	}

	tables, ok := h.tables(w)
	if !ok {
		return
	}

	h.RespondWithJSON(w, http.StatusOK, synthetic.Generate(tables, seed))
}

// HealthCheck returns server health information
func (h *HTTPHandlerImpl) HealthCheck(w http.ResponseWriter, r *http.Request) {
	status, details, httpStatus := h.healthChecker.HealthCheck()

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := HealthResponse{
		Status: status,
		Data:   details,
		System: map[string]any{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": int(m.Alloc / 1024 / 1024),
				"sys_mb":   int(m.Sys / 1024 / 1024),
				"num_gc":   m.NumGC,
			},
		},
	}

	if start := h.dataStore.GetServerStartTime(); !start.IsZero() {
		response.Uptime = formatUptimeHuman(time.Since(start))
	}

	h.RespondWithJSON(w, httpStatus, response)
}

// formatUptimeHuman formats duration into a human-readable string
func formatUptimeHuman(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes > 0 || hours > 0 || days > 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", seconds))

	return strings.Join(parts, " ")
}
