// Package scheduler loads the reference tables at start-up and reloads them at
// fixed times of day when a reference directory is configured.
package scheduler

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/giygas/medtext-analyzer/interfaces"
	"github.com/giygas/medtext-analyzer/logging"
	"github.com/giygas/medtext-analyzer/metrics"
	"github.com/go-co-op/gocron"
)

// Compile-time check to ensure Scheduler implements Scheduler interface
var _ interfaces.Scheduler = (*Scheduler)(nil)

// staleAfter is how old the tables may get before the monitor warns, with reloads enabled
const staleAfter = 25 * time.Hour

// Scheduler handles table reloads and their monitoring using dependency injection
type Scheduler struct {
	dataStore   interfaces.DataStore
	parser      interfaces.Parser
	validator   interfaces.DataValidator
	reloadTimes []string
	scheduler   *gocron.Scheduler
	debounce    time.Duration
	stop        chan struct{}
	stopOnce    sync.Once
}

// NewScheduler creates a scheduler. An empty reloadTimes list disables reloads;
// Start then only performs the initial load.
func NewScheduler(dataStore interfaces.DataStore, parser interfaces.Parser, validator interfaces.DataValidator, reloadTimes []string) *Scheduler {
	return &Scheduler{
		dataStore:   dataStore,
		parser:      parser,
		validator:   validator,
		reloadTimes: reloadTimes,
		scheduler:   gocron.NewScheduler(time.Local),
		debounce:    watchDebounce,
		stop:        make(chan struct{}),
	}
}

// Start performs the initial load and schedules the reloads
func (s *Scheduler) Start() error {
	if err := s.updateData(); err != nil {
		logging.Error("Failed to perform initial reference load", "error", err)
		return fmt.Errorf("initial reference load failed: %w", err)
	}

	if len(s.reloadTimes) == 0 {
		logging.Info("Reference reloads disabled")
		return nil
	}

	_, err := s.scheduler.Every(1).Days().At(strings.Join(s.reloadTimes, ";")).Do(func() {
		if err := s.updateData(); err != nil {
			logging.Error("Failed to reload reference tables", "error", err)
		}
	})
	if err != nil {
		logging.Error("Failed to schedule reloads", "error", err)
		return fmt.Errorf("failed to schedule reloads: %w", err)
	}

	s.scheduler.StartAsync()
	s.startHealthMonitoring()

	logging.Info("Reference reloads scheduled", "times", s.reloadTimes)
	return nil
}

// Stop stops the scheduler, the monitor and the directory watch
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.scheduler.Stop()
		close(s.stop)
	})
}

// Reload runs one reload immediately
func (s *Scheduler) Reload() error {
	return s.updateData()
}

// updateData parses, validates and swaps in a new table set.
// On any failure the active tables stay in place.
func (s *Scheduler) updateData() error {
	if !s.dataStore.BeginUpdate() {
		logging.Info("Reload already in progress, skipping...")
		return nil
	}
	defer s.dataStore.EndUpdate()

	start := time.Now()

	tables, err := s.parser.ParseTables()
	if err != nil {
		metrics.ReferenceReloadsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to parse reference tables: %w", err)
	}

	if err := s.validator.ValidateTables(tables); err != nil {
		metrics.ReferenceReloadsTotal.WithLabelValues("invalid").Inc()
		return fmt.Errorf("reference tables rejected: %w", err)
	}

	report := s.validator.ReportDataQuality(tables)
	logReport(report)

	s.dataStore.UpdateTables(tables, report)

	metrics.ReferenceReloadsTotal.WithLabelValues("success").Inc()
	metrics.ReferenceTableSize.WithLabelValues("drugs").Set(float64(len(tables.Drugs)))
	metrics.ReferenceTableSize.WithLabelValues("interactions").Set(float64(len(tables.Interactions)))
	metrics.ReferenceTableSize.WithLabelValues("side_effects").Set(float64(len(tables.SideEffects)))

	logging.Info("Reference tables loaded",
		"duration", time.Since(start).String(),
		"drugs", len(tables.Drugs),
		"interactions", len(tables.Interactions),
		"side_effects", len(tables.SideEffects),
	)

	return nil
}

func logReport(report *interfaces.DataQualityReport) {
	if len(report.DuplicateDrugNames) > 0 {
		logging.Warn("Duplicate drug names detected",
			"total", len(report.DuplicateDrugNames),
			"names", report.DuplicateDrugNames,
		)
	}

	if len(report.ShortAliases) > 0 {
		logging.Warn("Short aliases may match unrelated words",
			"total", len(report.ShortAliases),
			"aliases", report.ShortAliases,
		)
	}

	if report.RulesWithFewParticipants > 0 {
		logging.Warn("Interaction rules with fewer than two participants never fire",
			"count", report.RulesWithFewParticipants,
		)
	}

	if len(report.UnknownInteractionNames) > 0 {
		logging.Warn("Interaction participants match no drug",
			"total", len(report.UnknownInteractionNames),
			"names", report.UnknownInteractionNames,
		)
	}

	if report.SideEffectsWithoutDrugs > 0 {
		logging.Debug("Side effects without associated drugs", "count", report.SideEffectsWithoutDrugs)
	}
}

// startHealthMonitoring warns when scheduled reloads stop landing
func (s *Scheduler) startHealthMonitoring() {
	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		defer ticker.Stop()

		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				if time.Since(s.dataStore.GetLastUpdated()) > staleAfter {
					logging.Warn("Reference tables haven't been reloaded in over 25 hours")
				}
			}
		}
	}()
}

// CalculateNextUpdate returns the first reload time after now.
// times are "HH:MM" in now's location; the zero time is returned when times is empty.
func CalculateNextUpdate(times []string, now time.Time) time.Time {
	var next time.Time

	for _, hhmm := range times {
		t, err := time.Parse("15:04", hhmm)
		if err != nil {
			continue
		}
		candidate := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
		if !candidate.After(now) {
			candidate = candidate.AddDate(0, 0, 1)
		}
		if next.IsZero() || candidate.Before(next) {
			next = candidate
		}
	}

	return next
}
