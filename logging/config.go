package logging

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultMaxFileSize caps a single log file when no limit is configured
const DefaultMaxFileSize = 100 * 1024 * 1024

// RotatingLogger writes to one file per ISO week. A week whose file reaches
// maxFileSize continues in numbered files: app-2025-W41_01.log, _02 and so on.
// Files older than the retention period are removed once a day.
type RotatingLogger struct {
	logDir      string
	retention   time.Duration
	maxFileSize int64

	mu          sync.Mutex
	file        *os.File
	currentWeek string
	currentSize int64
	closed      bool

	stop        chan struct{}
	cleanupDone chan struct{}
	closeOnce   sync.Once
}

// NewRotatingLogger creates logDir if needed and opens the file for the current week
func NewRotatingLogger(logDir string, retentionWeeks int, maxFileSize int64) (*RotatingLogger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	rl := &RotatingLogger{
		logDir:      logDir,
		retention:   time.Duration(retentionWeeks) * 7 * 24 * time.Hour,
		maxFileSize: maxFileSize,
		stop:        make(chan struct{}),
		cleanupDone: make(chan struct{}),
	}

	rl.mu.Lock()
	err := rl.rotate(getWeekKey(time.Now()), false)
	rl.mu.Unlock()
	if err != nil {
		return nil, err
	}

	go rl.cleanupLoop()

	return rl, nil
}

// getWeekKey returns the week key in YYYY-Www format (ISO week)
func getWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// rotate closes the current file and opens the one to use for week.
// After an overflow the file following the current one is used.
// Caller must hold mu.
func (rl *RotatingLogger) rotate(week string, overflow bool) error {
	name := rl.pickFile(week)
	if overflow && rl.file != nil {
		name = nextNumbered(week, filepath.Base(rl.file.Name()))
	}

	if rl.file != nil {
		if err := rl.file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file during rotation: %v\n", err)
		}
		rl.file = nil
	}

	path := filepath.Join(rl.logDir, name)
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	var size int64
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}

	rl.file = file
	rl.currentWeek = week
	rl.currentSize = size
	return nil
}

// pickFile returns the first file of week that still has room
func (rl *RotatingLogger) pickFile(week string) string {
	base := fmt.Sprintf("app-%s.log", week)
	if !rl.full(base) {
		return base
	}

	for seq := 1; ; seq++ {
		name := fmt.Sprintf("app-%s_%02d.log", week, seq)
		if !rl.full(name) {
			return name
		}
	}
}

func (rl *RotatingLogger) full(name string) bool {
	if rl.maxFileSize <= 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(rl.logDir, name))
	return err == nil && info.Size() >= rl.maxFileSize
}

// Write writes p to the current file, rotating first on a new week or when p
// would push the file past its size limit
func (rl *RotatingLogger) Write(p []byte) (int, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if rl.closed {
		return 0, os.ErrClosed
	}

	week := getWeekKey(time.Now())
	sameWeek := rl.file != nil && week == rl.currentWeek
	overflow := sameWeek && rl.maxFileSize > 0 && rl.currentSize > 0 &&
		rl.currentSize+int64(len(p)) > rl.maxFileSize

	if !sameWeek || overflow {
		if err := rl.rotate(week, overflow); err != nil {
			return 0, err
		}
	}

	n, err := rl.file.Write(p)
	rl.currentSize += int64(n)
	return n, err
}

// nextNumbered returns the numbered file following current within week
func nextNumbered(week, current string) string {
	seq := 0
	prefix := fmt.Sprintf("app-%s_", week)
	if rest, ok := strings.CutPrefix(current, prefix); ok {
		if n, err := strconv.Atoi(strings.TrimSuffix(rest, ".log")); err == nil {
			seq = n
		}
	}
	return fmt.Sprintf("app-%s_%02d.log", week, seq+1)
}

func (rl *RotatingLogger) cleanupLoop() {
	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()
	defer close(rl.cleanupDone)

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			if _, err := rl.cleanupOldLogs(); err != nil {
				fmt.Fprintf(os.Stderr, "failed to cleanup old logs: %v\n", err)
			}
		}
	}
}

// cleanupOldLogs removes log files last modified before the retention period
func (rl *RotatingLogger) cleanupOldLogs() (int, error) {
	entries, err := os.ReadDir(rl.logDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read log directory: %w", err)
	}

	cutoff := time.Now().Add(-rl.retention)
	deleted := 0

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, "app-") || !strings.HasSuffix(name, ".log") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(rl.logDir, name)); err == nil {
				deleted++
			}
		}
	}

	return deleted, nil
}

// Close stops background cleanup and closes the current file
func (rl *RotatingLogger) Close() error {
	var err error
	rl.closeOnce.Do(func() {
		close(rl.stop)
		<-rl.cleanupDone

		rl.mu.Lock()
		defer rl.mu.Unlock()
		rl.closed = true
		if rl.file != nil {
			err = rl.file.Close()
			rl.file = nil
		}
	})
	return err
}

// multiHandler implements slog.Handler to write to multiple handlers
type multiHandler struct {
	handlers []slog.Handler
}

func (m *multiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.handlers {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m *multiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.handlers {
		if h.Enabled(ctx, r.Level) {
			if err := h.Handle(ctx, r.Clone()); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *multiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithAttrs(attrs)
	}
	return &multiHandler{handlers: handlers}
}

func (m *multiHandler) WithGroup(name string) slog.Handler {
	handlers := make([]slog.Handler, len(m.handlers))
	for i, h := range m.handlers {
		handlers[i] = h.WithGroup(name)
	}
	return &multiHandler{handlers: handlers}
}
