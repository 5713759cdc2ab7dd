package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/piwi3910/GraphiDesk/internal/model"
)

// MaxJournalEntries bounds the run journal; older runs are dropped first.
const MaxJournalEntries = 200

// DefaultJournalPath returns ~/.graphidesk/runs.json.
func DefaultJournalPath() string {
	return filepath.Join(DefaultConfigDir(), "runs.json")
}

// Journal is the persisted history of script runs, oldest first. It is safe
// for concurrent use and satisfies fabrik.Recorder.
type Journal struct {
	path  string
	limit int

	mu   sync.Mutex
	runs []model.RunRecord
}

// OpenJournal loads the journal stored at path. A missing file yields an
// empty journal; the file is created on the first Record.
func OpenJournal(path string) (*Journal, error) {
	j := &Journal{path: path, limit: MaxJournalEntries}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return j, nil
		}
		return nil, fmt.Errorf("failed to read run journal: %w", err)
	}
	if err := json.Unmarshal(data, &j.runs); err != nil {
		return nil, fmt.Errorf("failed to parse run journal: %w", err)
	}
	j.runs = trimRuns(j.runs, j.limit)
	return j, nil
}

// Path returns the file backing the journal.
func (j *Journal) Path() string { return j.path }

// Record appends rec and saves the journal.
func (j *Journal) Record(rec model.RunRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs = trimRuns(append(j.runs, rec), j.limit)
	return j.saveLocked()
}

// Runs returns a copy of the journal, oldest first.
func (j *Journal) Runs() []model.RunRecord {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]model.RunRecord(nil), j.runs...)
}

// Last returns up to n of the most recent runs, newest first.
func (j *Journal) Last(n int) []model.RunRecord {
	j.mu.Lock()
	defer j.mu.Unlock()
	if n <= 0 || n > len(j.runs) {
		n = len(j.runs)
	}
	out := make([]model.RunRecord, 0, n)
	for i := len(j.runs) - 1; i >= len(j.runs)-n; i-- {
		out = append(out, j.runs[i])
	}
	return out
}

// Clear empties the journal and saves it.
func (j *Journal) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runs = nil
	return j.saveLocked()
}

func (j *Journal) saveLocked() error {
	if err := os.MkdirAll(filepath.Dir(j.path), 0755); err != nil {
		return fmt.Errorf("failed to create journal directory: %w", err)
	}
	runs := j.runs
	if runs == nil {
		runs = []model.RunRecord{}
	}
	data, err := json.MarshalIndent(runs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal run journal: %w", err)
	}
	if err := os.WriteFile(j.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write run journal: %w", err)
	}
	return nil
}

func trimRuns(runs []model.RunRecord, limit int) []model.RunRecord {
	if len(runs) <= limit {
		return runs
	}
	return append([]model.RunRecord(nil), runs[len(runs)-limit:]...)
}
