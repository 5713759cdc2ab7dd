package model

import (
	"time"

	"github.com/google/uuid"
)

// RunStatus is the outcome of one script run.
type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunFailed    RunStatus = "failed"
)

// RunRecord is one entry of the run journal.
type RunRecord struct {
	ID         string    `json:"id"`
	Script     string    `json:"script"`
	Label      string    `json:"label,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	Duration   float64   `json:"duration_s"`
	Status     RunStatus `json:"status"`
	ScriptPath string    `json:"script_path,omitempty"`
	Message    string    `json:"message"`
}

// NewRunRecord creates a record for a run that started at startedAt.
// An empty id gets a fresh one.
func NewRunRecord(id, script string, startedAt time.Time) RunRecord {
	if id == "" {
		id = uuid.New().String()[:8]
	}
	return RunRecord{
		ID:        id,
		Script:    script,
		StartedAt: startedAt,
	}
}

// Finish stamps the duration and outcome on the record.
func (r *RunRecord) Finish(end time.Time, msg string, err error) {
	r.Duration = end.Sub(r.StartedAt).Seconds()
	if err != nil {
		r.Status = RunFailed
		r.Message = err.Error()
		return
	}
	r.Status = RunSucceeded
	r.Message = msg
}
