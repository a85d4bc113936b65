package tio

import (
	"encoding/json"
	"fmt"
	"time"
)

// StatusCompleted is the history status of a run that finished normally.
const StatusCompleted = "completed"

// ScanRun is one entry of a scan's run history.
type ScanRun struct {
	ID        int64  `json:"id"`
	UUID      string `json:"scan_uuid"`
	Status    string `json:"status"`
	TimeStart int64  `json:"time_start"`
	TimeEnd   int64  `json:"time_end"`
}

// Ended returns the completion time of the run.
func (r ScanRun) Ended() time.Time { return time.Unix(r.TimeEnd, 0) }

// Completed reports whether the run finished normally.
func (r ScanRun) Completed() bool { return r.Status == StatusCompleted }

type historyResponse struct {
	History []ScanRun `json:"history"`
}

type exportRequest struct {
	Format string `json:"format"`
}

type exportResponse struct {
	File json.Number `json:"file"`
}

type exportStatusResponse struct {
	Status string `json:"status"`
}

// APIError is returned for any non-2xx response.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("tenable.io %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
