package cmd

import (
	"bufio"
	"bytes"
	"io"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Outcomes recorded per scan ID.
const (
	outcomeSkipped     = "skipped"
	outcomeUploaded    = "uploaded"
	outcomeSizeSkipped = "size-skipped"
	outcomeFailed      = "failed"
)

// yamlReport is the optional run summary written to smuggler.report_file.
type yamlReport struct {
	RunID     string           `yaml:"run_id"`
	Generated string           `yaml:"generated"`
	Cutoff    string           `yaml:"cutoff,omitempty"`
	Scans     []yamlScanResult `yaml:"scans"`
}

// yamlScanResult records what happened to one scan ID.
type yamlScanResult struct {
	ScanID       string `yaml:"scan_id"`
	Outcome      string `yaml:"outcome"`
	Status       string `yaml:"status,omitempty"`
	HistoryID    int64  `yaml:"history_id,omitempty"`
	CompletedAt  string `yaml:"completed_at,omitempty"`
	ArchiveBytes int64  `yaml:"archive_bytes,omitempty"`
	Removed      bool   `yaml:"removed"`
	Error        string `yaml:"error,omitempty"`
}

// newYAMLReport seeds a report with a fresh run ID.
func newYAMLReport(cutoff time.Time) *yamlReport {
	r := &yamlReport{
		RunID:     uuid.NewString(),
		Generated: nowFunc().UTC().Format(time.RFC3339),
		Scans:     []yamlScanResult{},
	}
	if !cutoff.IsZero() {
		r.Cutoff = cutoff.UTC().Format(time.RFC3339)
	}
	return r
}

func (r *yamlReport) addResult(res yamlScanResult) {
	r.Scans = append(r.Scans, res)
}

// count returns how many scans ended with outcome.
func (r *yamlReport) count(outcome string) int {
	n := 0
	for _, s := range r.Scans {
		if s.Outcome == outcome {
			n++
		}
	}
	return n
}

// writeYAMLReport serializes the report with two-space indentation.
func writeYAMLReport(w io.Writer, r *yamlReport) error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		_ = enc.Close()
		return err
	}
	_ = enc.Close()
	bw := bufio.NewWriter(w)
	if _, err := bw.Write(buf.Bytes()); err != nil {
		return err
	}
	return bw.Flush()
}
