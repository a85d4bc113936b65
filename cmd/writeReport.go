package cmd

import (
	"fmt"
	"os"
	"path/filepath"
)

// writeReport writes rep to path, creating parent directories as needed.
func writeReport(path string, rep *yamlReport) error {
	if err := appFs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}
	f, err := appFs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	if err := writeYAMLReport(f, rep); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed writing report: %w", err)
	}
	return f.Close()
}
