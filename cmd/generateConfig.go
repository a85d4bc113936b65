package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/afero"
)

// generateConfig writes the template to path unless a file is already there.
func generateConfig(out io.Writer, path string) error {
	exists, err := afero.Exists(appFs, path)
	if err != nil {
		return err
	}
	if exists {
		return errConfigExists
	}

	if err := afero.WriteFile(appFs, path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("unable to write file %s: %w", path, err)
	}
	if ok, _ := afero.Exists(appFs, path); !ok {
		return fmt.Errorf("unable to write file: %s", path)
	}
	_, _ = fmt.Fprintf(out, "Wrote file: %s\n", path)
	_, _ = fmt.Fprintln(out, "Edit the new INI configuration file for your environment.")
	return nil
}
