package cmd

import (
	"errors"
	"fmt"
	"os"
)

// Execute runs the root command and maps errors onto exit codes.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errConfigMissing) || errors.Is(err, errConfigExists) {
			// Config mistakes print to stdout like the other status lines
			_, _ = fmt.Fprintln(os.Stdout, err.Error())
			exitFunc(1)
			return
		}
		_, _ = fmt.Fprintln(os.Stderr, "Error:", err)
		exitFunc(1)
		return
	}
}
