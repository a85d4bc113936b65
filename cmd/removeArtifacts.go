package cmd

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// removeArtifacts deletes each existing path and re-checks that it is gone.
// Failures are reported on w and never returned; it reports whether every
// path is absent afterwards.
func removeArtifacts(fs afero.Fs, w io.Writer, logger zerolog.Logger, paths ...string) bool {
	clean := true
	for _, p := range paths {
		if ok, _ := afero.Exists(fs, p); !ok {
			continue
		}
		if err := fs.Remove(p); err != nil {
			logger.Warn().Err(err).Str("path", p).Msg("remove failed")
		}
		if ok, _ := afero.Exists(fs, p); ok {
			_, _ = fmt.Fprintf(w, "Unable to delete file %s from local disk\n", p)
			clean = false
			continue
		}
		_, _ = fmt.Fprintf(w, "Deleted file %s from local disk\n", p)
	}
	return clean
}
