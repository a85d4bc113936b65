package cmd

import (
	"fmt"
	"io"
	"time"
)

// writeHeader prints the SSL verification warnings and a one-line summary of
// what the run is about to do.
func writeHeader(w io.Writer, cfg *config, cutoff time.Time) {
	if !cfg.TenableIO.SSLVerify {
		_, _ = fmt.Fprintln(w, "WARNING: SSL certificate verification is disabled for tenable.io (ssl_verify = False).")
	}
	if !cfg.TenableSC.SSLVerify {
		_, _ = fmt.Fprintf(w, "WARNING: SSL certificate verification is disabled for tenable.sc at %s (ssl_verify = False). "+
			"Connections to the console can be intercepted.\n", cfg.TenableSC.Host)
	}
	_, _ = fmt.Fprintf(w, "Copying %d scan(s) completed since %s from tenable.io to tenable.sc repository %d\n",
		len(cfg.TenableIO.ScanIDs), cutoff.UTC().Format(time.RFC3339), cfg.TenableSC.RepositoryID)
}
