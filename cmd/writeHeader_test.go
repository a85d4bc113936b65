package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteHeader_WarnsOnlyWhenVerificationDisabled(t *testing.T) {
	cfg := &config{
		TenableIO: ioConfig{SSLVerify: true, ScanIDs: []string{"1", "2"}},
		TenableSC: scConfig{Host: "sc.local", SSLVerify: false, RepositoryID: 3},
	}
	var buf bytes.Buffer
	writeHeader(&buf, cfg, cutoffFor(fixedNow, 1))

	out := buf.String()
	require.NotContains(t, out, "disabled for tenable.io")
	require.Contains(t, out, "WARNING: SSL certificate verification is disabled for tenable.sc at sc.local")
	require.Contains(t, out, "Copying 2 scan(s) completed since 2026-10-14T06:00:00Z from tenable.io to tenable.sc repository 3")
}

func TestWriteHeader_BothInsecure(t *testing.T) {
	var buf bytes.Buffer
	writeHeader(&buf, &config{}, fixedNow)
	require.Contains(t, buf.String(), "disabled for tenable.io")
	require.Contains(t, buf.String(), "disabled for tenable.sc")
}
