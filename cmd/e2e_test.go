package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"scan-smuggler/tools/tenablefake"
)

// TestEndToEnd_WithFakeTenable starts the fake consoles on a loopback port,
// runs the CLI against a config pointing at them, and verifies that only the
// eligible scan is imported and nothing is left in the temp dir.
func TestEndToEnd_WithFakeTenable(t *testing.T) {
	fake := tenablefake.New()
	fake.SetRun("11", tenablefake.Run{ID: 901, Status: "completed", TimeEnd: time.Now().Add(-time.Hour), Export: []byte("<NessusClientData_v2/>")})
	fake.SetRun("12", tenablefake.Run{ID: 902, Status: "running", TimeEnd: time.Now()})
	addr, stop, err := tenablefake.Start("127.0.0.1:0", fake)
	if err != nil {
		t.Skipf("skipping e2e: cannot start fake server: %v", err)
	}
	defer stop()

	resetConfig()
	orig := appFs
	t.Cleanup(func() { appFs = orig })
	appFs = afero.NewOsFs()

	tmp := t.TempDir()
	work := filepath.Join(tmp, "work")
	report := filepath.Join(tmp, "report.yaml")
	cfgPath := filepath.Join(tmp, "tenable.ini")
	ini := `[tenable_io]
url = http://` + addr + `
access_key = ioak
secret_key = iosk
https_proxy =
scan_ids = 11,12
age = 1

[tenable_sc]
host = http://` + addr + `
access_key = scak
secret_key = scsk
ssl_verify = True
https_proxy =
repository_id = 4
dhcp = true
virtual_hosts = false
dead_hosts_wait = 3

[smuggler]
temp_dir = ` + work + `
report_file = ` + report + `
`
	require.NoError(t, os.WriteFile(cfgPath, []byte(ini), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"--config", cfgPath})
	require.NoError(t, rootCmd.Execute())

	require.Equal(t, []string{"11"}, fake.Downloads())
	imports := fake.Imports()
	require.Len(t, imports, 1)
	require.Equal(t, map[string]any{"id": "4"}, imports[0].Request["repository"])
	require.Equal(t, "true", imports[0].Request["dhcpTracking"])
	require.Equal(t, "false", imports[0].Request["scanningVirtualHosts"])
	require.Equal(t, "3", imports[0].Request["classifyMitigatedAge"])

	zr, err := zip.NewReader(bytes.NewReader(imports[0].Data), int64(len(imports[0].Data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	require.Equal(t, "11.nessus", zr.File[0].Name)
	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	require.Equal(t, "<NessusClientData_v2/>", string(body))

	entries, err := os.ReadDir(work)
	require.NoError(t, err)
	require.Empty(t, entries)

	require.Contains(t, out.String(), "Imported 11.nessus.zip into tenable.sc repository 4")
	require.Contains(t, out.String(), "This scan is either still running")

	b, err := os.ReadFile(report)
	require.NoError(t, err)
	var rep yamlReport
	require.NoError(t, yaml.Unmarshal(b, &rep))
	require.Len(t, rep.Scans, 2)
	require.Equal(t, outcomeUploaded, rep.Scans[0].Outcome)
	require.Equal(t, int64(901), rep.Scans[0].HistoryID)
	require.True(t, rep.Scans[0].Removed)
	require.Equal(t, outcomeSkipped, rep.Scans[1].Outcome)
}
