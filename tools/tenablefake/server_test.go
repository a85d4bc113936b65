package tenablefake

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"scan-smuggler/internal/tio"
	"scan-smuggler/internal/tsc"
)

// TestStart_ServesBothConsoles exercises the fake through the real clients
// over a loopback listener.
func TestStart_ServesBothConsoles(t *testing.T) {
	fake := New()
	fake.SetRun("100", Run{ID: 5, Status: "completed", TimeEnd: time.Unix(1700000000, 0), Export: []byte("nessus")})

	addr, stop, err := Start("127.0.0.1:0", fake)
	require.NoError(t, err)
	defer stop()
	base := "http://" + addr

	src := tio.New("a", "s", tio.WithBaseURL(base), tio.WithPollInterval(time.Millisecond))
	runs, err := src.History(context.Background(), "100", 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	require.Equal(t, int64(1700000000), runs[0].TimeEnd)

	var buf bytes.Buffer
	require.NoError(t, src.Export(context.Background(), "100", runs[0].ID, &buf))
	require.Equal(t, "nessus", buf.String())
	require.Equal(t, []string{"100"}, fake.Downloads())

	sc := tsc.New(base, "a", "s")
	require.NoError(t, sc.ImportScan(context.Background(), "100.nessus.zip", bytes.NewReader([]byte("zip")), tsc.ImportOptions{RepositoryID: 2}))
	imps := fake.Imports()
	require.Len(t, imps, 1)
	require.Equal(t, []byte("zip"), imps[0].Data)
	require.Equal(t, map[string]any{"id": "2"}, imps[0].Request["repository"])
}

func TestServer_UnknownScanIs404(t *testing.T) {
	fake := New()
	addr, stop, err := Start("127.0.0.1:0", fake)
	require.NoError(t, err)
	defer stop()

	req, _ := http.NewRequest(http.MethodGet, "http://"+addr+"/scans/nope/history", nil)
	req.Header.Set("X-ApiKeys", "accessKey=a; secretKey=s;")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
