package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"scan-smuggler/tools/tenablefake"
)

// Serves a fake Tenable.io/Tenable.sc pair for manual runs, e.g.
//
//	go run ./tools/fake_tenable_server --scans 100,101
//
// then point tenable_io.url and tenable_sc.host at http://127.0.0.1:20443.
func main() {
	addr := pflag.String("listen", "127.0.0.1:20443", "listen address")
	scans := pflag.String("scans", "100", "comma-separated scan IDs reported as just completed")
	pflag.Parse()

	fake := tenablefake.New()
	for i, id := range strings.Split(*scans, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		fake.SetRun(id, tenablefake.Run{
			ID:      int64(1000 + i),
			Status:  "completed",
			TimeEnd: time.Now().Add(-time.Hour),
			Export:  []byte(fmt.Sprintf("<NessusClientData_v2><Policy><policyName>%s</policyName></Policy></NessusClientData_v2>\n", id)),
		})
	}

	bound, stop, err := tenablefake.Start(*addr, fake)
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "failed to start fake tenable server:", err)
		os.Exit(1)
	}
	_, _ = fmt.Fprintf(os.Stderr, "fake tenable server listening on http://%s\n", bound)
	defer stop()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
}
