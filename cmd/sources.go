package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"scan-smuggler/internal/tio"
	"scan-smuggler/internal/transport"
	"scan-smuggler/internal/tsc"
)

// scanSource is the subset of the Tenable.io client the pipeline needs.
type scanSource interface {
	History(ctx context.Context, scanID string, limit int) ([]tio.ScanRun, error)
	Export(ctx context.Context, scanID string, historyID int64, w io.Writer) error
}

// scanDestination is the subset of the Tenable.sc client the pipeline needs.
type scanDestination interface {
	ImportScan(ctx context.Context, name string, r io.Reader, opts tsc.ImportOptions) error
}

func newSource(c ioConfig, logger zerolog.Logger) (scanSource, error) {
	hc, err := transport.NewHTTPClient(transport.Options{Proxy: c.HTTPSProxy, SSLVerify: c.SSLVerify})
	if err != nil {
		return nil, fmt.Errorf("tenable_io: %w", err)
	}
	return tio.New(c.AccessKey, c.SecretKey,
		tio.WithBaseURL(c.URL),
		tio.WithHTTPClient(hc),
		tio.WithUserAgent("scan-smuggler/"+Version),
		tio.WithLogger(logger),
	), nil
}

func newDestination(c scConfig, logger zerolog.Logger) (scanDestination, error) {
	hc, err := transport.NewHTTPClient(transport.Options{Proxy: c.HTTPSProxy, SSLVerify: c.SSLVerify})
	if err != nil {
		return nil, fmt.Errorf("tenable_sc: %w", err)
	}
	return tsc.New(c.Host, c.AccessKey, c.SecretKey,
		tsc.WithHTTPClient(hc),
		tsc.WithUserAgent("scan-smuggler/"+Version),
		tsc.WithLogger(logger),
	), nil
}

// uploadOptions maps the [tenable_sc] settings onto an import request.
func uploadOptions(c scConfig) tsc.ImportOptions {
	return tsc.ImportOptions{
		RepositoryID:  c.RepositoryID,
		HostTracking:  c.DHCP,
		VirtualHosts:  c.VirtualHosts,
		DeadHostsWait: c.DeadHostsWait,
	}
}
