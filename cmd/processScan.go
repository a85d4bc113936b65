package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"scan-smuggler/internal/tio"
	"scan-smuggler/internal/tsc"
)

// pipeline carries everything needed to move one scan ID from tenable.io to
// tenable.sc.
type pipeline struct {
	fs        afero.Fs
	src       scanSource
	dst       scanDestination
	out       io.Writer
	logger    zerolog.Logger
	tempDir   string
	age       int
	cutoff    time.Time
	maxUpload int64
	upload    tsc.ImportOptions
}

// eligible reports whether run finished and did so no earlier than cutoff.
func eligible(run tio.ScanRun, cutoff time.Time) bool {
	return run.Completed() && !run.Ended().Before(cutoff)
}

// processScan inspects the latest run of scanID and, when eligible, downloads,
// compresses, and uploads it. Temporary files are removed before it returns,
// including when a remote call fails.
func (p *pipeline) processScan(ctx context.Context, scanID string) (res yamlScanResult, err error) {
	res = yamlScanResult{ScanID: scanID, Removed: true}
	_, _ = fmt.Fprintf(p.out, "Scan ID %s:\n", scanID)

	runs, err := p.src.History(ctx, scanID, 1)
	if err != nil {
		return p.fail(res, fmt.Errorf("list history of scan %s: %w", scanID, err))
	}
	if len(runs) == 0 {
		_, _ = fmt.Fprintf(p.out, "Scan ID %s has no run history. This scan will not be uploaded to tenable.sc.\n", scanID)
		res.Outcome = outcomeSkipped
		return res, nil
	}

	run := runs[0]
	res.Status, res.HistoryID = run.Status, run.ID
	if run.TimeEnd > 0 {
		res.CompletedAt = run.Ended().UTC().Format(time.RFC3339)
	}
	if !eligible(run, p.cutoff) {
		p.logger.Debug().Str("scan_id", scanID).Str("status", run.Status).Time("ended", run.Ended()).Msg("run not eligible")
		_, _ = fmt.Fprintf(p.out, "This scan is either still running or more than %d days old, as specified in the config file. "+
			"This scan will not be uploaded to tenable.sc.\n", p.age)
		res.Outcome = outcomeSkipped
		return res, nil
	}

	raw := filepath.Join(p.tempDir, scanID+".nessus")
	archive := raw + ".zip"
	defer func() {
		res.Removed = removeArtifacts(p.fs, p.out, p.logger, raw, archive)
	}()

	_, _ = fmt.Fprintf(p.out, "Downloading scan id %s from tenable.io to %s\n", scanID, raw)
	if err := p.download(ctx, scanID, run.ID, raw); err != nil {
		return p.fail(res, err)
	}

	_, _ = fmt.Fprintf(p.out, "Compressing %s to %s\n", raw, archive)
	size, err := zipArtifact(p.fs, raw, archive)
	if err != nil {
		return p.fail(res, err)
	}
	res.ArchiveBytes = size

	if size > p.maxUpload {
		_, _ = fmt.Fprintf(p.out, "Scan file exceeds tenable.sc's maximum upload size of %d MB. "+
			"See https://docs.tenable.com/sccv/Content/UploadScanResults.htm "+
			"for instructions to accommodate larger file uploads\n", p.maxUpload/1000000)
		res.Outcome = outcomeSizeSkipped
		return res, nil
	}

	_, _ = fmt.Fprintf(p.out, "Uploading %s to tenable.sc\n", archive)
	if err := p.uploadArchive(ctx, archive); err != nil {
		return p.fail(res, err)
	}
	_, _ = fmt.Fprintf(p.out, "Imported %s into tenable.sc repository %d\n", filepath.Base(archive), p.upload.RepositoryID)
	res.Outcome = outcomeUploaded
	return res, nil
}

func (p *pipeline) download(ctx context.Context, scanID string, historyID int64, path string) error {
	f, err := p.fs.Create(path)
	if err != nil {
		return err
	}
	err = p.src.Export(ctx, scanID, historyID, f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("export scan %s: %w", scanID, err)
	}
	return nil
}

func (p *pipeline) uploadArchive(ctx context.Context, path string) error {
	f, err := p.fs.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return p.dst.ImportScan(ctx, filepath.Base(path), f, p.upload)
}

func (p *pipeline) fail(res yamlScanResult, err error) (yamlScanResult, error) {
	res.Outcome = outcomeFailed
	res.Error = err.Error()
	return res, err
}
