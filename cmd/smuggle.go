package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// cutoffFor returns the oldest completion time still eligible for upload.
func cutoffFor(now time.Time, ageDays int) time.Time {
	return now.Add(-time.Duration(ageDays) * day)
}

// smuggle processes every configured scan ID in order, recording each outcome
// in rep. The first remote or local I/O error stops the run.
func smuggle(ctx context.Context, cfg *config, cutoff time.Time, src scanSource, dst scanDestination, out io.Writer, logger zerolog.Logger, rep *yamlReport) error {
	tempDir := cfg.Smuggler.TempDir
	if tempDir == "" {
		tempDir = tempDirFunc()
	}
	if err := appFs.MkdirAll(tempDir, 0o700); err != nil {
		return fmt.Errorf("failed to create temp dir: %w", err)
	}

	p := &pipeline{
		fs:        appFs,
		src:       src,
		dst:       dst,
		out:       out,
		logger:    logger,
		tempDir:   tempDir,
		age:       cfg.TenableIO.Age,
		cutoff:    cutoff,
		maxUpload: maxUploadBytes,
		upload:    uploadOptions(cfg.TenableSC),
	}

	for _, id := range cfg.TenableIO.ScanIDs {
		res, err := p.processScan(ctx, id)
		rep.addResult(res)
		if err != nil {
			return err
		}
	}

	logger.Info().
		Int("uploaded", rep.count(outcomeUploaded)).
		Int("skipped", rep.count(outcomeSkipped)).
		Int("size_skipped", rep.count(outcomeSizeSkipped)).
		Msg("run complete")
	_, _ = fmt.Fprintf(out, "Done. %d uploaded, %d skipped, %d over the upload size limit.\n",
		rep.count(outcomeUploaded), rep.count(outcomeSkipped), rep.count(outcomeSizeSkipped))
	return nil
}
