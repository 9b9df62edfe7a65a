package app

import (
	"context"
	"os"

	"github.com/bft-labs/syslogship/internal/domain"
	"github.com/bft-labs/syslogship/internal/ports"
	"github.com/bft-labs/syslogship/pkg/state"
)

// SourceSender sends one source. *LineSender satisfies this interface.
type SourceSender interface {
	SendSource(ctx context.Context, source string) (domain.FileReport, error)
}

// BatchRunner forwards the files of a directory that changed since the last
// run and records the newest modification time as the new watermark.
type BatchRunner struct {
	scanner   ports.Scanner
	sender    SourceSender
	stateRepo ports.WatermarkRepository
	logger    ports.Logger
}

// NewBatchRunner creates a batch runner with the given dependencies.
func NewBatchRunner(
	scanner ports.Scanner,
	sender SourceSender,
	stateRepo ports.WatermarkRepository,
	logger ports.Logger,
) *BatchRunner {
	return &BatchRunner{
		scanner:   scanner,
		sender:    sender,
		stateRepo: stateRepo,
		logger:    logger,
	}
}

// Run executes one batch.
//
// Per-file failures are recorded in the report and never stop the batch.
// The returned error is set only when the scan itself fails or ctx is
// canceled; in the latter case the watermark still covers the files that
// were attempted.
func (r *BatchRunner) Run(ctx context.Context) (domain.BatchReport, error) {
	var report domain.BatchReport

	wm, err := r.stateRepo.Load(ctx)
	if err != nil {
		r.logger.Warn("failed to load watermark, sending all files", ports.Err(err))
		wm = state.Watermark{}
	}

	candidates, err := r.scanner.Scan(wm.Time)
	if err != nil {
		return report, err
	}
	report.Candidates = len(candidates)
	if len(candidates) == 0 {
		r.logger.Debug("no files to send", ports.Time("since", wm.Time))
		return report, nil
	}

	var newest state.Watermark
	var runErr error
	for _, c := range candidates {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		info, err := os.Stat(c.Path)
		if err != nil {
			r.logger.Warn("skipping file", ports.String("path", c.Path), ports.Err(err))
			continue
		}
		report.Attempted++
		newest = newest.Advance(info.ModTime())

		fr, err := r.sender.SendSource(ctx, c.Path)
		report.Files = append(report.Files, fr)
		if err != nil {
			if ctx.Err() != nil {
				runErr = ctx.Err()
				break
			}
			report.Failed = append(report.Failed, domain.FileError{Path: c.Path, Err: err})
			r.logger.Warn("file aborted", ports.String("path", c.Path), ports.Err(err))
			continue
		}
		r.logger.Info("sent file",
			ports.String("path", c.Path),
			ports.Int64("bytes", info.Size()),
			ports.Int("sent", fr.Sent),
			ports.Int("skipped", fr.Skipped()),
		)
	}

	if report.Attempted > 0 {
		report.Watermark = newest.Time
		// A canceled run still records the files it attempted.
		if err := r.stateRepo.Save(context.WithoutCancel(ctx), newest); err != nil {
			report.SaveErr = err
			r.logger.Warn("failed to save watermark", ports.Err(err))
		}
	}

	return report, runErr
}
