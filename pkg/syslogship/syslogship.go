package syslogship

import (
	"context"
	"fmt"

	"github.com/bft-labs/syslogship/internal/app"
	"github.com/bft-labs/syslogship/internal/domain"
	"github.com/bft-labs/syslogship/internal/ports"
	"github.com/bft-labs/syslogship/pkg/scan"
	"github.com/bft-labs/syslogship/pkg/state"
	"github.com/bft-labs/syslogship/pkg/syslog"
	"github.com/bft-labs/syslogship/pkg/transport"
)

// Errors returned by New and the send operations. Match them with errors.Is.
var (
	ErrConfiguration = domain.ErrConfiguration
	ErrNotFound      = domain.ErrNotFound
	ErrConnection    = domain.ErrConnection
	ErrCorruptState  = domain.ErrCorruptState
)

// Report types.
type (
	Outcome     = domain.Outcome
	FileReport  = domain.FileReport
	FileError   = domain.FileError
	BatchReport = domain.BatchReport
)

// Line outcomes.
const (
	OutcomeSent       = domain.OutcomeSent
	OutcomeMalformed  = domain.OutcomeMalformed
	OutcomeSendFailed = domain.OutcomeSendFailed
)

// StdinSource is the source name that reads standard input.
const StdinSource = app.StdinSource

// IsFatal reports whether err must stop the whole run: invalid
// configuration or missing TLS material.
func IsFatal(err error) bool {
	return domain.IsFatal(err)
}

// Shipper forwards JSONL sources to one collector.
// It is safe to run operations sequentially; each opens its own connections.
type Shipper struct {
	config  Config
	opts    options
	dialer  *transport.Dialer
	encoder *syslog.Encoder
	sender  *app.LineSender
	logger  ports.Logger
}

// New validates cfg and loads its TLS material. No socket is opened.
// Errors wrap ErrConfiguration or ErrNotFound.
func New(cfg Config, opts ...Option) (*Shipper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	tc, err := cfg.transportConfig()
	if err != nil {
		return nil, err
	}
	dialer, err := transport.NewDialer(tc)
	if err != nil {
		return nil, err
	}

	encoder := syslog.NewEncoder(cfg.header(), o.fields)
	sender := app.NewLineSender(app.SenderConfig{
		Delay: cfg.Delay,
		Stdin: o.stdin,
	}, dialer, encoder, o.logger)

	return &Shipper{
		config:  cfg,
		opts:    o,
		dialer:  dialer,
		encoder: encoder,
		sender:  sender,
		logger:  o.logger,
	}, nil
}

// Config returns the configuration the Shipper was built with.
func (s *Shipper) Config() Config {
	return s.config
}

// SendFile sends every line of path, or of standard input when path is "-",
// over one fresh connection.
//
// The returned error is set when the connection, the open or a read fails;
// the report then covers the lines handled before the failure.
func (s *Shipper) SendFile(ctx context.Context, path string) (FileReport, error) {
	return s.sender.SendSource(ctx, path)
}

// RunDirectory sends the files of dc.Dir modified at or after the stored
// watermark, oldest first, then stores the newest modification time seen.
// Failures of single files are listed in the report, not returned.
func (s *Shipper) RunDirectory(ctx context.Context, dc DirConfig) (BatchReport, error) {
	runner, _, err := s.batchRunner(dc)
	if err != nil {
		return BatchReport{}, err
	}
	return runner.Run(ctx)
}

// Watch runs a directory batch, then runs another one each time matching
// files are created or written. It blocks until ctx is canceled.
func (s *Shipper) Watch(ctx context.Context, dc DirConfig) error {
	runner, scanner, err := s.batchRunner(dc)
	if err != nil {
		return err
	}
	w := app.NewWatcher(app.WatchConfig{
		Dir:      scanner.Dir(),
		Debounce: dc.Debounce,
		OnBatch:  s.opts.onBatch,
	}, runner, scanner.Matcher(), s.logger)
	return w.Watch(ctx)
}

func (s *Shipper) batchRunner(dc DirConfig) (*app.BatchRunner, *scan.Scanner, error) {
	dc.SetDefaults()
	if err := dc.Validate(); err != nil {
		return nil, nil, err
	}
	scanner, err := scan.New(dc.Dir, dc.Pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	repo := state.NewFileRepository(dc.StateFile)
	s.logger.Debug("directory run",
		ports.String("dir", scanner.Dir()),
		ports.String("pattern", dc.Pattern),
		ports.String("state_file", repo.Path()),
	)
	return app.NewBatchRunner(scanner, s.sender, repo, s.logger), scanner, nil
}
