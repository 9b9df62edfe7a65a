package app

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bft-labs/syslogship/internal/domain"
	"github.com/bft-labs/syslogship/internal/ports"
	"github.com/bft-labs/syslogship/pkg/jsonline"
	"github.com/bft-labs/syslogship/pkg/syslog"
)

// StdinSource is the source name that selects standard input.
const StdinSource = "-"

// SenderConfig contains configuration for the line sender.
type SenderConfig struct {
	// Delay is slept after every attempted send. Zero disables it.
	Delay time.Duration

	// Stdin is read when the source is "-". Defaults to os.Stdin.
	Stdin io.Reader
}

// LineSender forwards every JSON line of one source as a syslog message.
type LineSender struct {
	config  SenderConfig
	dialer  ports.Dialer
	encoder *syslog.Encoder
	logger  ports.Logger
}

// NewLineSender creates a line sender with the given dependencies.
func NewLineSender(config SenderConfig, dialer ports.Dialer, encoder *syslog.Encoder, logger ports.Logger) *LineSender {
	if config.Stdin == nil {
		config.Stdin = os.Stdin
	}
	return &LineSender{
		config:  config,
		dialer:  dialer,
		encoder: encoder,
		logger:  logger,
	}
}

// SendSource sends every non-blank line of source over one fresh connection.
//
// Malformed lines and failed sends are recorded in the report and do not
// stop the source. A dial, open or read failure ends the source and is
// returned together with the partial report.
func (s *LineSender) SendSource(ctx context.Context, source string) (domain.FileReport, error) {
	report := domain.FileReport{Source: source}

	conn, err := s.dialer.Dial(ctx)
	if err != nil {
		return report, err
	}
	defer conn.Close()

	in, closeInput, err := s.open(source)
	if err != nil {
		return report, err
	}
	defer closeInput()

	err = s.sendLines(ctx, conn, in, &report)

	s.logger.Debug("source done",
		ports.String("source", source),
		ports.Int("lines", report.Lines),
		ports.Int("sent", report.Sent),
		ports.Int("malformed", report.Malformed),
		ports.Int("send_failed", report.SendFailed),
	)
	return report, err
}

// open returns the reader for source and the function that releases it.
// Standard input is never closed.
func (s *LineSender) open(source string) (io.Reader, func(), error) {
	if source == StdinSource {
		return s.config.Stdin, func() {}, nil
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", source, err)
	}
	return f, func() { f.Close() }, nil
}

func (s *LineSender) sendLines(ctx context.Context, conn ports.Conn, in io.Reader, report *domain.FileReport) error {
	r := bufio.NewReader(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		raw, readErr := r.ReadBytes('\n')
		if line := bytes.TrimSpace(raw); len(line) > 0 {
			outcome := s.sendLine(conn, line, report.Source)
			report.Record(outcome)
			if outcome != domain.OutcomeMalformed {
				if err := s.sleep(ctx); err != nil {
					return err
				}
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return fmt.Errorf("read %s: %w", report.Source, readErr)
		}
	}
}

func (s *LineSender) sendLine(conn ports.Conn, line []byte, source string) domain.Outcome {
	body, err := jsonline.Canonicalize(line)
	if err != nil {
		s.logger.Debug("skipping malformed line",
			ports.String("source", source),
			ports.Err(err),
		)
		return domain.OutcomeMalformed
	}

	if err := conn.Send(s.encoder.Encode(body, "")); err != nil {
		s.logger.Debug("send failed",
			ports.String("source", source),
			ports.Err(err),
		)
		return domain.OutcomeSendFailed
	}
	return domain.OutcomeSent
}

// sleep waits for the configured delay or until ctx is done.
func (s *LineSender) sleep(ctx context.Context) error {
	if s.config.Delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.config.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
