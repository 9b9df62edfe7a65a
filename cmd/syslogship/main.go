package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/syslogship/internal/cliconfig"
	"github.com/bft-labs/syslogship/pkg/log"
	"github.com/bft-labs/syslogship/pkg/syslogship"
)

const helpDescription = `
Forward JSON Lines records to a syslog collector as RFC 5424 messages.

Every non-blank line must be one JSON value; it is re-encoded on a single
line and sent as the message body. Lines that are not JSON are skipped.

Directory mode sends the files whose modification time is at or after the
one recorded in the state file, oldest first, then records the newest.

Configuration precedence: flags > environment (SYSLOGSHIP_*, SYSLOG_*) >
.env file > config file ($HOME/.syslogship/config.toml).
`

var exampleUsage = strings.TrimSpace(`
  syslogship data.jsonl --host logs.example.com --port 5140
  cat data.jsonl | syslogship - --protocol udp
  syslogship data.jsonl --protocol tls --port 6514 --ca-cert ca.crt --client-cert client.crt --client-key client.key
  syslogship --dir /path/to/output --state-file /tmp/.last_run
  syslogship --dir /path/to/output --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	os.Exit(run())
}

func run() int {
	cfg := cliconfig.DefaultConfig()
	var cfgPath, envPath string

	logger := log.NewConsoleLogger(os.Stderr, zerolog.InfoLevel)

	root := &cobra.Command{
		Use:           "syslogship [file|-]",
		Short:         "Forward JSON Lines records to a syslog collector",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}
			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// .env values land in the environment without overriding it,
			// so ApplyEnvConfig sees them below the real environment.
			if _, err := cliconfig.LoadEnvFile(envPath); err != nil {
				logger.Warn().Err(err).Str("path", envPath).Msg("failed to read env file")
			}
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if len(args) == 1 {
				cfg.Source = args[0]
			}

			logger = logger.Level(log.ParseLevel(cfg.LogLevel))

			if err := cfg.Validate(); err != nil {
				return err
			}

			logger.Debug().Interface("config", cfg).Msg("configuration")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			s, err := syslogship.New(cfg.Shipper(),
				syslogship.WithLogger(log.NewZerologAdapterWithLogger(logger)),
				syslogship.WithBatchHandler(func(r syslogship.BatchReport, err error) {
					logBatch(logger, r)
				}),
			)
			if err != nil {
				return err
			}
			target := s.Config()
			logger.Debug().
				Str("protocol", target.Protocol).
				Str("host", target.Host).
				Int("port", target.Port).
				Msg("collector")

			switch {
			case cfg.Watch:
				err := s.Watch(ctx, cfg.DirConfig())
				if errors.Is(err, context.Canceled) {
					logger.Info().Msg("received signal, stopping")
					return nil
				}
				return err

			case cfg.DirectoryMode():
				report, err := s.RunDirectory(ctx, cfg.DirConfig())
				logBatch(logger, report)
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err

			default:
				report, err := s.SendFile(ctx, cfg.Source)
				logger.Info().
					Str("source", report.Source).
					Int("sent", report.Sent).
					Int("malformed", report.Malformed).
					Int("send_failed", report.SendFailed).
					Msg("done")
				if errors.Is(err, context.Canceled) {
					return nil
				}
				return err
			}
		},
	}

	f := root.Flags()
	f.StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.syslogship/config.toml)")
	f.StringVar(&envPath, "env-file", cliconfig.DefaultEnvFile, "dotenv file with SYSLOG_* settings")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	f.StringVar(&cfg.Host, "host", cfg.Host, "syslog collector host (env: SYSLOG_HOST)")
	f.IntVar(&cfg.Port, "port", cfg.Port, "syslog collector port (env: SYSLOG_PORT)")
	f.StringVar(&cfg.Protocol, "protocol", cfg.Protocol, "transport: udp, tcp or tls (env: SYSLOG_PROTOCOL)")
	f.IntVar(&cfg.Facility, "facility", cfg.Facility, "syslog facility 0-23, 16 = local0 (env: SYSLOG_FACILITY)")
	f.IntVar(&cfg.Severity, "severity", cfg.Severity, "syslog severity 0-7, 6 = informational (env: SYSLOG_SEVERITY)")
	f.StringVar(&cfg.AppName, "app-name", cfg.AppName, "APP-NAME header field (env: SYSLOG_APP_NAME)")
	f.StringVar(&cfg.MsgID, "msgid", cfg.MsgID, "MSGID header field (default \"-\")")
	cliconfig.SecondsVar(f, &cfg.Delay, "delay", cfg.Delay, "pause after each sent line, in seconds or as a duration (env: SYSLOG_DELAY)")

	f.StringVar(&cfg.CACert, "ca-cert", cfg.CACert, "CA certificate for TLS (env: SYSLOG_CA_CERT)")
	f.StringVar(&cfg.ClientCert, "client-cert", cfg.ClientCert, "client certificate for mutual TLS (env: SYSLOG_CLIENT_CERT)")
	f.StringVar(&cfg.ClientKey, "client-key", cfg.ClientKey, "client private key for mutual TLS (env: SYSLOG_CLIENT_KEY)")
	f.BoolVar(&cfg.NoVerify, "no-verify", cfg.NoVerify, "skip server certificate verification when no CA is given (env: SYSLOG_NO_VERIFY)")
	f.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "connect and write timeout, 0 for none")

	f.StringVar(&cfg.Dir, "dir", cfg.Dir, "directory to send files from (env: SYSLOG_DIR)")
	f.StringVar(&cfg.Pattern, "pattern", cfg.Pattern, "file name pattern in directory mode")
	f.StringVar(&cfg.StateFile, "state-file", cfg.StateFile, "state file holding the last processed time")
	f.BoolVar(&cfg.Watch, "watch", cfg.Watch, "keep running and resend when the directory changes")

	if err := root.Execute(); err != nil {
		logger.Error().Err(err).Msg("syslogship")
		return 1
	}
	return 0
}

func logBatch(logger zerolog.Logger, r syslogship.BatchReport) {
	totals := r.Totals()
	ev := logger.Info()
	if len(r.Failed) > 0 {
		ev = logger.Warn()
	}
	ev.Int("candidates", r.Candidates).
		Int("attempted", r.Attempted).
		Int("failed", len(r.Failed)).
		Int("sent", totals.Sent).
		Int("skipped", totals.Skipped()).
		Msg("batch done")
	if !r.Watermark.IsZero() {
		logger.Debug().Time("watermark", r.Watermark).Msg("watermark")
	}
}
