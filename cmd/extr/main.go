// Extr extracts archive files using the trusted archiver programs of the host.
//
// Usage:
//
//	extr [FILE...] [flags]
//
// A FILE may be a quoted glob pattern, where ** matches any number of directories.
//
// The flags are:
//
//	-o, --output DIR    extract into the directory, the default is the working directory
//	-v, --verbose       show the output of the archiver programs
//	    --health        list the supported formats and the installed programs
//	    --config PATH   read the settings from a YAML file
//	    --log-level     zerolog level name, such as debug, info or warn
//	    --timeout       kill an archiver program that runs longer than the duration
//	    --signature     find the format of files with an unknown extension by their content
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/Defacto2/extr"
	"github.com/Defacto2/extr/adapter"
	"github.com/Defacto2/extr/config"
	"github.com/Defacto2/extr/process"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var version = "0.0.0-dev"

// ErrUsage is returned when no archive file is named.
var ErrUsage = errors.New("no archive files to extract, see extr --help")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

type options struct {
	output   string
	verbose  bool
	health   bool
	config   string
	logLevel string
	timeout  time.Duration
	sniff    bool
}

func newRootCmd() *cobra.Command {
	opts := options{}
	cmd := &cobra.Command{
		Use:   "extr [FILE...]",
		Short: "Extract archives using the trusted archiver programs of this system",
		Long: `Extr extracts archive files with the archiver and decompression programs
installed on this system. Only programs found in a trusted system directory,
such as /usr/bin, are used.

Every file is checked before anything is extracted, and the first file
that fails to extract stops the remaining files.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "", "extract into the directory (default is the working directory)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "show the output of the archiver programs")
	flags.BoolVar(&opts.health, "health", false, "list the supported formats and the installed programs")
	flags.StringVar(&opts.config, "config", "", "read the settings from a YAML file")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level name, such as debug, info or warn")
	flags.DurationVar(&opts.timeout, "timeout", 0, "kill an archiver program that runs longer than the duration")
	flags.BoolVar(&opts.sniff, "signature", false,
		"find the format of files with an unknown extension by their content")
	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	cfg, err := settings(cmd, opts)
	if err != nil {
		logger(cmd, zerolog.InfoLevel).Error().Err(err).Msg("configuration")
		return err
	}
	log := logger(cmd, cfg.Level())
	sup := process.New(
		process.WithStdout(cmd.OutOrStdout()),
		process.WithStderr(cmd.ErrOrStderr()),
		process.WithInterval(cfg.PollInterval),
		process.WithDrain(cfg.DrainTimeout),
		process.WithLogger(log),
	)
	dopts := []extr.Option{
		extr.WithRunner(sup),
		extr.WithLogger(log),
		extr.WithTimeout(cfg.Timeout),
	}
	if opts.sniff {
		dopts = append(dopts, extr.WithSignature())
	}
	d := extr.New(adapter.Registry(), dopts...)
	if opts.health {
		return health(cmd.OutOrStdout(), d.Health())
	}
	if len(args) == 0 {
		log.Error().Err(ErrUsage).Send()
		return ErrUsage
	}
	files, err := expand(args)
	if err != nil {
		log.Error().Err(err).Send()
		return err
	}
	if err := d.ExtractAllContext(cmd.Context(), files, cfg.OutputDir, cfg.Verbose); err != nil {
		log.Error().Err(err).Msg("extraction failed")
		return err
	}
	return nil
}

// settings returns the configuration file values overridden by the command line flags.
func settings(cmd *cobra.Command, opts options) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if opts.config != "" {
		cfg, err = config.Load(opts.config)
	} else {
		cfg, err = config.Find()
	}
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.OutputDir = opts.output
	}
	if flags.Changed("verbose") {
		cfg.Verbose = opts.verbose
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("timeout") {
		cfg.Timeout = opts.timeout
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flag: %w", err)
	}
	return cfg, nil
}

func logger(cmd *cobra.Command, level zerolog.Level) zerolog.Logger {
	w := zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
