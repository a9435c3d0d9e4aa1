package extr

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"time"

	"github.com/Defacto2/extr/process"
	"github.com/Defacto2/extr/trust"
	"github.com/Defacto2/helper"
	"github.com/rs/zerolog"
)

// DirMode is the file mode of a created output directory.
const DirMode fs.FileMode = 0o755

// Runner runs a built command, the process.Supervisor is the default.
type Runner interface {
	RunContext(ctx context.Context, c process.Command, verbose bool) error
}

// Dispatcher resolves archive files to a trusted program and runs it.
// A Dispatcher is safe for concurrent use, when the Runner is.
type Dispatcher struct {
	registry *Registry
	lookPath func(file string) (string, error)
	trusted  func(path string) bool
	runner   Runner
	log      zerolog.Logger
	timeout  time.Duration
	sniff    bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLookPath replaces the search path lookup, the default is exec.LookPath.
func WithLookPath(fn func(file string) (string, error)) Option {
	return func(d *Dispatcher) { d.lookPath = fn }
}

// WithTrust replaces the trusted location check, the default is trust.IsTrusted.
func WithTrust(fn func(path string) bool) Option {
	return func(d *Dispatcher) { d.trusted = fn }
}

// WithRunner replaces the process supervisor that runs the programs.
func WithRunner(r Runner) Option {
	return func(d *Dispatcher) { d.runner = r }
}

// WithLogger sets the logger, the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(d *Dispatcher) { d.log = l }
}

// WithTimeout kills any program that runs for longer than the duration.
// A zero duration, the default, lets the program run to completion.
func WithTimeout(t time.Duration) Option {
	return func(d *Dispatcher) { d.timeout = t }
}

// WithSignature reads the file signature to find the archive format
// when the extension of a file is not registered. It is off by default,
// so an unregistered extension is always an unsupported format.
func WithSignature() Option {
	return func(d *Dispatcher) { d.sniff = true }
}

// New returns a Dispatcher for the adapters of the registry.
// Without a WithRunner option the programs run under a process.Supervisor
// that is connected to the standard streams of this process.
func New(r *Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: r,
		lookPath: exec.LookPath,
		trusted:  trust.IsTrusted,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.registry == nil {
		d.registry = NewRegistry()
	}
	if d.runner == nil {
		d.runner = process.New(process.WithLogger(d.log))
	}
	return d
}

// Resolution is an archive file resolved to an adapter and a trusted program.
type Resolution struct {
	File    string  // File is the archive file as it was named.
	Key     string  // Key is the extension key that found the adapter.
	Adapter Adapter // Adapter is the owner of the key.
	Binary  string  // Binary is the absolute path of the trusted program.
}

// Resolve finds the adapter for the named file and the first of its programs
// that is installed in a trusted location.
//
// The compound tar key of the name is looked up first and then its last
// component. When neither is registered and the Dispatcher was created
// WithSignature, the file signature is read to find the archive format.
//
// The returned error wraps ErrUnsupportedFormat when no adapter owns the file
// or is a *NoTrustedToolError when none of the programs can be used.
func (d *Dispatcher) Resolve(file string) (Resolution, error) {
	a, key, err := d.adapter(file)
	if err != nil {
		return Resolution{}, err
	}
	bin, err := d.binary(key, a)
	if err != nil {
		return Resolution{}, err
	}
	d.log.Debug().Str("file", file).Str("key", key).Str("binary", bin).Msg("resolved")
	return Resolution{File: file, Key: key, Adapter: a, Binary: bin}, nil
}

func (d *Dispatcher) adapter(file string) (Adapter, string, error) {
	if a, key, ok := d.registry.Lookup(file); ok {
		return a, key, nil
	}
	if !d.sniff {
		return nil, "", fmt.Errorf("%w %q: %s", ErrUnsupportedFormat, Key(file), file)
	}
	if st, err := os.Stat(file); err == nil && st.Mode().IsRegular() {
		key, err := Sniff(file)
		if err != nil {
			d.log.Debug().Err(err).Str("file", file).Msg("signature")
		}
		if a, ok := d.registry.Get(key); ok && key != "" {
			d.log.Debug().Str("file", file).Str("key", key).Msg("format found by the file signature")
			return a, key, nil
		}
	}
	return nil, "", fmt.Errorf("%w %q: %s", ErrUnsupportedFormat, Key(file), file)
}

// binary returns the first adapter program that is found on the search path
// and lives in a trusted location.
func (d *Dispatcher) binary(key string, a Adapter) (string, error) {
	names := a.Binaries()
	for _, name := range names {
		path, err := d.lookPath(name)
		if err != nil {
			d.log.Debug().Str("program", name).Msg("not found")
			continue
		}
		if !d.trusted(path) {
			d.log.Warn().Str("program", name).Str("path", path).Msg("ignored, not in a trusted location")
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			continue
		}
		return abs, nil
	}
	return "", &NoTrustedToolError{Key: key, Candidates: slices.Clone(names)}
}

// Extract the named archive file into the output directory,
// an empty output directory is the working directory.
// The output directory is created when it does not exist.
//
// The verbose flag relays the terminal output of the program,
// while error messages of the program are always relayed.
func (d *Dispatcher) Extract(file, outputDir string, verbose bool) error {
	return d.ExtractContext(context.Background(), file, outputDir, verbose)
}

// ExtractContext is Extract with a context, the running program is killed when the context is done.
func (d *Dispatcher) ExtractContext(ctx context.Context, file, outputDir string, verbose bool) error {
	res, err := d.Resolve(file)
	if err != nil {
		return err
	}
	return d.run(ctx, res, outputDir, verbose)
}

// ExtractAll extracts the named archive files into the output directory in the given order.
//
// Every file is resolved before anything is extracted, so a file that cannot
// be extracted aborts the batch before the output directory is touched.
// The first extraction that fails stops the remaining files.
func (d *Dispatcher) ExtractAll(files []string, outputDir string, verbose bool) error {
	return d.ExtractAllContext(context.Background(), files, outputDir, verbose)
}

// ExtractAllContext is ExtractAll with a context.
func (d *Dispatcher) ExtractAllContext(ctx context.Context, files []string, outputDir string, verbose bool) error {
	resolved := make([]Resolution, 0, len(files))
	for _, file := range files {
		res, err := d.Resolve(file)
		if err != nil {
			return err
		}
		resolved = append(resolved, res)
	}
	for _, res := range resolved {
		if err := d.run(ctx, res, outputDir, verbose); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) run(ctx context.Context, res Resolution, outputDir string, verbose bool) error {
	if outputDir == "" {
		outputDir = "."
	}
	src, err := filepath.Abs(res.File)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, res.File, err)
	}
	dst, err := filepath.Abs(outputDir)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrIO, outputDir, err)
	}
	c, err := res.Adapter.BuildCommand(res.Binary, src, dst, verbose)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrAdapterBuild, filepath.Base(res.Binary), err)
	}
	if err := os.MkdirAll(dst, DirMode); err != nil {
		return fmt.Errorf("%w: output directory: %w", ErrIO, err)
	}
	if c.Stage != "" {
		cleanup, err := stage(c, dst)
		if err != nil {
			return err
		}
		defer func() {
			if err := cleanup(); err != nil {
				d.log.Warn().Err(err).Msg("staged copy was not removed")
			}
		}()
	}
	if d.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.timeout)
		defer cancel()
	}
	d.log.Info().Str("file", filepath.Base(src)).Str("program", c.Name()).Str("output", dst).Msg("extracting")
	if err := d.runner.RunContext(ctx, c, verbose); err != nil {
		return fmt.Errorf("extr extract %s: %w", filepath.Base(src), err)
	}
	return nil
}

// stage copies the source file of the command into its working directory,
// for programs that cannot extract to a target directory.
// The returned function removes the copy.
func stage(c process.Command, dst string) (func() error, error) {
	dir := c.Dir
	if dir == "" {
		dir = dst
	}
	src, err := filepath.Abs(c.Stage)
	if err != nil {
		return nil, fmt.Errorf("%w: stage: %w", ErrIO, err)
	}
	copied := filepath.Join(dir, filepath.Base(src))
	if copied == src {
		// the archive already is in the working directory
		return func() error { return nil }, nil
	}
	if _, err := os.Lstat(copied); err == nil {
		return nil, fmt.Errorf("%w: stage would replace an existing file: %s", ErrIO, copied)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: stage: %w", ErrIO, err)
	}
	if _, err := helper.Duplicate(src, copied); err != nil {
		_ = os.Remove(copied)
		return nil, fmt.Errorf("%w: stage duplicate: %w", ErrIO, err)
	}
	return func() error { return os.Remove(copied) }, nil
}
