// Package process runs an external program while relaying its standard streams.
//
// The Supervisor pipes the program stdin, stdout and stderr through
// dedicated goroutines, so a chatty program can never fill an operating
// system pipe buffer and stall, and so the interactive prompts of an
// archiver, such as an overwrite confirmation, reach the terminal and can
// be answered.
//
// Completion is detected with a poll loop. The loop wakes either when an
// output stream closes or on a fixed tick and then checks, without
// blocking, whether the program has exited. Only the exit check ends the loop.
package process

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/Defacto2/helper"
	"github.com/rs/zerolog"
)

const (
	DefaultInterval = 100 * time.Millisecond // DefaultInterval is the time between the program exit checks.
	DefaultDrain    = 5 * time.Second        // DefaultDrain is the maximum wait for the output relays after an exit.
)

// Supervisor starts programs and relays their standard streams.
// A Supervisor may be reused for many programs, one after another.
//
//	func Run() {
//	    s := process.New()
//	    err := s.Run(process.Command{
//	        Path: "/usr/bin/unzip",
//	        Args: []string{"archive.zip", "-d", "out"},
//	    }, true)
//	    if err != nil {
//	        fmt.Fprintf(os.Stderr, "error: %v\n", err)
//	    }
//	}
type Supervisor struct {
	stdin    io.Reader
	stdout   io.Writer
	stderr   io.Writer
	interval time.Duration
	drain    time.Duration
	log      zerolog.Logger

	once  sync.Once
	input chan []byte
}

// Option configures a Supervisor.
type Option func(*Supervisor)

// WithStdin sets the reader that is forwarded to the program stdin.
// A nil reader gives the program an immediately closed stdin.
func WithStdin(r io.Reader) Option {
	return func(s *Supervisor) { s.stdin = r }
}

// WithStdout sets the writer that receives the program stdout in verbose mode.
func WithStdout(w io.Writer) Option {
	return func(s *Supervisor) { s.stdout = w }
}

// WithStderr sets the writer that receives the program stderr.
func WithStderr(w io.Writer) Option {
	return func(s *Supervisor) { s.stderr = w }
}

// WithInterval sets the tick between the program exit checks.
func WithInterval(d time.Duration) Option {
	return func(s *Supervisor) { s.interval = d }
}

// WithDrain sets how long to wait for the output relays once the program has exited.
func WithDrain(d time.Duration) Option {
	return func(s *Supervisor) { s.drain = d }
}

// WithLogger sets the logger, the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Supervisor) { s.log = l }
}

// New returns a Supervisor connected to the standard streams of this process.
func New(opts ...Option) *Supervisor {
	s := &Supervisor{
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		interval: DefaultInterval,
		drain:    DefaultDrain,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.stdout == nil {
		s.stdout = io.Discard
	}
	if s.stderr == nil {
		s.stderr = io.Discard
	}
	if s.interval <= 0 {
		s.interval = DefaultInterval
	}
	if s.drain <= 0 {
		s.drain = DefaultDrain
	}
	return s
}

// Run starts the command and waits for it to exit.
// See RunContext.
func (s *Supervisor) Run(c Command, verbose bool) error {
	return s.RunContext(context.Background(), c, verbose)
}

// RunContext starts the command and waits for it to exit.
//
// The program stdout is relayed only when verbose is true or redirected into
// the Command Output file, otherwise it is discarded. The program stderr is
// always relayed and the stdin of the Supervisor is always forwarded.
//
// When the context is done the program is killed, RunContext still returns
// only once the exit has been observed.
//
// A program that cannot be started returns an error wrapping ErrSpawn.
// A program that exits with a failure returns an *ExitError.
// The Command Output file is removed whenever an error is returned.
func (s *Supervisor) RunContext(ctx context.Context, c Command, verbose bool) (err error) {
	if c.Path == "" {
		return fmt.Errorf("%w: %w", ErrSpawn, ErrNoPath)
	}
	cmd := exec.Command(c.Path, c.Args...)
	cmd.Dir = c.Dir

	// child ends of the pipes are closed as soon as the program has a copy
	var child []*os.File
	closeChild := func() {
		for _, f := range child {
			_ = f.Close()
		}
		child = nil
	}
	defer closeChild()
	var relays []stream
	defer func() {
		for _, st := range relays {
			_ = st.src.Close()
		}
	}()

	stdinR, stdinW, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("%w: stdin pipe: %w", ErrSpawn, err)
	}
	defer stdinW.Close()
	child = append(child, stdinR)
	cmd.Stdin = stdinR

	switch {
	case c.Output != "":
		f, ferr := os.OpenFile(c.Output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, helper.WriteWriteRead)
		if ferr != nil {
			return fmt.Errorf("%w: output file: %w", ErrSpawn, ferr)
		}
		child = append(child, f)
		defer func() {
			if err == nil {
				return
			}
			if rerr := os.Remove(c.Output); rerr != nil {
				s.log.Debug().Err(rerr).Str("output", c.Output).Msg("remove")
			}
		}()
		cmd.Stdout = f
	case verbose:
		r, w, err := os.Pipe()
		if err != nil {
			return fmt.Errorf("%w: stdout pipe: %w", ErrSpawn, err)
		}
		child = append(child, w)
		relays = append(relays, stream{name: "stdout", src: r, dst: s.stdout})
		cmd.Stdout = w
	}

	r, w, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("%w: stderr pipe: %w", ErrSpawn, err)
	}
	child = append(child, w)
	relays = append(relays, stream{name: "stderr", src: r, dst: s.stderr})
	cmd.Stderr = w

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrSpawn, c.Path, err)
	}
	closeChild()
	log := s.log.With().Str("program", c.Name()).Int("pid", cmd.Process.Pid).Logger()
	log.Debug().Str("command", c.String()).Msg("started")

	var wg sync.WaitGroup
	signal := make(chan string, len(relays))
	for _, st := range relays {
		wg.Add(1)
		go func() {
			defer wg.Done()
			relay(st, signal, log)
		}()
	}

	stop := make(chan struct{})
	if s.stdin == nil {
		_ = stdinW.Close()
	} else {
		wg.Add(1)
		go func() {
			defer wg.Done()
			forward(s.reader(), stdinW, stop)
		}()
	}

	exited := make(chan error, 1)
	go func() {
		exited <- cmd.Wait()
	}()

	werr := s.poll(ctx, cmd, signal, exited, log)
	close(stop)
	_ = stdinW.Close()
	s.join(&wg, log)
	return outcome(c.Path, cmd.ProcessState, werr)
}

// poll blocks until the exit check reports that the program has exited.
// A closed output stream or the ticker wakes the loop, a done context kills the program.
func (s *Supervisor) poll(ctx context.Context, cmd *exec.Cmd, signal <-chan string, exited <-chan error,
	log zerolog.Logger,
) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	done := ctx.Done()
	for {
		select {
		case name := <-signal:
			log.Debug().Str("stream", name).Msg("stream closed")
		case <-ticker.C:
		case <-done:
			log.Warn().Err(ctx.Err()).Msg("killing the program")
			if err := cmd.Process.Kill(); err != nil {
				log.Debug().Err(err).Msg("kill")
			}
			done = nil
		}
		select {
		case err := <-exited:
			return err
		default:
		}
	}
}

// join waits for the relay and forward goroutines, but no longer than the drain duration.
// A grandchild process that inherited an output pipe could otherwise hold it open forever.
func (s *Supervisor) join(wg *sync.WaitGroup, log zerolog.Logger) {
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	timer := time.NewTimer(s.drain)
	defer timer.Stop()
	select {
	case <-done:
	case <-timer.C:
		log.Warn().Dur("drain", s.drain).Msg("output streams are still open after the program exited")
	}
}

// reader returns the channel of chunks read from the Supervisor stdin.
// A single goroutine reads the stdin for the life of the Supervisor, so input
// typed between two programs is handed to the next one and never lost.
func (s *Supervisor) reader() <-chan []byte {
	s.once.Do(func() {
		s.input = make(chan []byte)
		go func() {
			defer close(s.input)
			const size = 1024
			for {
				buf := make([]byte, size)
				n, err := s.stdin.Read(buf)
				if n > 0 {
					s.input <- buf[:n]
				}
				if err != nil {
					return
				}
			}
		}()
	})
	return s.input
}

// outcome converts the result of the program wait into the returned error.
func outcome(path string, state *os.ProcessState, err error) error {
	if state != nil {
		if state.Success() {
			return nil
		}
		return &ExitError{
			Path:   path,
			Code:   state.ExitCode(),
			Status: state.String(),
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrExecution, path, err)
	}
	return nil
}
