package process

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// stream is a parent end of a child output pipe and where its bytes are copied to.
type stream struct {
	name string
	src  *os.File
	dst  io.Writer
}

// relay copies the stream to its destination as the bytes arrive and signals
// once the child closes its end of the pipe. A failing destination does not
// stop the relay, the remaining bytes are discarded so the child never blocks
// on a full pipe.
func relay(st stream, signal chan<- string, log zerolog.Logger) {
	defer func() { signal <- st.name }()
	if _, err := io.Copy(st.dst, st.src); err != nil {
		log.Debug().Err(err).Str("stream", st.name).Msg("relay write failed, discarding")
		_, _ = io.Copy(io.Discard, st.src)
	}
}

// forward writes the chunks read from the parent stdin into the child stdin
// until the stop channel is closed. When the parent stdin reaches its end the
// child stdin is closed too, so a program waiting for input sees EOF.
func forward(in <-chan []byte, dst *os.File, stop <-chan struct{}) {
	for {
		select {
		case <-stop:
			return
		case b, ok := <-in:
			if !ok {
				_ = dst.Close()
				return
			}
			if _, err := dst.Write(b); err != nil {
				return
			}
		}
	}
}
