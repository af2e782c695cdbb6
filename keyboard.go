package main

import (
	"bytes"
	"io"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/term"
)

const quitPollWindow = 25 * time.Millisecond

type quitSignal interface {
	quitRequested(window time.Duration) bool
}

// noQuit is used when stdin is not a terminal.
type noQuit struct{}

func (noQuit) quitRequested(time.Duration) bool { return false }

func isQuitKey(b byte) bool {
	return b == 'q' || b == 'Q' || b == 0x03
}

// keyboard puts the terminal in raw mode so single key presses arrive
// without waiting for enter. Close restores the previous mode.
type keyboard struct {
	fd    int
	state *term.State
	keys  chan byte
}

func openKeyboard(in *os.File) (*keyboard, error) {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return nil, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, errors.Wrap(err, "enter raw mode")
	}
	k := &keyboard{fd: fd, state: state, keys: make(chan byte, 16)}
	go k.read(in)
	return k, nil
}

func (k *keyboard) read(r io.Reader) {
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if err != nil {
			close(k.keys)
			return
		}
		if n == 1 {
			select {
			case k.keys <- buf[0]:
			default:
			}
		}
	}
}

// quitRequested drains pending key presses, waiting at most window for one
// to arrive.
func (k *keyboard) quitRequested(window time.Duration) bool {
	timeout := time.NewTimer(window)
	defer timeout.Stop()
	for {
		select {
		case b, ok := <-k.keys:
			if !ok {
				return false
			}
			if isQuitKey(b) {
				return true
			}
		case <-timeout.C:
			return false
		}
	}
}

func (k *keyboard) Close() error {
	return errors.Wrap(term.Restore(k.fd, k.state), "restore terminal")
}

// crlfWriter terminates lines with CRLF, raw mode no longer does it for us.
type crlfWriter struct {
	w io.Writer
}

func (c crlfWriter) Write(p []byte) (int, error) {
	if _, err := c.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}
	return len(p), nil
}

// rawModeOutput returns the frame writer to use while the terminal is raw
// and routes log output through the same line ending translation. The
// returned func points the logger back at stderr.
func rawModeOutput(stdout, stderr io.Writer) (io.Writer, func()) {
	log.SetOutput(crlfWriter{w: stderr})
	return crlfWriter{w: stdout}, func() { log.SetOutput(stderr) }
}
