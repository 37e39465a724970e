package util

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Writer buffers output in a strings.Builder.
// When the Flush or Close method is called the buffer is emptied and sent to
// the assigned output writer through channel c.
type Writer struct {
	sb strings.Builder
	c  chan string
}

// ---------------------
// ----- Constants -----
// ---------------------

var wc chan string  // Write channel used for receiving data from writers.
var cc chan error   // Close channel used by main thread to signal to end write operations.
var done chan error // Reports the first write error once the listener has stopped.

// ---------------------
// ----- Functions -----
// ---------------------

// Write appends p to the Writer's buffer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.sb.Write(p)
}

// WriteString appends s to the Writer's buffer.
func (w *Writer) WriteString(s string) (int, error) {
	return w.sb.WriteString(s)
}

// Printf writes a format string to the Writer's buffer.
func (w *Writer) Printf(format string, args ...interface{}) {
	w.sb.WriteString(fmt.Sprintf(format, args...))
}

// Flush empties the Writer's buffer and sends the buffer data to the
// designated output writer over the Writer's channel.
func (w *Writer) Flush() {
	if w.c == nil || w.sb.Len() == 0 {
		return
	}
	w.c <- w.sb.String()
	w.sb = strings.Builder{}
}

// Close flushes the Writer's buffer and detaches the Writer from the listener.
func (w *Writer) Close() {
	w.Flush()
	w.c = nil
}

// NewWriter returns a new Writer that forwards its buffer to the output listener.
// Must not be called before main thread has called ListenWrite.
func NewWriter() *Writer {
	return &Writer{
		sb: strings.Builder{},
		c:  wc,
	}
}

// ReadSource reads source code from file or stdin.
// If the Options structure holds a string for source the file will be opened and read.
// A source of "-" waits for a short period for input on stdin, read from in. If no input on stdin is
// provided the function returns an error.
func ReadSource(opt Options, in io.Reader) (string, error) {
	if opt.Src != "-" {
		// Read from file.
		b, err := os.ReadFile(opt.Src)
		if err != nil {
			return "", fmt.Errorf("could not read source file: %w", err)
		}
		return string(b), nil
	}

	// Read stdin.
	c := make(chan string, 1)
	cerr := make(chan error, 1)

	// Concurrently wait for input on stdin.
	go func(c chan string, cerr chan error) {
		b, err := io.ReadAll(bufio.NewReader(in))
		if err == nil {
			c <- string(b)
		} else {
			cerr <- err
		}
	}(c, cerr)

	// Select between input from stdin or timer expiry.
	select {
	case <-time.After(500 * time.Millisecond):
		return "", errors.New("expected input from stdin, got none")
	case err := <-cerr:
		return "", fmt.Errorf("could not read stdin: %w", err)
	case s := <-c:
		return s, nil
	}
}

// ListenWrite listens for Writer outputs and writes the received data to out. The function returns immediately;
// the listener loops until a termination signal is sent using the Close function.
func ListenWrite(out io.Writer) {
	wc = make(chan string)
	cc = make(chan error, 1) // Make buffered to catch Close before listener is invoked.
	done = make(chan error, 1)
	w := bufio.NewWriter(out)

	// Listen for input and termination signal.
	go func(wc chan string, cc, done chan error) {
		var first error
		for {
			select {
			case s := <-wc:
				if _, err := w.WriteString(s); err != nil && first == nil {
					first = err
				}
				if err := w.Flush(); err != nil && first == nil {
					first = err
				}
			case <-cc:
				done <- first
				return
			}
		}
	}(wc, cc, done)
}

// Close sends the termination signal to the writer listener and waits for it to stop. It returns the first error
// the listener met while writing. Close is a no-op when no listener runs.
func Close() error {
	if cc == nil {
		return nil
	}
	cc <- nil
	err := <-done
	wc, cc, done = nil, nil, nil
	return err
}
