package util

import (
	"fmt"
	"io"
	"sync"
)

// ----------------------------
// ----- Type definitions -----
// ----------------------------

// Perror provides a structure for listening for errors reported from worker threads and means for retrieving
// errors when a job has been completed. If an output writer is set, every error is printed as it arrives.
type Perror struct {
	listen     chan error    // Channel for receiving error messages from worker threads.
	stop       chan struct{} // Closing this channel causes the listener to stop listening for errors.
	done       chan struct{} // Closed by the listener once it has stopped.
	out        io.Writer     // Destination of printed errors. May be nil.
	errors     []error       // Buffer of error messages.
	sync.Mutex               // For synchronising writes and reads.
}

// ----------------------
// ----- Constants ------
// ----------------------

// defaultBufferSize defines the fallback buffer size of the error array.
const defaultBufferSize = 16

// ---------------------
// ----- functions -----
// ---------------------

// NewPerror returns a pointer to a running Perror with n number of pre-allocated slots for errors in the buffer.
// Errors are printed to out, one per line, unless out is nil.
func NewPerror(n int, out io.Writer) *Perror {
	if n < 1 {
		n = defaultBufferSize
	}
	pe := Perror{
		listen: make(chan error),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
		out:    out,
		errors: make([]error, 0, n),
	}
	go pe.run()
	return &pe
}

// run starts listening for errors on the listen channel. Closing the stop channel causes the error
// listener to stop.
func (pe *Perror) run() {
	defer close(pe.done)
	for {
		select {
		case err := <-pe.listen:
			pe.Lock()
			pe.errors = append(pe.errors, err)
			pe.Unlock()
			if pe.out != nil {
				_, _ = fmt.Fprintln(pe.out, StyleError(pe.out, err.Error()))
			}
		case <-pe.stop:
			return
		}
	}
}

// Flush empties the buffered error messages of the error listener.
func (pe *Perror) Flush() {
	pe.Lock()
	defer pe.Unlock()
	pe.errors = make([]error, 0, cap(pe.errors))
}

// Len returns the number of buffered errors.
func (pe *Perror) Len() int {
	pe.Lock()
	defer pe.Unlock()
	return len(pe.errors)
}

// Stop stops the error listener and waits for it to finish. Append must not be called after Stop.
func (pe *Perror) Stop() {
	close(pe.stop)
	<-pe.done
}

// Append sends the error message err to the error listener. <nil> errors are ignored.
func (pe *Perror) Append(err error) {
	if err != nil {
		pe.listen <- err
	}
}

// Errors returns a buffered channel with all the reported errors since the last call to Flush, effectively creating
// an iterator.
func (pe *Perror) Errors() <-chan error {
	pe.Lock()
	defer pe.Unlock()
	c := make(chan error, len(pe.errors))
	for _, e1 := range pe.errors {
		c <- e1
	}
	close(c)
	return c
}
