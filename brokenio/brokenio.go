// brokenio wraps readers and writers so they fail when we want them
// to. It is only used for testing.
// Typical use: You have a file pointer or a reader from a compressed
// source. You write
//   rdr = brokenio.NewReader(rdr)
// and everything functions as before, but with artificial errors.
// For writers, SetFailAfter(n) lets the first n bytes through and then
// returns ErrBroken.
// When we introduce a failure on the first read, we return io.EOF
// without any data. This is what one often sees on a zero length file.

package brokenio

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
)

// ErrBroken is the error returned by a deliberate failure.
var ErrBroken = errors.New("brokenio: deliberate failure")

const never = -1

// A Reader is modelled on the various Readers in the standard library,
// but with variables controlling the frequency of errors.
// Probabilities are fractions, so 0.05 means failure in 5% of the calls.
// If verbose is true, print out the amount of data when the file is closed.
type Reader struct {
	rdrOrig      io.Reader
	probZeroFile float32 // Probability of returning a zero length file
	probFail     float32
	fracFail     float32
	failAfter    int
	nCalled      int
	nByte        int
	verbose      bool
	closed       bool
	rnd          *rand.Rand
}

// NewReader returns a new Reader, a wrapper around the old one.
// If rIn is an io.Closer, Close will close it.
func NewReader(rIn io.Reader) *Reader {
	return &Reader{
		rdrOrig:   rIn,
		fracFail:  0.5,
		failAfter: never,
		rnd:       rand.New(rand.NewSource(1)),
	}
}

// SetVerbose sets the verbosity flag to true or false
func (r *Reader) SetVerbose(newV bool) { r.verbose = newV }

// SetFracFail sets the amount of the bytes which will be trashed
func (r *Reader) SetFracFail(frac float32) { r.fracFail = frac }

// SetProbZeroFile sets the rate at which we simply return 0 bytes on the
// first read. It must be a value from 0 to 1. We do not check if the
// argument is valid.
func (r *Reader) SetProbZeroFile(prob float32) { r.probZeroFile = prob }

// SetProbFail set the probability of a read failure.
// It must be between zero and 1.
func (r *Reader) SetProbFail(prob float32) { r.probFail = prob }

// SetFailAfter makes the reader return ErrBroken once n bytes have
// been handed out. A negative n switches this off.
func (r *Reader) SetFailAfter(n int) { r.failAfter = n }

// SetSeed restarts the random number generator, so a test can repeat
// the same failures.
func (r *Reader) SetSeed(seed int64) { r.rnd = rand.New(rand.NewSource(seed)) }

// Closed says if Close has been called.
func (r *Reader) Closed() bool { return r.closed }

// trashSlice wipes out the second part of a slice.
// The amount to wipe out is given by a fraction, so 0.3
// will wipe out the second 30 % of a slice
func trashSlice(p []byte, frac float32) (int, error) {
	nkeep := int(float32(len(p)) * (1. - frac))
	if nkeep == len(p) {
		return nkeep, nil
	}
	err := fmt.Errorf("%w: wiped out last %d of %d", ErrBroken, len(p)-nkeep, len(p))
	clear(p[nkeep:])
	return nkeep, err
}

// Read wraps the original reader and sums up the amount of data that
// has gone through. It generates an error with a probability given by probFail.
// On the first call, we might return zero data to simulate a zero length file
// which is a rather common occurrence.
func (r *Reader) Read(p []byte) (n int, err error) {
	if len(p) == 0 {
		return 0, nil
	}
	if r.nCalled == 0 && r.probZeroFile > 0 && r.rnd.Float32() < r.probZeroFile {
		return 0, io.EOF
	}
	if r.failAfter != never {
		left := r.failAfter - r.nByte
		if left <= 0 {
			return 0, ErrBroken
		}
		if len(p) > left {
			p = p[:left]
		}
	}
	n, err = r.rdrOrig.Read(p)
	r.nCalled++
	r.nByte += n
	if r.probFail > 0 && r.fracFail > 0 && r.rnd.Float32() < r.probFail {
		return trashSlice(p[:n], r.fracFail)
	}
	return n, err
}

// Close wraps the original Close method.
func (r *Reader) Close() error {
	if r.verbose {
		fmt.Println("Closing", r.nCalled, "calls and", r.nByte, "bytes")
	}
	r.closed = true
	if c, ok := r.rdrOrig.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// A Writer passes bytes to the wrapped writer until failAfter of them
// have gone through, then fails.
type Writer struct {
	wrtOrig   io.Writer
	failAfter int
	nByte     int
	nClose    int
}

// NewWriter wraps w. It does not fail until SetFailAfter is called.
func NewWriter(w io.Writer) *Writer {
	return &Writer{wrtOrig: w, failAfter: never}
}

// SetFailAfter lets n bytes through and fails every write after that.
func (w *Writer) SetFailAfter(n int) { w.failAfter = n }

// Closed says if Close has been called at least once.
func (w *Writer) Closed() bool { return w.nClose > 0 }

// NClose is the number of calls to Close.
func (w *Writer) NClose() int { return w.nClose }

// NByte is how much has been written through to the wrapped writer.
func (w *Writer) NByte() int { return w.nByte }

func (w *Writer) Write(p []byte) (int, error) {
	if w.failAfter == never || w.nByte+len(p) <= w.failAfter {
		n, err := w.wrtOrig.Write(p)
		w.nByte += n
		return n, err
	}
	left := w.failAfter - w.nByte
	if left < 0 {
		left = 0
	}
	n, err := w.wrtOrig.Write(p[:left])
	w.nByte += n
	if err != nil {
		return n, err
	}
	return n, ErrBroken
}

// Close counts the call and closes the wrapped writer if it can be.
func (w *Writer) Close() error {
	w.nClose++
	if c, ok := w.wrtOrig.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
