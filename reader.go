package dblspace

import (
	"fmt"
	"io"
	"math"
)

// countingReader reads from a reader and counts the number of bytes read.
type countingReader struct {
	base  io.Reader // The reader to read from.
	count int64     // The number of bytes read.
}

// Read reads from the base reader and adds to the count.
func (r *countingReader) Read(p []byte) (int, error) {
	n, err := r.base.Read(p)
	r.count += int64(n)

	return n, err
}

// readInput reads r to EOF. It fails once more than limit bytes arrive
// and reports how many bytes were taken from r either way.
func readInput(r io.Reader, limit int64) ([]byte, int64, error) {
	cr := &countingReader{base: r}
	// One byte past the limit tells an oversized input from an exact fit.
	readLimit := limit
	if limit < math.MaxInt64 {
		readLimit++
	}

	src, err := io.ReadAll(io.LimitReader(cr, readLimit))
	if err != nil {
		return nil, cr.count, err
	}

	if int64(len(src)) > limit {
		return nil, cr.count, fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, limit)
	}

	return src, cr.count, nil
}
