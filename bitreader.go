package dblspace

import (
	"fmt"
	"math/bits"
)

// BitReader reads bit fields from a byte slice, least significant bit
// first. The first bit read is bit 0 of the first byte and multi-bit
// values are assembled across byte boundaries in the same order.
type BitReader struct {
	src  []byte // The compressed input.
	pos  int    // Next byte of src to load into acc.
	acc  uint32 // Prefetched bits; the next bit to read is bit 0.
	nacc uint   // Number of valid bits in acc. Bits above nacc are zero.
}

// NewBitReader returns a reader positioned at the first bit of src.
func NewBitReader(src []byte) *BitReader {
	return &BitReader{src: src}
}

// fill loads whole bytes into acc until it holds more than 24 bits or
// the input is exhausted.
func (r *BitReader) fill() {
	for r.nacc <= 24 && r.pos < len(r.src) {
		r.acc |= uint32(r.src[r.pos]) << r.nacc
		r.pos++
		r.nacc += 8
	}
}

// ReadBits consumes the next n bits and returns them as an unsigned value.
// n may be 0..MaxReadBits; a zero-width read returns 0. A failed read
// consumes nothing.
func (r *BitReader) ReadBits(n uint) (uint16, error) {
	if n > MaxReadBits {
		return 0, fmt.Errorf("%w: read of %d bits, max %d", ErrInvalidArgument, n, MaxReadBits)
	}

	if r.nacc < n {
		r.fill()
		if r.nacc < n {
			return 0, fmt.Errorf("%w: need %d bits, %d left", ErrInsufficientData, n, r.nacc)
		}
	}

	v := uint16(r.acc & (1<<n - 1))
	r.acc >>= n
	r.nacc -= n

	return v, nil
}

// Remaining returns the number of unread bits.
func (r *BitReader) Remaining() int {
	return int(r.nacc) + (len(r.src)-r.pos)*8
}

// Available reports whether ReadBits(n) would succeed.
func (r *BitReader) Available(n uint) bool {
	return n <= MaxReadBits && uint(r.Remaining()) >= n
}

// LeadingZeros counts the zero bits before the next set bit without
// consuming them. It looks at no more than limit bits. The bool is false
// when no set bit was found within limit bits or before the end of input;
// the count is then the number of zero bits scanned.
func (r *BitReader) LeadingZeros(limit int) (int, bool) {
	if limit <= 0 {
		return 0, false
	}

	r.fill()
	if r.acc != 0 {
		return clampZeros(bits.TrailingZeros32(r.acc), limit)
	}

	count := int(r.nacc)
	for i := r.pos; i < len(r.src) && count < limit; i++ {
		if b := r.src[i]; b != 0 {
			return clampZeros(count+bits.TrailingZeros8(b), limit)
		}
		count += 8
	}

	return min(count, limit), false
}

func clampZeros(zeros, limit int) (int, bool) {
	if zeros >= limit {
		return limit, false
	}

	return zeros, true
}
