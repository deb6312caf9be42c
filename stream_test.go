package dblspace

import "math/bits"

// streamWriter builds compressed clusters for tests and records the bytes
// a correct decoder must produce for them.
type streamWriter struct {
	buf  []byte
	acc  byte
	nacc uint
	want []byte
}

func newStream(version uint16) *streamWriter {
	w := &streamWriter{}
	w.bits(Signature, signatureBits)
	w.bits(uint32(bits.ReverseBytes16(version)), versionBits)

	return w
}

// bits appends the low n bits of v, least significant first.
func (w *streamWriter) bits(v uint32, n uint) *streamWriter {
	for i := range n {
		w.acc |= byte((v>>i)&1) << w.nacc
		w.nacc++
		if w.nacc == 8 {
			w.buf = append(w.buf, w.acc)
			w.acc = 0
			w.nacc = 0
		}
	}

	return w
}

func (w *streamWriter) literal(b byte) *streamWriter {
	if b&0x80 != 0 {
		w.bits(tagLiteralHigh, commandBits)
	} else {
		w.bits(tagLiteralLow, commandBits)
	}
	w.bits(uint32(b&0x7F), literalBits)
	w.want = append(w.want, b)

	return w
}

func (w *streamWriter) literals(s string) *streamWriter {
	for i := 0; i < len(s); i++ {
		w.literal(s[i])
	}

	return w
}

// offset writes the command tag and the narrowest offset field for off.
func (w *streamWriter) offset(off int) *streamWriter {
	switch {
	case off < narrowOffsetBias:
		w.bits(tagStandardPair, commandBits)
		w.bits(uint32(off), standardOffsetBits)
	case off < wideOffsetBias:
		w.bits(tagExtendedPair, commandBits)
		w.bits(0, selectorBits)
		w.bits(uint32(off-narrowOffsetBias), narrowOffsetBits)
	default:
		w.bits(tagExtendedPair, commandBits)
		w.bits(1, selectorBits)
		w.bits(uint32(off-wideOffsetBias), wideOffsetBits)
	}

	return w
}

// length writes a decoded length value (copy count + 1).
func (w *streamWriter) length(l int) *streamWriter {
	n := len(lengthBase) - 1
	for int(lengthBase[n]) > l {
		n--
	}
	w.bits(0, uint(n))
	w.bits(1, 1)
	w.bits(uint32(l-int(lengthBase[n])), uint(n))

	return w
}

// backref copies count bytes from off bytes back.
func (w *streamWriter) backref(off, count int) *streamWriter {
	w.offset(off)
	w.length(count + 1)
	for range count {
		w.want = append(w.want, w.want[len(w.want)-off])
	}

	return w
}

func (w *streamWriter) sync() *streamWriter {
	return w.offset(SyncOffset)
}

// tail pads to a byte boundary with ones and adds one more byte of ones,
// leaving fewer than 16 bits after the last command.
func (w *streamWriter) tail() *streamWriter {
	for w.nacc != 0 {
		w.bits(1, 1)
	}

	return w.bits(0xFF, 8)
}

// bytes returns the stream padded with zero bits to a whole byte.
func (w *streamWriter) bytes() []byte {
	out := append([]byte(nil), w.buf...)
	if w.nacc > 0 {
		out = append(out, w.acc)
	}

	return out
}
