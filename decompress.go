package dblspace

import (
	"fmt"
	"io"
	"math/bits"
)

// Header is the fixed 4-byte prefix of a compressed cluster.
type Header struct {
	Signature uint16 // Always Signature once validated.
	Version   uint16 // Format version, stored big-endian.
}

// Result describes a successful decode.
type Result struct {
	Version uint16 // Version from the stream header.
	Length  int    // Number of bytes written to the output.
}

// ReadHeader validates the signature of src and returns its header
// without decoding the command stream.
func ReadHeader(src []byte) (Header, error) {
	return readHeader(NewBitReader(src))
}

func readHeader(r *BitReader) (Header, error) {
	sig, err := r.ReadBits(signatureBits)
	if err != nil {
		return Header{}, err
	}
	if sig != Signature {
		return Header{}, fmt.Errorf("%w: got 0x%04x, want 0x%04x", ErrUnsupportedFormat, sig, Signature)
	}

	raw, err := r.ReadBits(versionBits)
	if err != nil {
		return Header{}, err
	}

	// Unlike every other field, the version is stored most significant byte first.
	return Header{Signature: sig, Version: bits.ReverseBytes16(raw)}, nil
}

// DecompressInto decodes the cluster in src into dst, whose length is the
// output capacity. On error the contents of dst are undefined and must be
// discarded.
func DecompressInto(dst, src []byte) (Result, error) {
	r := NewBitReader(src)
	hdr, err := readHeader(r)
	if err != nil {
		return Result{}, err
	}

	d := decoder{br: r, dst: dst}
	n, err := d.run()
	if err != nil {
		return Result{}, err
	}

	return Result{Version: hdr.Version, Length: n}, nil
}

// DecompressBlock decodes one cluster from the beginning of src into dst and
// returns the number of input bytes the cluster occupies. Unlike
// DecompressInto, bytes after the cluster are ignored: a sync marker off a
// sector boundary ends the stream, and when decoding fails past an aligned
// sync marker the stream is taken to end at that marker.
func DecompressBlock(dst, src []byte) (Result, int, error) {
	r := NewBitReader(src)
	hdr, err := readHeader(r)
	if err != nil {
		return Result{}, 0, err
	}

	d := decoder{br: r, dst: dst, trailing: true}
	n, err := d.run()
	if err != nil {
		return Result{}, 0, err
	}

	used := (len(src)*8 - d.left + 7) / 8
	return Result{Version: hdr.Version, Length: n}, used, nil
}

// Decompress decodes src into a new buffer of Options.OutputCapacity bytes
// and returns the decoded prefix. Options nil means DefaultOptions().
func Decompress(src []byte, opts *Options) ([]byte, Result, error) {
	opts, err := opts.normalize()
	if err != nil {
		return nil, Result{}, err
	}

	out := make([]byte, opts.OutputCapacity)
	res, err := DecompressInto(out, src)
	if err != nil {
		return nil, Result{}, err
	}

	return out[:res.Length], res, nil
}

// DecompressFromReader reads one compressed cluster from r, up to
// Options.MaxInputSize bytes, and decodes it. It also returns the number
// of bytes consumed from r.
func DecompressFromReader(r io.Reader, opts *Options) ([]byte, Result, int64, error) {
	if r == nil {
		return nil, Result{}, 0, ErrNilReader
	}

	opts, err := opts.normalize()
	if err != nil {
		return nil, Result{}, 0, err
	}

	src, consumed, err := readInput(r, opts.MaxInputSize)
	if err != nil {
		return nil, Result{}, consumed, err
	}

	out, res, err := Decompress(src, opts)
	if err != nil {
		return nil, Result{}, consumed, err
	}

	return out, res, consumed, nil
}
