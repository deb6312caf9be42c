package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var errOffsetPastEnd = errors.New("offset is past the end of the input")

// openInput opens path ("-" for stdin). Files with a .zst or .lz4
// extension are wrapped in the matching stream decoder.
func openInput(path string, stdin io.Reader) (io.Reader, func(), error) {
	if path == "-" {
		return stdin, func() {}, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		decoder, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, fmt.Errorf("zstd reader for %s: %w", path, err)
		}
		return decoder, func() {
			decoder.Close()
			file.Close()
		}, nil

	case ".lz4":
		return lz4.NewReader(file), func() { file.Close() }, nil

	default:
		return file, func() { file.Close() }, nil
	}
}

// skip advances r by n bytes, seeking when r supports it. An offset at or
// beyond the end of a regular file is rejected.
func skip(r io.Reader, n int64) error {
	if n == 0 {
		return nil
	}

	if seeker, ok := r.(io.Seeker); ok {
		if pos, err := seeker.Seek(n, io.SeekCurrent); err == nil {
			return checkSize(r, pos)
		}
		// Pipes report a Seek error; fall back to reading.
	}

	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		if errors.Is(err, io.EOF) {
			return errOffsetPastEnd
		}
		return err
	}

	return nil
}

// checkSize fails when pos is not inside the regular file behind r.
func checkSize(r io.Reader, pos int64) error {
	file, ok := r.(interface{ Stat() (os.FileInfo, error) })
	if !ok {
		return nil
	}

	info, err := file.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return nil
	}
	if pos >= info.Size() {
		return fmt.Errorf("%w: offset %d, size %d", errOffsetPastEnd, pos, info.Size())
	}

	return nil
}
