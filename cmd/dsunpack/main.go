// dsunpack decodes one DoubleSpace compressed cluster.
//
// The cluster is read from a file or stdin. For clusters inside a
// compressed volume image, --offset and --length select the byte range;
// locating clusters through the volume's MDFAT is left to the caller.
// Images archived as .zst or .lz4 are decompressed on the fly.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"

	"github.com/woozymasta/dblspace"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	output     string
	offset     int64
	length     int64
	capacity   int
	digest     bool
	headerOnly bool
	verbose    bool
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cfg config

	flagSet := pflag.NewFlagSet("dsunpack", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&cfg.output, "output", "o", "", "write decoded data to this file (default: stdout)")
	flagSet.Int64Var(&cfg.offset, "offset", 0, "byte offset of the compressed cluster in the input")
	flagSet.Int64Var(&cfg.length, "length", 0, "compressed cluster size in bytes (default: up to the end-of-stream marker)")
	flagSet.IntVar(&cfg.capacity, "capacity", dblspace.DefaultOutputCapacity, "output buffer size in bytes")
	flagSet.BoolVar(&cfg.digest, "digest", false, "print the BLAKE3-256 digest of the decoded data instead of the data")
	flagSet.BoolVar(&cfg.headerOnly, "header-only", false, "print the cluster signature and version without decoding")
	flagSet.BoolVarP(&cfg.verbose, "verbose", "v", false, "log decoding details to stderr")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(stderr, flagSet)
			return nil
		}
		return err
	}

	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return nil
	}

	positional := flagSet.Args()
	if len(positional) > 1 {
		return fmt.Errorf("unexpected argument: %s", positional[1])
	}
	if cfg.offset < 0 || cfg.length < 0 || cfg.capacity < 0 {
		return errors.New("--offset, --length and --capacity must be non-negative")
	}

	inputPath := "-"
	if len(positional) == 1 {
		inputPath = positional[0]
	}

	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	input, cleanup, err := openInput(inputPath, stdin)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := skip(input, cfg.offset); err != nil {
		return fmt.Errorf("seeking to offset %d: %w", cfg.offset, err)
	}
	if cfg.length > 0 {
		input = io.LimitReader(input, cfg.length)
	}

	if cfg.headerOnly {
		return printHeader(stdout, input)
	}

	out, res, consumed, err := decodeCluster(input, cfg)
	if err != nil {
		return fmt.Errorf("decompressing cluster at offset %d: %w", cfg.offset, err)
	}

	logger.Debug("decoded cluster",
		"input", inputPath,
		"offset", cfg.offset,
		"compressed", consumed,
		"decoded", res.Length,
		"version", fmt.Sprintf("0x%04x", res.Version),
	)

	if cfg.digest {
		sum := blake3.Sum256(out)
		_, err := fmt.Fprintf(stdout, "%s  %d\n", hex.EncodeToString(sum[:]), len(out))
		return err
	}

	if cfg.output == "" {
		_, err := stdout.Write(out)
		return err
	}
	if err := os.WriteFile(cfg.output, out, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.output, err)
	}
	logger.Info("wrote decoded cluster", "path", cfg.output, "bytes", len(out))

	return nil
}

// decodeCluster decodes the cluster at the start of input. With a known
// length the whole range must be the cluster; otherwise a window of
// DefaultMaxInputSize bytes is read and anything after the cluster is
// ignored.
func decodeCluster(input io.Reader, cfg config) ([]byte, dblspace.Result, int64, error) {
	if cfg.length > 0 {
		opts := &dblspace.Options{OutputCapacity: cfg.capacity, MaxInputSize: cfg.length}
		out, res, consumed, err := dblspace.DecompressFromReader(input, opts)
		if err != nil {
			return nil, res, consumed, err
		}
		if consumed < cfg.length {
			return nil, res, consumed, fmt.Errorf("input ends %d bytes into a %d-byte cluster", consumed, cfg.length)
		}
		return out, res, consumed, nil
	}

	window, err := io.ReadAll(io.LimitReader(input, dblspace.DefaultMaxInputSize))
	if err != nil {
		return nil, dblspace.Result{}, 0, err
	}

	capacity := cfg.capacity
	if capacity == 0 {
		capacity = dblspace.DefaultOutputCapacity
	}
	dst := make([]byte, capacity)
	res, used, err := dblspace.DecompressBlock(dst, window)
	if err != nil {
		return nil, res, 0, err
	}

	return dst[:res.Length], res, int64(used), nil
}

func printHeader(stdout io.Writer, input io.Reader) error {
	buf := make([]byte, 4)
	if _, err := io.ReadFull(input, buf); err != nil {
		return fmt.Errorf("reading cluster header: %w", err)
	}

	hdr, err := dblspace.ReadHeader(buf)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(stdout, "signature=0x%04x version=0x%04x\n", hdr.Signature, hdr.Version)
	return err
}

func printHelp(stderr io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprintf(stderr, `dsunpack decodes one DoubleSpace compressed cluster.

Reads the cluster from FILE, or stdin when FILE is "-" or absent. Inputs
named *.zst or *.lz4 are decompressed first, so archived volume images
can be read directly. Use --offset and --length to pick a cluster out of
an image. Without --length, the cluster ends at its end-of-stream marker
and any bytes after it are ignored.

Usage: dsunpack [flags] [FILE]

Flags:
`)
	flagSet.PrintDefaults()
}
