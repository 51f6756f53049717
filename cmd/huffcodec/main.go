// Command huffcodec compresses files with a static Huffman code.
//
// Usage:
//
//	huffcodec encode -in FILE -out FILE [-compression none|s2|zstd|lz4]
//	huffcodec decode -in FILE -out FILE
//	huffcodec roundtrip -in FILE [-compression ...]
//	huffcodec stats -in FILE
//
// The default body compression is taken from $HUFFCODEC_COMPRESSION.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	huffman "github.com/chronos-tachyon/huffcodec"
	"github.com/chronos-tachyon/huffcodec/container"
	"github.com/chronos-tachyon/huffcodec/internal/logger"
)

const compressionEnv = "HUFFCODEC_COMPRESSION"

const usage = `usage: huffcodec <command> [flags]

commands:
  encode     compress -in into the container file -out
  decode     restore the container file -in into -out
  roundtrip  encode -in, persist it, read it back and compare
  stats      print the code table and compression statistics for -in
`

var errMismatch = errors.New("round trip mismatch")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type config struct {
	in          string
	out         string
	compression container.Compression
	verbose     bool
}

// parseFlags parses a subcommand's flags.  -out is only registered for
// commands that write an output file, and -compression only for commands
// that write a container.
func parseFlags(name string, args []string, stderr io.Writer, needOut, writesContainer bool) (config, error) {
	var cfg config
	var compression string

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.in, "in", "", "input file")
	if needOut {
		fs.StringVar(&cfg.out, "out", "", "output file")
	}
	if writesContainer {
		fs.StringVar(&compression, "compression", os.Getenv(compressionEnv), "container body compression: none, s2, zstd or lz4")
	}
	fs.BoolVar(&cfg.verbose, "v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.in == "" {
		return cfg, fmt.Errorf("%s: -in is required", name)
	}
	if needOut && cfg.out == "" {
		return cfg, fmt.Errorf("%s: -out is required", name)
	}
	c, err := container.ParseCompression(compression)
	if err != nil {
		return cfg, err
	}
	cfg.compression = c
	return cfg, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	var (
		cmd             func(config, logger.Logger, io.Writer) error
		needOut         bool
		writesContainer bool
	)
	switch args[0] {
	case "encode":
		cmd, needOut, writesContainer = encodeFile, true, true
	case "decode":
		cmd, needOut = decodeFile, true
	case "roundtrip":
		cmd, writesContainer = roundTrip, true
	case "stats":
		cmd = printStats
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	cfg, err := parseFlags(args[0], args[1:], stderr, needOut, writesContainer)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	log := logger.New(stderr, cfg.verbose)
	if err := cmd(cfg, log, stdout); err != nil {
		log.Errorf("%s: %v", args[0], err)
		return 1
	}
	return 0
}

func encodeFile(cfg config, log logger.Logger, _ io.Writer) error {
	data, err := os.ReadFile(cfg.in)
	if err != nil {
		return err
	}
	log.Debugf("read %d bytes from %s", len(data), cfg.in)

	a := huffman.Encode(data)
	if err := container.WriteFile(cfg.out, a, container.WithCompression(cfg.compression)); err != nil {
		return err
	}
	log.Infof("encoded %s (%d bytes, %d symbols) to %s (%d payload bits)", cfg.in, len(data), len(a.Table), cfg.out, a.Payload.BitLength)
	return nil
}

func decodeFile(cfg config, log logger.Logger, _ io.Writer) error {
	a, err := container.ReadFile(cfg.in)
	if err != nil {
		return err
	}
	data, err := huffman.Decode(a)
	if err != nil {
		return fmt.Errorf("%s: %w", cfg.in, err)
	}
	if err := os.WriteFile(cfg.out, data, 0o644); err != nil {
		return err
	}
	log.Infof("decoded %s to %s (%d bytes)", cfg.in, cfg.out, len(data))
	return nil
}

func roundTrip(cfg config, log logger.Logger, stdout io.Writer) error {
	data, err := os.ReadFile(cfg.in)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "huffcodec-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, filepath.Base(cfg.in)+".huf")
	if err := container.WriteFile(path, huffman.Encode(data), container.WithCompression(cfg.compression)); err != nil {
		return err
	}
	log.Debugf("wrote container to %s", path)

	a, err := container.ReadFile(path)
	if err != nil {
		return err
	}
	decoded, err := huffman.Decode(a)
	if err != nil {
		return err
	}

	ok := bytes.Equal(data, decoded)
	fmt.Fprintln(stdout, ok)
	if !ok {
		return errMismatch
	}
	return nil
}

func printStats(cfg config, _ logger.Logger, stdout io.Writer) error {
	data, err := os.ReadFile(cfg.in)
	if err != nil {
		return err
	}

	var e huffman.Encoder
	if err := e.Init(huffman.Analyze(data)); err != nil {
		return err
	}
	if _, err := e.Dump(stdout); err != nil {
		return err
	}

	s := huffman.ComputeStats(data, huffman.Encode(data))
	fmt.Fprintf(stdout, "input bytes:      %d\n", s.InputBytes)
	fmt.Fprintf(stdout, "packed bytes:     %d\n", s.PackedBytes)
	fmt.Fprintf(stdout, "payload bits:     %d\n", s.BitLength)
	fmt.Fprintf(stdout, "distinct symbols: %d\n", s.DistinctSymbols)
	fmt.Fprintf(stdout, "code sizes:       %d..%d\n", s.ShortestCode, s.LongestCode)
	fmt.Fprintf(stdout, "entropy:          %.4f bits/symbol\n", s.Entropy)
	fmt.Fprintf(stdout, "achieved:         %.4f bits/symbol\n", s.BitsPerSymbol)
	fmt.Fprintf(stdout, "ratio:            %.4f\n", s.Ratio())
	return nil
}
