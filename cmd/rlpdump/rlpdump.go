package main

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/wireforge/rlpwire/pkg/rlp"
)

var version string

func main() {
	var showHelp bool
	var showVersion bool
	var file string
	var check bool
	var verbose bool

	flag.StringVarP(&file, "file", "f", "", "Read the hex-encoded item from a file instead of the argument or stdin")
	flag.BoolVar(&check, "check", false, "Re-encode the decoded tree and verify byte identity with the input")
	flag.BoolVar(&verbose, "verbose", false, "Log additional information")
	flag.BoolVarP(&showHelp, "help", "h", false, "Print usage information (this message) and quit")
	flag.BoolVarP(&showVersion, "version", "v", false, "Print version information and quit")
	flag.Usage = showUsageAndExit
	flag.Parse()

	if showHelp {
		showUsageAndExit()
	}
	if showVersion {
		showVersionAndExit()
	}

	al := zap.NewAtomicLevel()
	if verbose {
		al.SetLevel(zap.DebugLevel)
	}
	ec := zap.NewDevelopmentEncoderConfig()
	logger := zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(os.Stderr), al))
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	data, err := readInput(file)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}
	log.Debugf("Read %d bytes", len(data))

	v, err := rlp.Decode(data)
	if err != nil {
		log.Fatalf("Failed to decode: %v", err)
	}
	if check {
		if encoded := rlp.Encode(v); !bytes.Equal(encoded, data) {
			log.Fatalf("Round-trip mismatch: re-encoded to %x", encoded)
		}
		log.Debug("Round-trip verified")
	}
	printValue(os.Stdout, v, 0)
}

func readInput(file string) ([]byte, error) {
	var text string
	switch {
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, err
		}
		text = string(b)
	case flag.NArg() > 0:
		text = flag.Arg(0)
	default:
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, err
		}
		text = string(b)
	}
	text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "0x"))
	data, err := hex.DecodeString(text)
	if err != nil {
		return nil, errors.Wrap(err, "invalid hex input")
	}
	return data, nil
}

func printValue(w io.Writer, v rlp.Value, indent int) {
	pad := strings.Repeat("  ", indent)
	if !v.IsList() {
		b, _ := v.Bytes()
		if len(b) == 0 {
			fmt.Fprintf(w, "%s\"\"\n", pad)
			return
		}
		if isPrintable(b) {
			fmt.Fprintf(w, "%s%q\n", pad, b)
			return
		}
		fmt.Fprintf(w, "%s0x%x\n", pad, b)
		return
	}
	elems, _ := v.Elems()
	fmt.Fprintf(w, "%s[\n", pad)
	for _, e := range elems {
		printValue(w, e, indent+1)
	}
	fmt.Fprintf(w, "%s]\n", pad)
}

func isPrintable(b []byte) bool {
	for _, c := range b {
		if c < 0x20 || c > 0x7e {
			return false
		}
	}
	return true
}

func showUsageAndExit() {
	_, _ = fmt.Fprintf(os.Stderr, "\nUsage of rlpdump [flags] [hex-string]\n")
	flag.PrintDefaults()
	os.Exit(0)
}

func showVersionAndExit() {
	fmt.Printf("rlpdump %s\n", version)
	os.Exit(0)
}
