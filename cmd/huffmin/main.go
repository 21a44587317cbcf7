// Command huffmin compresses or decompresses a single file from the
// command line: `huffmin <input> <output>`. Flags add decompress mode, a
// simulate/info summary, stdout output, and a force-overwrite switch.
package main

import (
	"errors"
	"fmt"
	"os"

	"rsc.io/getopt"

	"golang.org/x/term"

	"flag"

	"github.com/kelbwah/huffmin/internal/engine"
	"github.com/kelbwah/huffmin/internal/simulate"
)

var (
	decompress = flag.Bool("decompress", false, "decompress instead of compress")
	info       = flag.Bool("info", false, "print a simulate report instead of writing a file")
	toStdout   = flag.Bool("stdout", false, "write output to stdout")
	force      = flag.Bool("force", false, "overwrite an existing output file")
)

func run() int {
	if len(flag.Args()) != 2 {
		fmt.Fprintf(os.Stderr, "usage: huffmin [flags] <input> <output>\n")
		return 2
	}
	inPath, outPath := flag.Args()[0], flag.Args()[1]

	inData, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", inPath, err)
		return 3
	}

	if *info {
		report, err := simulate.Run(inData)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", inPath, err)
			return 9
		}
		fmt.Printf("original        %d\n", report.OriginalSize)
		fmt.Printf("huffman-only    %d\n", report.HuffmanOnlySize)
		fmt.Printf("lzw-only        %d\n", report.LZWOnlySize)
		fmt.Printf("hybrid          %d\n", report.HybridSize)
		fmt.Printf("selected mode   %s\n", report.SelectedMode)
		return 0
	}

	var outData []byte
	if *decompress {
		outData, err = engine.Decompress(inData)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", inPath, err)
			if errors.Is(err, engine.ErrInputEmpty) {
				return 4
			}
			return 5
		}
	} else {
		if len(inData) == 0 {
			fmt.Fprintf(os.Stderr, "%s: %v\n", inPath, engine.ErrInputEmpty)
			return 4
		}
		outData = engine.Compress(inData)
	}

	if *toStdout {
		if term.IsTerminal(int(os.Stdout.Fd())) && !*decompress {
			fmt.Fprintf(os.Stderr, "huffmin: refusing to write compressed data to a terminal\n")
			return 6
		}
		if _, err := os.Stdout.Write(outData); err != nil {
			fmt.Fprintf(os.Stderr, "stdout: %v\n", err)
			return 7
		}
		return 0
	}

	if !*force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(os.Stderr, "%s: already exists\n", outPath)
			return 8
		}
	}

	if err := os.WriteFile(outPath, outData, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", outPath, err)
		return 7
	}
	return 0
}

func main() {
	getopt.Alias("d", "decompress")
	getopt.Alias("i", "info")
	getopt.Alias("c", "stdout")
	getopt.Alias("f", "force")

	if err := getopt.CommandLine.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	os.Exit(run())
}
