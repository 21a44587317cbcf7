// Package engine is the file-facing boundary around the compression core:
// it owns the InputEmpty sentinel and the only I/O the engine ever does,
// reading a whole input into memory and writing a whole output back out.
package engine

import (
	"errors"
	"fmt"
	"io"

	"github.com/kelbwah/huffmin/internal/container"
)

// ErrInputEmpty is returned by CompressFile when the caller supplies zero
// bytes; no output is produced.
var ErrInputEmpty = errors.New("engine: input is empty")

// Compress produces a full container frame for data. It never errors: the
// selector in internal/container always has a representation to return.
func Compress(data []byte) []byte {
	return container.Compress(data)
}

// Decompress is the inverse of Compress.
func Decompress(data []byte) ([]byte, error) {
	out, err := container.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("engine: decompress: %w", err)
	}
	return out, nil
}

// CompressFile reads all of r, compresses it, and writes the container
// frame to w. Zero-byte input is rejected with ErrInputEmpty and nothing is
// written to w.
func CompressFile(w io.Writer, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("engine: read input: %w", err)
	}
	if len(data) == 0 {
		return ErrInputEmpty
	}

	if _, err := w.Write(Compress(data)); err != nil {
		return fmt.Errorf("engine: write output: %w", err)
	}
	return nil
}

// DecompressFile reads a container frame from r and writes the recovered
// bytes to w.
func DecompressFile(w io.Writer, r io.Reader) error {
	blob, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("engine: read input: %w", err)
	}

	data, err := Decompress(blob)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("engine: write output: %w", err)
	}
	return nil
}
