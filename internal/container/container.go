// Package container implements the three-way minimum-size selector that
// binds the LZW and Huffman stages into a single self-describing frame: one
// flag byte followed by a payload whose interpretation depends on it.
package container

import (
	"errors"
	"fmt"

	"github.com/kelbwah/huffmin/internal/huffman"
	"github.com/kelbwah/huffmin/internal/lzw"
)

// Flag byte values, written as the first byte of every container frame.
const (
	FlagHuffmanOnly byte = 0x00
	FlagHybrid      byte = 0x01
	FlagIdentity    byte = 0x02
)

// ErrUnknownFlag is returned by Decompress when the leading flag byte isn't
// one of FlagHuffmanOnly, FlagHybrid, or FlagIdentity.
var ErrUnknownFlag = errors.New("container: unknown flag byte")

// Compress chooses among {raw, Huffman-only, LZW+Huffman} and returns the
// chosen representation, prepended with its flag byte. The Huffman stage
// runs over the LZW payload when that payload is shorter than the input,
// and over the raw input otherwise; the framed result is kept only when it
// is shorter than the input, else the input is stored raw. Huffman-only is
// not tried when LZW shrinks the input, so the result is not always the
// smallest of the three. The output is never larger than len(input)+1.
func Compress(input []byte) []byte {
	n := len(input)

	lzwPayload := lzw.Encode(input)
	useLZW := len(lzwPayload) < n
	src := input
	if useLZW {
		src = lzwPayload
	}

	huff := huffman.HuffmanCompress(src)
	framedSize := 1 + len(huff)

	if framedSize < n {
		flag := FlagHuffmanOnly
		if useLZW {
			flag = FlagHybrid
		}
		out := make([]byte, 0, framedSize)
		out = append(out, flag)
		out = append(out, huff...)
		return out
	}

	out := make([]byte, 0, n+1)
	out = append(out, FlagIdentity)
	out = append(out, input...)
	return out
}

// Decompress reads the flag byte and dispatches: identity copies the
// remainder verbatim; Huffman-only and hybrid Huffman-decode the remainder,
// with hybrid additionally LZW-decoding the result.
func Decompress(input []byte) ([]byte, error) {
	if len(input) == 0 {
		return nil, nil
	}

	flag := input[0]
	rest := input[1:]

	switch flag {
	case FlagIdentity:
		out := make([]byte, len(rest))
		copy(out, rest)
		return out, nil

	case FlagHuffmanOnly:
		decoded, err := huffman.HuffmanDecompress(rest)
		if err != nil {
			return nil, fmt.Errorf("container: huffman-only payload: %w", err)
		}
		return decoded, nil

	case FlagHybrid:
		huffDecoded, err := huffman.HuffmanDecompress(rest)
		if err != nil {
			return nil, fmt.Errorf("container: hybrid payload (huffman stage): %w", err)
		}
		lzwDecoded, err := lzw.Decode(huffDecoded)
		if err != nil {
			return nil, fmt.Errorf("container: hybrid payload (lzw stage): %w", err)
		}
		return lzwDecoded, nil

	default:
		return nil, fmt.Errorf("container: flag 0x%02x: %w", flag, ErrUnknownFlag)
	}
}
