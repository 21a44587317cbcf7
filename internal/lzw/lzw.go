// Package lzw implements the dictionary half of the hybrid compressor: a
// 16-bit-code LZW encoder/decoder with an in-band CLEAR reset when the
// dictionary saturates.
package lzw

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// clearCode resets the dictionary mid-stream.
	clearCode = 256
	// firstLearnedCode is where phrase codes begin after the 0..255
	// literals and the clear code.
	firstLearnedCode = 257
	// maxDictSize is one past the highest code LZW may ever assign,
	// reserving 65535 as out-of-band / never emitted.
	maxDictSize = 65535
)

// ErrMalformedLZW is returned by Decode when a code is out of range for the
// current dictionary state.
var ErrMalformedLZW = errors.New("lzw: malformed code stream")

type phrase struct {
	prefix uint16
	b      byte
}

// Encode produces a little-endian sequence of u16 codes from data. Empty
// input yields empty output; a single byte yields the one code for it.
func Encode(data []byte) []byte {
	if len(data) == 0 {
		return nil
	}

	dict := make(map[phrase]uint16)
	nextCode := uint16(firstLearnedCode)

	codes := make([]uint16, 0, len(data))
	w := uint16(data[0])

	for i := 1; i < len(data); i++ {
		c := data[i]
		key := phrase{w, c}
		if code, ok := dict[key]; ok {
			w = code
			continue
		}

		codes = append(codes, w)

		if int(nextCode) < maxDictSize {
			dict[key] = nextCode
			nextCode++
		} else {
			// Dictionary full: emit w (already appended above), then
			// CLEAR, then reset and continue with w := c. Encoder and
			// decoder must agree on this exact ordering.
			codes = append(codes, clearCode)
			dict = make(map[phrase]uint16)
			nextCode = firstLearnedCode
		}

		w = uint16(c)
	}
	codes = append(codes, w)

	out := make([]byte, 2*len(codes))
	for i, code := range codes {
		binary.LittleEndian.PutUint16(out[2*i:], code)
	}
	return out
}

// Decode reverses Encode. payload must hold an even number of bytes, each
// pair a little-endian u16 code.
func Decode(payload []byte) ([]byte, error) {
	if len(payload) == 0 {
		return nil, nil
	}
	if len(payload)%2 != 0 {
		return nil, fmt.Errorf("lzw: payload length %d is not a multiple of 2: %w", len(payload), ErrMalformedLZW)
	}

	codes := make([]uint16, len(payload)/2)
	for i := range codes {
		codes[i] = binary.LittleEndian.Uint16(payload[2*i:])
	}

	dict := newDictionary()
	nextCode := uint16(firstLearnedCode)

	var out []byte
	i := 0
	for i < len(codes) && codes[i] == clearCode {
		i++
	}
	if i >= len(codes) {
		return out, nil
	}

	old := codes[i]
	i++
	if int(old) >= len(dict) {
		return nil, fmt.Errorf("lzw: initial code %d out of range: %w", old, ErrMalformedLZW)
	}
	out = append(out, dict[old]...)

	for ; i < len(codes); i++ {
		c := codes[i]

		if c == clearCode {
			dict = newDictionary()
			nextCode = firstLearnedCode
			i++
			if i >= len(codes) {
				break
			}
			old = codes[i]
			if int(old) >= len(dict) {
				return nil, fmt.Errorf("lzw: code %d after CLEAR out of range: %w", old, ErrMalformedLZW)
			}
			out = append(out, dict[old]...)
			continue
		}

		var entry []byte
		switch {
		case int(c) < len(dict):
			entry = dict[c]
		case c == nextCode:
			prev := dict[old]
			entry = append(append([]byte(nil), prev...), prev[0])
		default:
			return nil, fmt.Errorf("lzw: code %d exceeds next_code %d: %w", c, nextCode, ErrMalformedLZW)
		}

		out = append(out, entry...)

		if int(nextCode) < maxDictSize {
			prev := dict[old]
			learned := append(append([]byte(nil), prev...), entry[0])
			dict = append(dict, learned)
			nextCode++
		}

		old = c
	}

	return out, nil
}

// newDictionary returns the initial 256 single-byte entries plus a
// placeholder at index 256 (the clear code never resolves to a string).
func newDictionary() [][]byte {
	dict := make([][]byte, firstLearnedCode)
	for i := 0; i < 256; i++ {
		dict[i] = []byte{byte(i)}
	}
	return dict
}
