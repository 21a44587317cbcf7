package huffman

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHuffmanCompressDecompress(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{name: "Empty", content: []byte("")},
		{name: "Single byte", content: []byte("A")},
		{name: "All same byte", content: []byte("AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")},
		{name: "Simple ASCII", content: []byte("aaaaabbbbcccdde")},
		{name: "Binary data", content: []byte{0x00, 0xFF, 0xAB, 0xAB, 0xAB, 0x01, 0x02, 0x03}},
		{name: "Long repetitive", content: []byte("hello world! hello world! hello world! hello world!")},
		{name: "Full alphabet", content: fullAlphabet()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			compressed := HuffmanCompress(tt.content)
			require.GreaterOrEqual(t, len(compressed), 5, "header is at least 5 bytes")

			decompressed, err := HuffmanDecompress(compressed)
			require.NoError(t, err)
			if len(tt.content) == 0 {
				assert.Empty(t, decompressed)
				return
			}
			assert.Equal(t, tt.content, decompressed)
		})
	}
}

func TestHuffmanHeaderDeterminism(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")
	a := HuffmanCompress(data)
	b := HuffmanCompress(data)
	assert.Equal(t, a, b, "two independent encodes must be byte-identical")
}

func TestHuffmanEmptyInput(t *testing.T) {
	out := HuffmanCompress(nil)
	assert.Equal(t, []byte{0, 0, 0, 0, 0}, out)

	decoded, err := HuffmanDecompress(out)
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestHuffmanDecodeTruncatedHeader(t *testing.T) {
	_, err := HuffmanDecompress([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func fullAlphabet() []byte {
	data := make([]byte, 0, 256*3)
	for i := 0; i < 256; i++ {
		// Vary frequency so the tree has non-trivial, unequal code lengths.
		reps := 1 + i%5
		for r := 0; r < reps; r++ {
			data = append(data, byte(i))
		}
	}
	return data
}
