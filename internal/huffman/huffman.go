// Package huffman implements the entropy half of the hybrid compressor:
// frequency counting, a deterministic min-heap tree build, a
// self-describing frequency header, and MSB-first bit-packed payloads.
package huffman

import (
	"container/heap"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/kelbwah/huffmin/internal/bitio"
)

// ErrMalformedHeader is returned by HuffmanDecompress when the header is
// shorter than declared, the frequency table is truncated, or the payload
// does not decode to total_chars bytes.
var ErrMalformedHeader = errors.New("huffman: malformed header")

// headerSize is the fixed 5-byte prefix: u32 total_chars, u8 unique_chars_enc.
const headerSize = 5

// entrySize is one frequency-table row: u8 byte, u32 freq.
const entrySize = 5

// Node is either a leaf (Left == Right == nil, carrying Value/Freq) or an
// internal node (Freq is the sum of its children's).
type Node struct {
	Value       byte
	Freq        int
	Left, Right *Node
	order       int // insertion order, breaks heap ties deterministically
}

func (n *Node) isLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// freqEntry is one (value, freq) row of the ordered frequency list. Order
// matters: the encoder and decoder must build identical trees from
// identical-order lists.
type freqEntry struct {
	Value byte
	Freq  int
}

// PriorityQueue implements heap.Interface for []*Node based on Freq, with
// insertion order as the stable tie-break the teacher's MinChar rule was
// replaced with: two equal-frequency nodes always resolve the same way
// regardless of map iteration order, because the decoder rebuilds from the
// header's entries in that same fixed order.
type PriorityQueue []*Node

func (pq PriorityQueue) Len() int { return len(pq) }
func (pq PriorityQueue) Less(i, j int) bool {
	if pq[i].Freq != pq[j].Freq {
		return pq[i].Freq < pq[j].Freq
	}
	return pq[i].order < pq[j].order
}
func (pq PriorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *PriorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*Node))
}
func (pq *PriorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[:n-1]
	return item
}

// frequencyList counts byte frequencies and returns them ordered by
// ascending byte value, so two encodes of the same input always produce a
// byte-identical header.
func frequencyList(data []byte) []freqEntry {
	var counts [256]int
	for _, b := range data {
		counts[b]++
	}
	entries := make([]freqEntry, 0, 256)
	for v, f := range counts {
		if f > 0 {
			entries = append(entries, freqEntry{Value: byte(v), Freq: f})
		}
	}
	return entries
}

// buildHuffmanTree builds a Huffman tree from an ordered frequency list.
func buildHuffmanTree(entries []freqEntry) *Node {
	if len(entries) == 0 {
		return nil
	}
	if len(entries) == 1 {
		// Single-symbol corner case: synthesize a dummy sibling so the
		// real leaf gets a 1-bit code instead of a 0-bit one.
		leaf := &Node{Value: entries[0].Value, Freq: entries[0].Freq, order: 0}
		dummy := &Node{Value: entries[0].Value, Freq: 0, order: 1}
		return &Node{Freq: leaf.Freq, Left: leaf, Right: dummy}
	}

	pq := make(PriorityQueue, len(entries))
	for i, e := range entries {
		pq[i] = &Node{Value: e.Value, Freq: e.Freq, order: i}
	}
	heap.Init(&pq)

	nextOrder := len(entries)
	for pq.Len() > 1 {
		left := heap.Pop(&pq).(*Node)
		right := heap.Pop(&pq).(*Node)
		merged := &Node{
			Freq:  left.Freq + right.Freq,
			Left:  left,
			Right: right,
			order: nextOrder,
		}
		nextOrder++
		heap.Push(&pq, merged)
	}
	return heap.Pop(&pq).(*Node)
}

// code is a leaf's assigned bit pattern: the low `Length` bits of Bits,
// most significant bit first.
type code struct {
	Bits   uint64
	Length uint
}

// generateCodes walks the tree depth-first (left = 0, right = 1) and
// records each leaf's code.
func generateCodes(root *Node, codeMap map[byte]code) {
	var walk func(n *Node, bits uint64, length uint)
	walk = func(n *Node, bits uint64, length uint) {
		if n == nil {
			return
		}
		if n.isLeaf() {
			l := length
			if l == 0 {
				l = 1
			}
			codeMap[n.Value] = code{Bits: bits, Length: l}
			return
		}
		walk(n.Left, bits<<1, length+1)
		walk(n.Right, bits<<1|1, length+1)
	}
	walk(root, 0, 0)
}

// encodeData bit-packs data MSB-first using codeMap and flushes the
// trailing fractional byte, zero-padded in the low bits.
func encodeData(data []byte, codeMap map[byte]code) []byte {
	w := bitio.NewWriter()
	for _, b := range data {
		c := codeMap[b]
		w.WriteBits(c.Bits, c.Length)
	}
	return w.Flush()
}

// writeHeader serializes the frequency header per §4.4:
//
//	offset 0  u32 total_chars
//	offset 4  u8  unique_chars_enc (0 means 256, when total_chars > 0)
//	offset 5  K * (u8 byte, u32 freq)
func writeHeader(totalChars int, entries []freqEntry) []byte {
	header := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(header[0:4], uint32(totalChars))
	if totalChars == 0 {
		return header
	}

	uniqueEnc := len(entries)
	if uniqueEnc == 256 {
		uniqueEnc = 0
	}
	header[4] = byte(uniqueEnc)

	for _, e := range entries {
		row := make([]byte, entrySize)
		row[0] = e.Value
		binary.LittleEndian.PutUint32(row[1:5], uint32(e.Freq))
		header = append(header, row...)
	}
	return header
}

// Tree builds and returns the Huffman tree for data, for callers that only
// want the structure (e.g. visualization) rather than an encoded frame. It
// returns nil for empty input.
func Tree(data []byte) *Node {
	if len(data) == 0 {
		return nil
	}
	return buildHuffmanTree(frequencyList(data))
}

// IsLeaf reports whether n is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.isLeaf()
}

// HuffmanCompress encodes data as a frequency header followed by an
// MSB-first bit-packed payload. Empty input produces a 5-byte all-zero
// header and no payload.
func HuffmanCompress(data []byte) []byte {
	if len(data) == 0 {
		return writeHeader(0, nil)
	}

	entries := frequencyList(data)
	root := buildHuffmanTree(entries)

	codeMap := make(map[byte]code, len(entries))
	generateCodes(root, codeMap)

	header := writeHeader(len(data), entries)
	encoded := encodeData(data, codeMap)

	out := make([]byte, 0, len(header)+len(encoded))
	out = append(out, header...)
	out = append(out, encoded...)
	return out
}

// HuffmanDecompress reverses HuffmanCompress, reporting ErrMalformedHeader
// on a truncated header, frequency table, or payload.
func HuffmanDecompress(blob []byte) ([]byte, error) {
	if len(blob) < headerSize {
		return nil, fmt.Errorf("huffman: header needs %d bytes, got %d: %w", headerSize, len(blob), ErrMalformedHeader)
	}

	totalChars := binary.LittleEndian.Uint32(blob[0:4])
	if totalChars == 0 {
		return nil, nil
	}

	uniqueEnc := int(blob[4])
	k := uniqueEnc
	if uniqueEnc == 0 {
		k = 256
	}

	need := headerSize + entrySize*k
	if len(blob) < need {
		return nil, fmt.Errorf("huffman: frequency table needs %d bytes, got %d: %w", need, len(blob), ErrMalformedHeader)
	}

	entries := make([]freqEntry, k)
	for i := 0; i < k; i++ {
		off := headerSize + entrySize*i
		entries[i] = freqEntry{
			Value: blob[off],
			Freq:  int(binary.LittleEndian.Uint32(blob[off+1 : off+5])),
		}
	}

	root := buildHuffmanTree(entries)
	if root == nil {
		return nil, fmt.Errorf("huffman: empty frequency table for nonzero total_chars: %w", ErrMalformedHeader)
	}

	r := bitio.NewReader(blob[need:])
	out := make([]byte, 0, totalChars)
	node := root
	for uint32(len(out)) < totalChars {
		bit := r.ReadBit()
		if bit < 0 {
			return nil, fmt.Errorf("huffman: payload truncated after %d of %d bytes: %w", len(out), totalChars, ErrMalformedHeader)
		}
		if bit == 0 {
			node = node.Left
		} else {
			node = node.Right
		}
		if node == nil {
			return nil, fmt.Errorf("huffman: bit stream walked off the tree: %w", ErrMalformedHeader)
		}
		if node.isLeaf() {
			out = append(out, node.Value)
			node = root
		}
	}
	return out, nil
}
