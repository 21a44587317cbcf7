// Package simulate runs LZW, Huffman-only, and hybrid compression side by
// side over a single input and reports size and structural metadata for
// pedagogical inspection. It never feeds its output back into the engine:
// Run is purely diagnostic.
package simulate

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/kelbwah/huffmin/internal/container"
	"github.com/kelbwah/huffmin/internal/huffman"
	"github.com/kelbwah/huffmin/internal/lzw"
)

// ErrEmptyInput is returned by Run when given zero bytes — there is
// nothing to simulate against.
var ErrEmptyInput = errors.New("simulate: input is empty")

// TreeNode mirrors the original Python implementation's D3-friendly tree
// description: leaves name themselves by printable glyph (32..126) or a
// hex escape, internal nodes carry only the subtree's combined frequency.
type TreeNode struct {
	Name     string      `json:"name"`
	Value    int         `json:"value"`
	Children []*TreeNode `json:"children,omitempty"`
}

// Report carries per-algorithm size and structural metadata for a single
// input, enough to drive a visualization or a size comparison table.
type Report struct {
	OriginalSize    int       `json:"original_size"`
	HuffmanOnlySize int       `json:"huffman_only_size"`
	LZWOnlySize     int       `json:"lzw_only_size"`
	HybridSize      int       `json:"hybrid_size"`
	Tree            *TreeNode `json:"tree"`
	LZWCodes        []uint16  `json:"lzw_codes"`
	SelectedMode    string    `json:"selected_mode"`
}

// Run compresses data under all three strategies and reports their sizes,
// the winning container mode, the Huffman tree built over data, and the
// standalone LZW code sequence.
func Run(data []byte) (*Report, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	lzwPayload := lzw.Encode(data)
	huffOnly := huffman.HuffmanCompress(data)

	// Hybrid is always Huffman-over-LZW here, even when that's not what
	// the real selector would pick, so the simulator shows the hybrid
	// number regardless of whether it wins.
	hybridHuff := huffman.HuffmanCompress(lzwPayload)

	framed := container.Compress(data)

	codes := make([]uint16, len(lzwPayload)/2)
	for i := range codes {
		codes[i] = binary.LittleEndian.Uint16(lzwPayload[2*i:])
	}

	mode := "huffman"
	switch framed[0] {
	case container.FlagIdentity:
		mode = "raw"
	case container.FlagHybrid:
		mode = "hybrid"
	}

	return &Report{
		OriginalSize:    len(data),
		HuffmanOnlySize: len(huffOnly),
		LZWOnlySize:     len(lzwPayload),
		HybridSize:      1 + len(hybridHuff),
		Tree:            buildTreeNode(huffman.Tree(data)),
		LZWCodes:        codes,
		SelectedMode:    mode,
	}, nil
}

// buildTreeNode converts a huffman.Node tree into the JSON-friendly
// TreeNode shape, naming leaves by printable glyph or hex escape.
func buildTreeNode(n *huffman.Node) *TreeNode {
	if n == nil {
		return nil
	}
	if n.IsLeaf() {
		return &TreeNode{Name: glyphName(n.Value), Value: n.Freq}
	}
	out := &TreeNode{Value: n.Freq}
	if left := buildTreeNode(n.Left); left != nil {
		out.Children = append(out.Children, left)
	}
	if right := buildTreeNode(n.Right); right != nil {
		out.Children = append(out.Children, right)
	}
	return out
}

func glyphName(b byte) string {
	if b >= 32 && b <= 126 {
		return string(rune(b))
	}
	return fmt.Sprintf("x%02X", b)
}
