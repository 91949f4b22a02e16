// Package ktree implements the 64-level binary key-derivation tree: node
// representation, child derivation, the minimum interval-covering
// algorithm, and leaf (per-timestamp key) derivation (spec §4.B–§4.D).
package ktree

import (
	"github.com/suborbital-ctf/satkey/prg"
)

// Depth is the number of levels below the root; a leaf's range always
// has Lo == Hi and sits at this depth.
const Depth = 64

// Node is an interior or leaf node of the key-derivation tree, carried
// entirely by value per spec §9: the covering algorithm only ever walks
// one path at a time, so there is no heap-allocated tree and no arena.
type Node struct {
	Key [32]byte
	Lo  uint64
	Hi  uint64
}

// Root returns the tree root for rootKey: range [0, 2^64-1], i.e. the
// full uint64 domain.
func Root(rootKey [32]byte) Node {
	return Node{Key: rootKey, Lo: 0, Hi: ^uint64(0)}
}

// IsLeaf reports whether n is at depth 64 (n.Lo == n.Hi).
func (n Node) IsLeaf() bool {
	return n.Lo == n.Hi
}

// mid computes the split point of n's range using floor division. n's
// span is always a power of two (the root spans exactly 2^64), so this
// never truncates unevenly between the two children.
func (n Node) mid() uint64 {
	return n.Lo + (n.Hi-n.Lo)/2
}

// LeftChild derives n's left child: key material is the first 32 bytes
// of prg.Block(n.Key); range is [n.Lo, mid].
func (n Node) LeftChild() Node {
	block := prg.Block(n.Key)
	return Node{Key: prg.Left(block), Lo: n.Lo, Hi: n.mid()}
}

// RightChild derives n's right child: key material is the last 32
// bytes of prg.Block(n.Key); range is [mid+1, n.Hi].
func (n Node) RightChild() Node {
	block := prg.Block(n.Key)
	return Node{Key: prg.Right(block), Lo: n.mid() + 1, Hi: n.Hi}
}

