package ktree

import (
	"github.com/suborbital-ctf/satkey/internal/logging"
	"github.com/suborbital-ctf/satkey/prg"
	"github.com/suborbital-ctf/satkey/valid"
)

// children derives both of n's children from a single PRG block,
// avoiding the duplicate PRG evaluation that calling n.LeftChild() and
// n.RightChild() separately would incur.
func children(n Node) (left, right Node) {
	block := prg.Block(n.Key)
	mid := n.mid()
	left = Node{Key: prg.Left(block), Lo: n.Lo, Hi: mid}
	right = Node{Key: prg.Right(block), Lo: mid + 1, Hi: n.Hi}
	return
}

// disjoint reports whether [lo,hi] and [tLo,tHi] share no timestamp.
func disjoint(lo, hi, tLo, tHi uint64) bool {
	return hi < tLo || lo > tHi
}

// insideTarget reports whether [lo,hi] lies entirely within [tLo,tHi].
func insideTarget(lo, hi, tLo, tHi uint64) bool {
	return tLo <= lo && hi <= tHi
}

// Cover computes the minimum covering set of subtree roots for
// [tLo, tHi] under rootKey: an ordered list of Nodes whose ranges are
// pairwise disjoint, in ascending order, and whose union is exactly
// [tLo, tHi] (spec §4.C, law 1). The list has at most 2*64 entries
// (spec §8, law 2).
func Cover(rootKey [32]byte, tLo, tHi uint64) ([]Node, error) {
	if err := valid.Interval(tLo, tHi); err != nil {
		return nil, err
	}

	nodes := coverNode(Root(rootKey), tLo, tHi)
	logging.Logf("ktree: covered [%d,%d] with %d nodes", tLo, tHi, len(nodes))
	return nodes, nil
}

// coverNode implements the range-split recursion of spec §4.C on
// working node n. It is value-returning: each call concatenates its own
// freshly allocated slice, per spec §9 (no mutable accumulator threaded
// through the recursion).
func coverNode(n Node, tLo, tHi uint64) []Node {
	if n.IsLeaf() {
		return []Node{n}
	}
	if insideTarget(n.Lo, n.Hi, tLo, tHi) {
		return []Node{n}
	}

	left, right := children(n)
	var out []Node

	for _, half := range [2]Node{left, right} {
		if disjoint(half.Lo, half.Hi, tLo, tHi) {
			continue
		}
		if insideTarget(half.Lo, half.Hi, tLo, tHi) {
			out = append(out, half)
			continue
		}
		out = append(out, coverNode(half, tLo, tHi)...)
	}

	return out
}
