package ktree

import "github.com/suborbital-ctf/satkey/valid"

// DeriveLeaf walks from the root along the 64 bits of t, most
// significant bit first, taking the left child on a 0 bit and the
// right child on a 1 bit. The result's Lo and Hi both equal t; exactly
// Depth PRG evaluations are performed (spec §4.D).
func DeriveLeaf(rootKey [32]byte, t uint64) (Node, error) {
	if err := valid.Timestamp(t); err != nil {
		return Node{}, err
	}

	n := Root(rootKey)
	for i := 0; i < Depth; i++ {
		bit := (t >> uint(Depth-1-i)) & 1
		left, right := children(n)
		if bit == 0 {
			n = left
		} else {
			n = right
		}
	}
	return n, nil
}
