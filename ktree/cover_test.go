package ktree

import (
	"bytes"
	"math/bits"
	"testing"
)

func testRootKey() [32]byte {
	var k [32]byte
	for i := range k {
		k[i] = byte(i)
	}
	return k
}

func assertDisjointAscendingUnion(t *testing.T, nodes []Node, tLo, tHi uint64) {
	t.Helper()
	if len(nodes) == 0 {
		t.Fatalf("empty covering for [%d,%d]", tLo, tHi)
	}
	want := tLo
	for i, n := range nodes {
		if n.Lo != want {
			t.Fatalf("node %d: range starts at %d, want %d (gap or overlap)", i, n.Lo, want)
		}
		if n.Lo > n.Hi {
			t.Fatalf("node %d: empty range [%d,%d]", i, n.Lo, n.Hi)
		}
		want = n.Hi + 1
	}
	if last := nodes[len(nodes)-1]; last.Hi != tHi {
		t.Fatalf("covering ends at %d, want %d", last.Hi, tHi)
	}
}

func TestCoverWholeDomain(t *testing.T) {
	rk := testRootKey()
	nodes, err := Cover(rk, 0, ^uint64(0))
	if err != nil {
		t.Fatalf("Cover: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if nodes[0].Key != rk {
		t.Errorf("root node key changed under full covering")
	}
	if nodes[0].Lo != 0 || nodes[0].Hi != ^uint64(0) {
		t.Errorf("root node range = [%d,%d], want [0,2^64-1]", nodes[0].Lo, nodes[0].Hi)
	}
}

func TestCoverSingleLeaf(t *testing.T) {
	rk := testRootKey()
	nodes, err := Cover(rk, 0, 0)
	if err != nil {
		t.Fatalf("Cover: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}

	leaf, err := DeriveLeaf(rk, 0)
	if err != nil {
		t.Fatalf("DeriveLeaf: %v", err)
	}
	if nodes[0].Key != leaf.Key {
		t.Errorf("Cover(0,0) key disagrees with DeriveLeaf(0)")
	}
}

func TestCoverTwoLeaves(t *testing.T) {
	rk := testRootKey()
	nodes, err := Cover(rk, 0, 1)
	if err != nil {
		t.Fatalf("Cover: %v", err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if nodes[0].Lo != 0 || nodes[0].Hi != 1 {
		t.Fatalf("range = [%d,%d], want [0,1]", nodes[0].Lo, nodes[0].Hi)
	}
}

func TestCoverStraddlingBoundary(t *testing.T) {
	rk := testRootKey()
	nodes, err := Cover(rk, 2, 5)
	if err != nil {
		t.Fatalf("Cover: %v", err)
	}
	if len(nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(nodes))
	}
	if nodes[0].Lo != 2 || nodes[0].Hi != 3 {
		t.Errorf("node 0 range = [%d,%d], want [2,3]", nodes[0].Lo, nodes[0].Hi)
	}
	if nodes[1].Lo != 4 || nodes[1].Hi != 5 {
		t.Errorf("node 1 range = [%d,%d], want [4,5]", nodes[1].Lo, nodes[1].Hi)
	}
}

func TestCoverFourRanges(t *testing.T) {
	rk := testRootKey()
	nodes, err := Cover(rk, 1, 6)
	if err != nil {
		t.Fatalf("Cover: %v", err)
	}
	want := [][2]uint64{{1, 1}, {2, 3}, {4, 5}, {6, 6}}
	if len(nodes) != len(want) {
		t.Fatalf("got %d nodes, want %d", len(nodes), len(want))
	}
	for i, w := range want {
		if nodes[i].Lo != w[0] || nodes[i].Hi != w[1] {
			t.Errorf("node %d range = [%d,%d], want [%d,%d]", i, nodes[i].Lo, nodes[i].Hi, w[0], w[1])
		}
	}
}

func TestCoverSoundnessSampleIntervals(t *testing.T) {
	rk := testRootKey()
	cases := []struct{ lo, hi uint64 }{
		{0, 1000}, {17, 17}, {1 << 20, 1<<20 + 999}, {0, 0}, {1<<63 - 1, 1<<63 + 1},
	}
	for _, c := range cases {
		nodes, err := Cover(rk, c.lo, c.hi)
		if err != nil {
			t.Fatalf("Cover(%d,%d): %v", c.lo, c.hi, err)
		}
		assertDisjointAscendingUnion(t, nodes, c.lo, c.hi)

		span := c.hi - c.lo + 1
		bound := 2*bits.Len64(span) + 2
		if bound < 2 {
			bound = 2
		}
		if len(nodes) > 128 {
			t.Errorf("Cover(%d,%d) returned %d nodes, exceeds absolute bound 128", c.lo, c.hi, len(nodes))
		}
		if len(nodes) > bound {
			t.Errorf("Cover(%d,%d) returned %d nodes, exceeds bound %d", c.lo, c.hi, len(nodes), bound)
		}
	}
}

func TestCoverRejectsInvertedInterval(t *testing.T) {
	rk := testRootKey()
	if _, err := Cover(rk, 10, 5); err == nil {
		t.Fatal("Cover(10,5) should have failed: t_lo > t_hi")
	}
}

func TestCoverDeterministic(t *testing.T) {
	rk := testRootKey()
	a, err := Cover(rk, 100, 2000)
	if err != nil {
		t.Fatalf("Cover: %v", err)
	}
	b, err := Cover(rk, 100, 2000)
	if err != nil {
		t.Fatalf("Cover: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("non-deterministic node count: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("node %d differs between identical calls", i)
		}
		if !bytes.Equal(a[i].Key[:], b[i].Key[:]) {
			t.Fatalf("node %d key differs between identical calls", i)
		}
	}
}

func TestLeafAgreesWithCoveringNode(t *testing.T) {
	rk := testRootKey()
	nodes, err := Cover(rk, 100, 200)
	if err != nil {
		t.Fatalf("Cover: %v", err)
	}

	for _, ts := range []uint64{100, 150, 200} {
		var owner *Node
		for i := range nodes {
			if nodes[i].Lo <= ts && ts <= nodes[i].Hi {
				owner = &nodes[i]
				break
			}
		}
		if owner == nil {
			t.Fatalf("no covering node contains %d", ts)
		}

		n := *owner
		for n.Lo != n.Hi {
			left, right := children(n)
			if ts <= left.Hi {
				n = left
			} else {
				n = right
			}
		}

		leaf, err := DeriveLeaf(rk, ts)
		if err != nil {
			t.Fatalf("DeriveLeaf: %v", err)
		}
		if n.Key != leaf.Key {
			t.Errorf("leaf derived from covering node disagrees with DeriveLeaf for t=%d", ts)
		}
	}
}
