package ktree

import (
	"sync"

	"github.com/cespare/xxhash"
)

// NodeCache memoizes PRG-derived children for callers that walk the tree
// themselves through its LeftChild/RightChild methods. Cover and
// DeriveLeaf do not consult a NodeCache; they derive every node afresh.
// Node derivation is pure (spec §4.B: "no caching required (caller may
// memoize)"); NodeCache is that optional memoization, keyed by an
// xxhash.Sum64 digest of the parent's key and range rather than the raw
// 32-byte key, to keep the map's comparable key small.
type NodeCache struct {
	mu    sync.Mutex
	left  map[uint64]Node
	right map[uint64]Node
}

// NewNodeCache returns an empty, ready-to-use cache.
func NewNodeCache() *NodeCache {
	return &NodeCache{
		left:  make(map[uint64]Node),
		right: make(map[uint64]Node),
	}
}

func cacheKey(n Node) uint64 {
	var buf [48]byte
	copy(buf[:32], n.Key[:])
	putUint64(buf[32:40], n.Lo)
	putUint64(buf[40:48], n.Hi)
	return xxhash.Sum64(buf[:])
}

func putUint64(b []byte, x uint64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(x)
		x >>= 8
	}
}

// LeftChild returns n's memoized left child, deriving and storing it on
// a cache miss.
func (c *NodeCache) LeftChild(n Node) Node {
	k := cacheKey(n)

	c.mu.Lock()
	if v, ok := c.left[k]; ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	v := n.LeftChild()

	c.mu.Lock()
	c.left[k] = v
	c.mu.Unlock()
	return v
}

// RightChild returns n's memoized right child, deriving and storing it
// on a cache miss.
func (c *NodeCache) RightChild(n Node) Node {
	k := cacheKey(n)

	c.mu.Lock()
	if v, ok := c.right[k]; ok {
		c.mu.Unlock()
		return v
	}
	c.mu.Unlock()

	v := n.RightChild()

	c.mu.Lock()
	c.right[k] = v
	c.mu.Unlock()
	return v
}
