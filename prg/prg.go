// Package prg implements the single pseudo-random generator step the
// key-derivation tree is built from: one length-doubling step that turns
// a 32-byte node key into 64 bytes of child key material.
package prg

import "golang.org/x/crypto/chacha20"

// BlockSize is the length, in bytes, of a PRG block.
const BlockSize = 64

// KeySize is the length, in bytes, of a PRG key (and of every key-tree
// node key).
const KeySize = 32

// zeroNonce is the all-zero nonce used for every PRG evaluation (the
// design calls for an all-zero 64-bit nonce; golang.org/x/crypto/chacha20
// only exposes its standard 96-bit nonce size, so this is all-zero at
// that width instead — every byte is still zero, which is the property
// that matters). This is only safe because the key is fresh at every
// node of the tree (a distinct 32-byte key never feeds the PRG twice
// with the same nonce); it must not be changed independently of that
// invariant.
var zeroNonce = [chacha20.NonceSize]byte{}

// Block produces 64 bytes of ChaCha20 keystream under key k with an
// all-zero nonce, applied to 64 zero bytes. It is a pure, deterministic
// function of k: the first 32 bytes are the left-child key material, the
// last 32 the right-child key material (see Left/Right).
func Block(k [KeySize]byte) [BlockSize]byte {
	cipher, err := chacha20.NewUnauthenticatedCipher(k[:], zeroNonce[:])
	if err != nil {
		// Only wrong key/nonce lengths reach here, and both are fixed by
		// the function signature above: this is unreachable in practice.
		panic("prg: " + err.Error())
	}

	var out [BlockSize]byte
	cipher.XORKeyStream(out[:], out[:])
	return out
}

// Left returns the left-child key material of a PRG block.
func Left(block [BlockSize]byte) [KeySize]byte {
	var k [KeySize]byte
	copy(k[:], block[:KeySize])
	return k
}

// Right returns the right-child key material of a PRG block.
func Right(block [BlockSize]byte) [KeySize]byte {
	var k [KeySize]byte
	copy(k[:], block[KeySize:])
	return k
}
