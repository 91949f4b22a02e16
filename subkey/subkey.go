// Package subkey derives the per-decoder subscription key from the
// provider's global subscribe root via a memory-hard KDF, so that
// brute-forcing the decoder identity space is slow and each provider's
// key space is bound to its own subscribe root (spec §4.F).
package subkey

import (
	"encoding/binary"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters, fixed as protocol constants rather than
// deployment knobs (spec §4.F, §6).
const (
	timeCost    = 3
	memoryCost  = 65536 // KiB
	parallelism = 4
	hashLen     = 32
)

// KeySize is the length, in bytes, of a derived decoder subscription
// key.
const KeySize = hashLen

// ForDecoder derives decoderID's subscription key from subscribeRootKey.
// The password is the 4-byte little-endian encoding of decoderID; the
// salt is subscribeRootKey itself. The result is the raw Argon2id tag,
// with no encoding wrapper. Pure function of its inputs given the fixed
// parameters above (spec §8, law 6).
func ForDecoder(subscribeRootKey [32]byte, decoderID uint32) [KeySize]byte {
	password := make([]byte, 4)
	binary.LittleEndian.PutUint32(password, decoderID)

	tag := argon2.IDKey(password, subscribeRootKey[:], timeCost, memoryCost, parallelism, hashLen)

	var out [KeySize]byte
	copy(out[:], tag)
	return out
}
