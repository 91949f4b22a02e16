// Package envelope implements the uniform authenticated payload used
// throughout satkey: encrypt with XChaCha20-Poly1305, bind associated
// data, then sign the whole blob with Ed25519 so that an attacker who
// leaks the symmetric key still cannot forge a message (spec §4.E).
package envelope

import (
	"crypto/ed25519"
	"crypto/rand"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/suborbital-ctf/satkey/internal/errs"
	"github.com/suborbital-ctf/satkey/valid"
)

// NonceSize is the length, in bytes, of the XChaCha20 nonce.
const NonceSize = chacha20poly1305.NonceSizeX

// TagSize is the length, in bytes, of the Poly1305 authentication tag.
const TagSize = chacha20poly1305.Overhead

// SignatureSize is the length, in bytes, of an Ed25519 signature.
const SignatureSize = ed25519.SignatureSize

// SymKeySize is the length, in bytes, of the XChaCha20-Poly1305 key.
const SymKeySize = chacha20poly1305.KeySize

// Seal produces signature || nonce || tag || ciphertext || aad. aad is
// authenticated but not encrypted; the Ed25519 signature (pure RFC 8032
// mode, no external pre-hash) covers nonce, tag, ciphertext and aad, so
// an attacker holding symKey alone cannot swap the nonce to force a
// different plaintext through undetected (spec §4.E).
func Seal(data, aad []byte, symKey [SymKeySize]byte, signKey ed25519.PrivateKey) ([]byte, error) {
	if err := valid.KeyLength("envelope: sign key", len(signKey), ed25519.PrivateKeySize); err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(symKey[:])
	if err != nil {
		return nil, errs.Wrap(errs.Precondition, err, "envelope: init XChaCha20-Poly1305")
	}

	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, errs.Wrap(errs.Resource, err, "envelope: draw nonce")
	}

	// aead.Seal appends the tag after the ciphertext; the wire layout
	// (spec §4.E/§6) puts the tag before the ciphertext, so split and
	// reorder them.
	sealed := aead.Seal(nil, nonce, data, aad)
	ciphertext, tag := sealed[:len(data)], sealed[len(data):]

	payload := make([]byte, 0, NonceSize+len(tag)+len(ciphertext)+len(aad))
	payload = append(payload, nonce...)
	payload = append(payload, tag...)
	payload = append(payload, ciphertext...)
	payload = append(payload, aad...)

	sig := ed25519.Sign(signKey, payload)

	out := make([]byte, 0, SignatureSize+len(payload))
	out = append(out, sig...)
	out = append(out, payload...)
	return out, nil
}

// Open is the inverse of Seal: it verifies the Ed25519 signature over
// nonce||tag||ciphertext||aad before attempting decryption, failing
// closed on either check (verify-then-trust: a forged or corrupted
// blob is rejected before any ciphertext is touched). aadLen tells
// Open where the ciphertext ends and the associated data begins; the caller already
// knows aad (it is authenticated, not secret) so it passes its length
// rather than have Open guess a framing the wire format doesn't carry
// (spec §6: "no framing").
func Open(blob []byte, aadLen int, symKey [SymKeySize]byte, verifyKey ed25519.PublicKey) (data, aad []byte, err error) {
	if err := valid.KeyLength("envelope: verify key", len(verifyKey), ed25519.PublicKeySize); err != nil {
		return nil, nil, err
	}

	minLen := SignatureSize + NonceSize + TagSize + aadLen
	if len(blob) < minLen {
		return nil, nil, errs.New(errs.Precondition, "envelope: blob too short: %d bytes, want at least %d", len(blob), minLen)
	}

	sig := blob[:SignatureSize]
	payload := blob[SignatureSize:]

	if !ed25519.Verify(verifyKey, payload, sig) {
		return nil, nil, errs.New(errs.Precondition, "envelope: signature verification failed")
	}

	nonce := payload[:NonceSize]
	tag := payload[NonceSize : NonceSize+TagSize]
	rest := payload[NonceSize+TagSize:]
	aad = rest[len(rest)-aadLen:]
	ciphertext := rest[:len(rest)-aadLen]

	// aead.Open expects ciphertext||tag; the wire layout carries tag
	// before ciphertext, so reassemble in the order the AEAD expects.
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	aead, err2 := chacha20poly1305.NewX(symKey[:])
	if err2 != nil {
		return nil, nil, errs.Wrap(errs.Precondition, err2, "envelope: init XChaCha20-Poly1305")
	}

	data, err2 = aead.Open(nil, nonce, sealed, aad)
	if err2 != nil {
		return nil, nil, errs.Wrap(errs.Precondition, err2, "envelope: decryption failed")
	}
	return data, aad, nil
}
