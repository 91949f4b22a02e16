// Package satkey is the cryptographic core of a broadcast-subscription
// system: a provider maintains per-channel secrets and issues
// time-bounded subscriptions to decoders, each of which can derive the
// symmetric key for any frame timestamp inside its subscription window
// and no other. It wraps the ktree (key-derivation tree), envelope
// (authenticated payload), subkey (decoder KDF), and secrets (global
// secret material) packages as the single public contract named in the
// design: everything else is repository tooling or transport, both out
// of scope here.
package satkey

import (
	"crypto/ed25519"

	"github.com/suborbital-ctf/satkey/envelope"
	"github.com/suborbital-ctf/satkey/ktree"
	"github.com/suborbital-ctf/satkey/secrets"
	"github.com/suborbital-ctf/satkey/subkey"
)

// Node is a single interior or leaf node of a channel's key-derivation
// tree.
type Node = ktree.Node

// GenerateSubscriptionNodes computes the minimum covering set of
// subtree roots for [tLo, tHi] under rootKey, in ascending range order.
func GenerateSubscriptionNodes(rootKey [32]byte, tLo, tHi uint64) ([]Node, error) {
	return ktree.Cover(rootKey, tLo, tHi)
}

// DeriveNode derives the unique depth-64 node (the per-timestamp
// symmetric key) for t under rootKey.
func DeriveNode(rootKey [32]byte, t uint64) (Node, error) {
	return ktree.DeriveLeaf(rootKey, t)
}

// EncryptPayload encrypts data, binds aad, and signs the whole blob so
// that an attacker with a leaked symKey cannot forge a message.
func EncryptPayload(data, aad []byte, symKey [32]byte, signKey ed25519.PrivateKey) ([]byte, error) {
	return envelope.Seal(data, aad, symKey, signKey)
}

// DecryptPayload is the companion to EncryptPayload: verify then
// decrypt, failing closed on either check.
func DecryptPayload(blob []byte, aadLen int, symKey [32]byte, verifyKey ed25519.PublicKey) (data, aad []byte, err error) {
	return envelope.Open(blob, aadLen, symKey, verifyKey)
}

// GlobalSecrets is the provider's full secret material: the subscribe
// root and private key, and one ChannelKey per channel (channel 0
// always present).
type GlobalSecrets = secrets.GlobalSecrets

// ChannelKey is a single channel's root key and Ed25519 signing seed.
type ChannelKey = secrets.ChannelKey

// GenerateSecrets produces fresh GlobalSecrets for channelIDs (channel 0
// is always included).
func GenerateSecrets(channelIDs []uint32) (*GlobalSecrets, error) {
	return secrets.Generate(channelIDs)
}

// SubscriptionKeyForDecoder derives decoderID's subscription key from
// the provider's subscribe root via Argon2id.
func SubscriptionKeyForDecoder(s *GlobalSecrets, decoderID uint32) [32]byte {
	return subkey.ForDecoder(s.SubscribeRootKey, decoderID)
}
