// Package secrets generates, serializes, and deserializes every
// provider-side secret: the global subscribe root and private key, and
// one ChannelKey per channel, channel 0 always present (spec §4.G).
package secrets

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/suborbital-ctf/satkey/internal/errs"
)

// ChannelKey is a channel's root key (the seed of its key-derivation
// tree, or its frame key directly for channel 0, which has no tree) and
// its Ed25519 signing seed.
type ChannelKey struct {
	RootKey    [32]byte
	PrivateKey [32]byte
}

// GlobalSecrets holds every provider-side secret: the subscribe root and
// private key used to derive per-decoder subscription keys and sign
// subscription blobs, plus every channel's ChannelKey. Once constructed
// it is immutable and safe to share by read-only reference across
// goroutines (spec §5).
type GlobalSecrets struct {
	SubscribeRootKey    [32]byte
	SubscribePrivateKey [32]byte
	Channels            map[uint32]ChannelKey
}

// Generate produces fresh secrets for channelIDs (channel 0 is always
// included) by sampling every key from the CSRNG.
func Generate(channelIDs []uint32) (*GlobalSecrets, error) {
	s := &GlobalSecrets{
		Channels: make(map[uint32]ChannelKey, len(channelIDs)+1),
	}

	if err := randFill(s.SubscribeRootKey[:]); err != nil {
		return nil, err
	}
	if err := randFill(s.SubscribePrivateKey[:]); err != nil {
		return nil, err
	}

	ids := append([]uint32{0}, channelIDs...)
	for _, id := range ids {
		if _, ok := s.Channels[id]; ok {
			continue
		}
		var ck ChannelKey
		if err := randFill(ck.RootKey[:]); err != nil {
			return nil, err
		}
		if err := randFill(ck.PrivateKey[:]); err != nil {
			return nil, err
		}
		s.Channels[id] = ck
	}

	return s, nil
}

func randFill(b []byte) error {
	if _, err := rand.Read(b); err != nil {
		return errs.Wrap(errs.Resource, err, "secrets: draw random bytes")
	}
	return nil
}

// SigningKey returns the channel's Ed25519 signing key, expanded from its
// stored 32-byte seed.
func (ck ChannelKey) SigningKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(ck.PrivateKey[:])
}

// SubscribeSigningKey returns the provider's Ed25519 signing key for
// subscription blobs, expanded from SubscribePrivateKey.
func (s *GlobalSecrets) SubscribeSigningKey() ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(s.SubscribePrivateKey[:])
}

// bytes32ToInts and decodeBytes32 convert a 32-byte key to and from its
// wire form: a JSON array of 0-255 integers, per spec §6. Decoding is
// split out as a standalone function, rather than living behind an
// UnmarshalJSON method on a dedicated wire type, so that a bad length or
// an out-of-range byte surfaces as an ordinary error value the caller
// can fold into a larger aggregate instead of aborting json.Unmarshal
// outright.
func bytes32ToInts(b [32]byte) []int {
	ints := make([]int, len(b))
	for i, v := range b {
		ints[i] = int(v)
	}
	return ints
}

func decodeBytes32(name string, ints []int) ([32]byte, error) {
	var out [32]byte
	if len(ints) != 32 {
		return out, fmt.Errorf("%s: expected 32 bytes, got %d", name, len(ints))
	}
	for i, v := range ints {
		if v < 0 || v > 255 {
			return out, fmt.Errorf("%s: byte %d out of range: %d", name, i, v)
		}
		out[i] = byte(v)
	}
	return out, nil
}

type wireChannelKey struct {
	RootKey    []int `json:"root_key"`
	PrivateKey []int `json:"private_key"`
}

type wireGlobalSecrets struct {
	SubscribeRootKey    []int                     `json:"subscribe_root_key"`
	SubscribePrivateKey []int                     `json:"subscribe_private_key"`
	Channels            map[string]wireChannelKey `json:"channels"`
}

// MarshalJSON renders s in the canonical wire form of spec §6: byte
// strings as JSON arrays of integers, channel ids as decimal string
// keys.
func (s *GlobalSecrets) MarshalJSON() ([]byte, error) {
	w := wireGlobalSecrets{
		SubscribeRootKey:    bytes32ToInts(s.SubscribeRootKey),
		SubscribePrivateKey: bytes32ToInts(s.SubscribePrivateKey),
		Channels:            make(map[string]wireChannelKey, len(s.Channels)),
	}
	for id, ck := range s.Channels {
		w.Channels[strconv.FormatUint(uint64(id), 10)] = wireChannelKey{
			RootKey:    bytes32ToInts(ck.RootKey),
			PrivateKey: bytes32ToInts(ck.PrivateKey),
		}
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses the canonical wire form of spec §6. Every
// structural problem found — bad byte-array lengths, non-numeric
// channel ids, a missing channel 0 — is collected into a single
// *multierror.Error instead of stopping at the first one found. No
// partial GlobalSecrets is returned when any error is found.
func (s *GlobalSecrets) UnmarshalJSON(data []byte) error {
	var w wireGlobalSecrets
	if err := json.Unmarshal(data, &w); err != nil {
		return errs.Wrap(errs.Parse, err, "secrets: malformed JSON")
	}

	var result error

	subscribeRootKey, err := decodeBytes32("subscribe_root_key", w.SubscribeRootKey)
	if err != nil {
		result = multierror.Append(result, err)
	}
	subscribePrivateKey, err := decodeBytes32("subscribe_private_key", w.SubscribePrivateKey)
	if err != nil {
		result = multierror.Append(result, err)
	}

	channels := make(map[uint32]ChannelKey, len(w.Channels))
	for idStr, wck := range w.Channels {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("channel id %q: not a decimal uint32: %w", idStr, err))
			continue
		}

		rootKey, err := decodeBytes32(fmt.Sprintf("channel %d root_key", id), wck.RootKey)
		if err != nil {
			result = multierror.Append(result, err)
		}
		privateKey, err := decodeBytes32(fmt.Sprintf("channel %d private_key", id), wck.PrivateKey)
		if err != nil {
			result = multierror.Append(result, err)
		}
		channels[uint32(id)] = ChannelKey{RootKey: rootKey, PrivateKey: privateKey}
	}

	if _, ok := channels[0]; !ok {
		result = multierror.Append(result, fmt.Errorf("channel \"0\" is required and was not present"))
	}

	if result != nil {
		return errs.Wrap(errs.Parse, result, "secrets: invalid global secrets")
	}

	s.SubscribeRootKey = subscribeRootKey
	s.SubscribePrivateKey = subscribePrivateKey
	s.Channels = channels
	return nil
}
