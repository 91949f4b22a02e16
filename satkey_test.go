package satkey

import (
	"bytes"
	"crypto/ed25519"
	"testing"
)

// TestIssueSubscriptionAndDecodeFrame exercises the full flow end to
// end: generate provider secrets, derive a decoder's subscription key,
// cover a subscription window, then seal and open a subscription blob
// and a live frame.
func TestIssueSubscriptionAndDecodeFrame(t *testing.T) {
	s, err := GenerateSecrets([]uint32{1})
	if err != nil {
		t.Fatalf("GenerateSecrets: %v", err)
	}
	ch := s.Channels[1]

	decoderKey := SubscriptionKeyForDecoder(s, 7)

	const tLo, tHi = 1000, 2000
	nodes, err := GenerateSubscriptionNodes(ch.RootKey, tLo, tHi)
	if err != nil {
		t.Fatalf("GenerateSubscriptionNodes: %v", err)
	}
	if len(nodes) == 0 {
		t.Fatal("empty subscription covering")
	}

	subscribePub := s.SubscribeSigningKey().Public().(ed25519.PublicKey)
	aad := []byte("ch=1")

	subBlob, err := EncryptPayload([]byte("subscription"), aad, decoderKey, s.SubscribeSigningKey())
	if err != nil {
		t.Fatalf("EncryptPayload (subscription): %v", err)
	}

	got, gotAAD, err := DecryptPayload(subBlob, len(aad), decoderKey, subscribePub)
	if err != nil {
		t.Fatalf("DecryptPayload (subscription): %v", err)
	}
	if !bytes.Equal(got, []byte("subscription")) {
		t.Errorf("decrypted subscription payload = %q", got)
	}
	if !bytes.Equal(gotAAD, aad) {
		t.Errorf("decrypted subscription aad = %q", gotAAD)
	}

	frameTS := uint64(1500)
	leaf, err := DeriveNode(ch.RootKey, frameTS)
	if err != nil {
		t.Fatalf("DeriveNode: %v", err)
	}

	channelPub := ch.SigningKey().Public().(ed25519.PublicKey)
	frameAAD := []byte("frame-ts=1500")
	frameBlob, err := EncryptPayload([]byte("frame data"), frameAAD, leaf.Key, ch.SigningKey())
	if err != nil {
		t.Fatalf("EncryptPayload (frame): %v", err)
	}

	frameData, _, err := DecryptPayload(frameBlob, len(frameAAD), leaf.Key, channelPub)
	if err != nil {
		t.Fatalf("DecryptPayload (frame): %v", err)
	}
	if !bytes.Equal(frameData, []byte("frame data")) {
		t.Errorf("decrypted frame payload = %q", frameData)
	}
}

// TestDeriveNodeAgreesWithCovering checks that a timestamp inside a
// subscription's covering can be reached both directly (DeriveNode) and
// by continuing the derivation from its covering node, per spec law 3.
func TestDeriveNodeAgreesWithCovering(t *testing.T) {
	var rootKey [32]byte
	for i := range rootKey {
		rootKey[i] = byte(i * 3)
	}

	nodes, err := GenerateSubscriptionNodes(rootKey, 0, 10)
	if err != nil {
		t.Fatalf("GenerateSubscriptionNodes: %v", err)
	}

	leaf, err := DeriveNode(rootKey, 4)
	if err != nil {
		t.Fatalf("DeriveNode: %v", err)
	}

	found := false
	for _, n := range nodes {
		if n.Lo <= 4 && 4 <= n.Hi {
			found = true
			for n.Lo != n.Hi {
				if left := n.LeftChild(); 4 <= left.Hi {
					n = left
				} else {
					n = n.RightChild()
				}
			}
			if n.Key != leaf.Key {
				t.Errorf("leaf derived from covering node disagrees with DeriveNode")
			}
		}
	}
	if !found {
		t.Fatal("no covering node contains timestamp 4")
	}
}
