// Package encodable provides wrappers for cryptographic keys that can be
// written to and read from configuration documents.
//
// Keys are encoded as lower-case hex of their raw encoding. Each wrapper is
// bound to exactly one signing algorithm so that a key of the wrong kind is
// rejected at decoding time rather than when it is first used.
package encodable

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/onflow/flow-go/crypto"
)

// ConsensusKeyAlgorithm is the signing algorithm of consensus keys.
const ConsensusKeyAlgorithm = crypto.ECDSAP256

// ServiceKeyAlgorithm is the signing algorithm of service keys.
const ServiceKeyAlgorithm = crypto.ECDSASecp256k1

// ConsensusPubKey wraps a consensus public key.
type ConsensusPubKey struct {
	crypto.PublicKey
}

func (pub ConsensusPubKey) MarshalText() ([]byte, error) {
	return marshalPublicKey(pub.PublicKey)
}

func (pub *ConsensusPubKey) UnmarshalText(text []byte) error {
	key, err := unmarshalPublicKey(ConsensusKeyAlgorithm, text)
	if err != nil {
		return fmt.Errorf("invalid consensus public key: %w", err)
	}
	pub.PublicKey = key
	return nil
}

// String returns the hex encoding of the key, or an empty string for an unset key.
func (pub ConsensusPubKey) String() string {
	return KeyHex(pub.PublicKey)
}

// Equals returns true if both wrappers hold the same key.
func (pub ConsensusPubKey) Equals(other ConsensusPubKey) bool {
	return publicKeysEqual(pub.PublicKey, other.PublicKey)
}

// ServicePubKey wraps a service public key.
type ServicePubKey struct {
	crypto.PublicKey
}

func (pub ServicePubKey) MarshalText() ([]byte, error) {
	return marshalPublicKey(pub.PublicKey)
}

func (pub *ServicePubKey) UnmarshalText(text []byte) error {
	key, err := unmarshalPublicKey(ServiceKeyAlgorithm, text)
	if err != nil {
		return fmt.Errorf("invalid service public key: %w", err)
	}
	pub.PublicKey = key
	return nil
}

func (pub ServicePubKey) String() string {
	return KeyHex(pub.PublicKey)
}

func (pub ServicePubKey) Equals(other ServicePubKey) bool {
	return publicKeysEqual(pub.PublicKey, other.PublicKey)
}

// KeyHex returns the hex encoding of a public key. A nil key encodes as "".
func KeyHex(key crypto.PublicKey) string {
	if key == nil {
		return ""
	}
	return hex.EncodeToString(key.Encode())
}

// DecodePrivateKeyHex decodes a hex-encoded private key of the given algorithm.
func DecodePrivateKeyHex(algo crypto.SigningAlgorithm, text string) (crypto.PrivateKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(text), "0x"))
	if err != nil {
		return nil, fmt.Errorf("could not decode hex: %w", err)
	}
	key, err := crypto.DecodePrivateKey(algo, raw)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s private key: %w", algo, err)
	}
	return key, nil
}

// PrivateKeyHex returns the hex encoding of a private key.
func PrivateKeyHex(key crypto.PrivateKey) string {
	return hex.EncodeToString(key.Encode())
}

func marshalPublicKey(key crypto.PublicKey) ([]byte, error) {
	if key == nil {
		return nil, fmt.Errorf("public key is not set")
	}
	return []byte(KeyHex(key)), nil
}

func unmarshalPublicKey(algo crypto.SigningAlgorithm, text []byte) (crypto.PublicKey, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(string(text)), "0x"))
	if err != nil {
		return nil, fmt.Errorf("could not decode hex: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty key")
	}
	key, err := crypto.DecodePublicKey(algo, raw)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s public key: %w", algo, err)
	}
	return key, nil
}

func publicKeysEqual(a, b crypto.PublicKey) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}
