package crypto

import (
	"crypto/ed25519"
	"fmt"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/encoding"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

const (
	// SeedLength is the byte length of an Ed25519 seed.
	SeedLength = 32
	// SecretKeyLength is the byte length of an expanded Ed25519 secret key.
	SecretKeyLength = 64
	// PublicKeyLength is the byte length of an Ed25519 public key.
	PublicKeyLength = 32
	// SignatureLength is the byte length of an Ed25519 signature.
	SignatureLength = 64
)

// SecretKey is an in-memory Ed25519 secret key. The caller owns it; nothing
// in this module stores it beyond the call it is passed to.
type SecretKey struct {
	key ed25519.PrivateKey
}

// NewSecretKeyFromBytes accepts either a 32-byte seed or a 64-byte expanded
// secret key.
func NewSecretKeyFromBytes(b []byte) (*SecretKey, error) {
	switch len(b) {
	case SeedLength:
		return &SecretKey{key: ed25519.NewKeyFromSeed(b)}, nil
	case SecretKeyLength:
		key := make(ed25519.PrivateKey, SecretKeyLength)
		copy(key, b)
		return &SecretKey{key: key}, nil
	default:
		return nil, types.NewKeyDecodeError(
			fmt.Sprintf("secret key must be %d or %d bytes, got %d", SeedLength, SecretKeyLength, len(b)), nil)
	}
}

// NewSecretKeyFromHexString decodes a hex-encoded seed or expanded key.
func NewSecretKeyFromHexString(s string) (*SecretKey, error) {
	b, err := encoding.DecodeHexString(s)
	if err != nil {
		return nil, types.NewKeyDecodeError("secret key is not valid hex", err)
	}
	return NewSecretKeyFromBytes(b)
}

// NewSecretKeyFromBase58 decodes an edsk string, accepting both the seed
// form and the expanded-key form.
func NewSecretKeyFromBase58(s string) (*SecretKey, error) {
	if seed, err := encoding.DecodeBase58Check(s, encoding.PrefixEd25519Seed); err == nil {
		return NewSecretKeyFromBytes(seed)
	}
	key, err := encoding.DecodeBase58Check(s, encoding.PrefixEd25519SecretKey)
	if err != nil {
		return nil, types.NewKeyDecodeError("secret key is not a valid edsk string", err)
	}
	return NewSecretKeyFromBytes(key)
}

// Sign produces a deterministic Ed25519 signature over digest.
func (k *SecretKey) Sign(digest []byte) []byte {
	return ed25519.Sign(k.key, digest)
}

// Public returns the corresponding public key.
func (k *SecretKey) Public() *PublicKey {
	return &PublicKey{key: k.key.Public().(ed25519.PublicKey)}
}

// Base58 returns the expanded key in its edsk form.
func (k *SecretKey) Base58() string {
	return encoding.EncodeBase58Check(encoding.PrefixEd25519SecretKey, k.key)
}

// PublicKey is an Ed25519 public key.
type PublicKey struct {
	key ed25519.PublicKey
}

// NewPublicKeyFromBytes wraps a raw 32-byte public key.
func NewPublicKeyFromBytes(b []byte) (*PublicKey, error) {
	if len(b) != PublicKeyLength {
		return nil, types.NewKeyDecodeError(
			fmt.Sprintf("public key must be %d bytes, got %d", PublicKeyLength, len(b)), nil)
	}
	key := make(ed25519.PublicKey, PublicKeyLength)
	copy(key, b)
	return &PublicKey{key: key}, nil
}

// NewPublicKeyFromBase58 decodes an edpk string.
func NewPublicKeyFromBase58(s string) (*PublicKey, error) {
	b, err := encoding.DecodeBase58Check(s, encoding.PrefixEd25519PublicKey)
	if err != nil {
		return nil, types.NewKeyDecodeError("public key is not a valid edpk string", err)
	}
	return NewPublicKeyFromBytes(b)
}

// Bytes returns a copy of the raw 32-byte key.
func (p *PublicKey) Bytes() []byte {
	out := make([]byte, PublicKeyLength)
	copy(out, p.key)
	return out
}

// Base58 returns the key in its edpk form.
func (p *PublicKey) Base58() string {
	return encoding.EncodeBase58Check(encoding.PrefixEd25519PublicKey, p.key)
}

// Verify reports whether sig is a valid signature over digest.
func (p *PublicKey) Verify(digest, sig []byte) bool {
	return ed25519.Verify(p.key, digest, sig)
}

// Hash returns the tz1 address: the 20-byte BLAKE2b digest of the key under
// the address prefix.
func (p *PublicKey) Hash() (string, error) {
	digest, err := Digest160(p.key)
	if err != nil {
		return "", err
	}
	return encoding.EncodeBase58Check(encoding.PrefixEd25519PublicKeyHash, digest), nil
}
