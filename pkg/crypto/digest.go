package crypto

import (
	"golang.org/x/crypto/blake2b"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

const (
	// DigestLength is the byte length of the digest handed to signing
	// backends.
	DigestLength = 32
	// AddressDigestLength is the byte length of public key hashes.
	AddressDigestLength = 20
)

// Digest256 returns the 32-byte BLAKE2b digest of data. Every signing
// backend signs this digest, so signer and verifier must agree on it
// bit-for-bit.
func Digest256(data []byte) []byte {
	digest := blake2b.Sum256(data)
	return digest[:]
}

// Digest160 returns the 20-byte BLAKE2b digest used for public key hashes.
func Digest160(data []byte) ([]byte, error) {
	hasher, err := blake2b.New(AddressDigestLength, nil)
	if err != nil {
		return nil, types.NewUnhandledCryptoError("failed to create blake2b hasher", err)
	}
	if _, err := hasher.Write(data); err != nil {
		return nil, types.NewUnhandledCryptoError("failed to hash data", err)
	}
	return hasher.Sum(nil), nil
}
