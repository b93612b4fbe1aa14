package encoding

import (
	"bytes"
	"crypto/sha256"

	"github.com/jbenet/go-base58"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

// Base58-check prefixes for the encodings this module produces and consumes.
// Each prefix pins both the payload type and its length, so a decoded string
// can never be mistaken for a value of another type.
var (
	// PrefixEd25519Signature is the "edsig" prefix for 64-byte signatures.
	PrefixEd25519Signature = []byte{9, 245, 205, 134, 18}
	// PrefixEd25519PublicKey is the "edpk" prefix for 32-byte public keys.
	PrefixEd25519PublicKey = []byte{13, 15, 37, 217}
	// PrefixEd25519Seed is the "edsk" prefix for 32-byte seeds.
	PrefixEd25519Seed = []byte{13, 15, 58, 7}
	// PrefixEd25519SecretKey is the "edsk" prefix for 64-byte expanded keys.
	PrefixEd25519SecretKey = []byte{43, 246, 78, 7}
	// PrefixEd25519PublicKeyHash is the "tz1" address prefix for 20-byte
	// public key hashes.
	PrefixEd25519PublicKeyHash = []byte{6, 161, 159}
)

const checksumLength = 4

// EncodeBase58Check encodes prefix ++ payload with a 4-byte double-SHA256
// checksum appended.
func EncodeBase58Check(prefix, payload []byte) string {
	data := make([]byte, 0, len(prefix)+len(payload)+checksumLength)
	data = append(data, prefix...)
	data = append(data, payload...)
	return base58.Encode(append(data, checksum(data)...))
}

// DecodeBase58Check decodes a base58-check string and strips the expected
// prefix, returning the raw payload. Alphabet, checksum, and prefix
// violations all surface as InvalidEncoding errors.
func DecodeBase58Check(encoded string, prefix []byte) ([]byte, error) {
	decoded := base58.Decode(encoded)
	if len(decoded) == 0 {
		return nil, types.NewInvalidEncodingError("string is not valid base58", nil)
	}
	if len(decoded) < len(prefix)+checksumLength {
		return nil, types.NewInvalidEncodingError("base58 string too short", nil)
	}

	data := decoded[:len(decoded)-checksumLength]
	if !bytes.Equal(checksum(data), decoded[len(decoded)-checksumLength:]) {
		return nil, types.NewInvalidEncodingError("base58 checksum mismatch", nil)
	}
	if !bytes.HasPrefix(data, prefix) {
		return nil, types.NewInvalidEncodingError("unexpected base58 prefix", nil)
	}

	return data[len(prefix):], nil
}

func checksum(data []byte) []byte {
	first := sha256.Sum256(data)
	second := sha256.Sum256(first[:])
	return second[:checksumLength]
}
