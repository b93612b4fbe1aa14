package crypto

import (
	"crypto/ed25519"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/encoding"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

// RFC 8032 Ed25519 test vector 1.
const (
	testSeedHex      = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"
	testPublicKeyHex = "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a"
)

// TestNewSecretKeyFromHexString_DerivesPublicKey tests seed decoding against
// the published key pair
func TestNewSecretKeyFromHexString_DerivesPublicKey(t *testing.T) {
	key, err := NewSecretKeyFromHexString(testSeedHex)
	require.NoError(t, err)

	require.Equal(t, testPublicKeyHex, hex.EncodeToString(key.Public().Bytes()))
}

// TestNewSecretKeyFromBytes_SeedAndExpandedAgree tests that the 32-byte seed
// and the 64-byte expanded key produce the same signer
func TestNewSecretKeyFromBytes_SeedAndExpandedAgree(t *testing.T) {
	seed, err := hex.DecodeString(testSeedHex)
	require.NoError(t, err)

	fromSeed, err := NewSecretKeyFromBytes(seed)
	require.NoError(t, err)

	expanded := ed25519.NewKeyFromSeed(seed)
	fromExpanded, err := NewSecretKeyFromBytes(expanded)
	require.NoError(t, err)

	require.Equal(t, fromSeed.Public().Bytes(), fromExpanded.Public().Bytes())

	digest := Digest256([]byte("same signer either way"))
	require.Equal(t, fromSeed.Sign(digest), fromExpanded.Sign(digest))
}

// TestNewSecretKeyFromBytes_WrongLength tests rejection of malformed key
// material
func TestNewSecretKeyFromBytes_WrongLength(t *testing.T) {
	_, err := NewSecretKeyFromBytes(make([]byte, 16))

	require.Error(t, err)
	require.True(t, types.IsCryptoErrorKind(err, types.KeyDecodeFailure))
}

// TestNewSecretKeyFromHexString_InvalidHex tests rejection of non-hex input
func TestNewSecretKeyFromHexString_InvalidHex(t *testing.T) {
	_, err := NewSecretKeyFromHexString("not hex at all")

	require.Error(t, err)
	require.True(t, types.IsCryptoErrorKind(err, types.KeyDecodeFailure))
}

// TestSecretKey_Base58RoundTrip tests the edsk encoding of the expanded key
func TestSecretKey_Base58RoundTrip(t *testing.T) {
	key, err := NewSecretKeyFromHexString(testSeedHex)
	require.NoError(t, err)

	encoded := key.Base58()
	require.True(t, strings.HasPrefix(encoded, "edsk"), "Expected edsk prefix, got %s", encoded)
	require.Len(t, encoded, 98)

	decoded, err := NewSecretKeyFromBase58(encoded)
	require.NoError(t, err)

	digest := Digest256([]byte("round trip"))
	require.Equal(t, key.Sign(digest), decoded.Sign(digest))
}

// TestNewSecretKeyFromBase58_SeedForm tests decoding the short seed form
func TestNewSecretKeyFromBase58_SeedForm(t *testing.T) {
	seed, err := hex.DecodeString(testSeedHex)
	require.NoError(t, err)

	encoded := encoding.EncodeBase58Check(encoding.PrefixEd25519Seed, seed)
	key, err := NewSecretKeyFromBase58(encoded)
	require.NoError(t, err)

	require.Equal(t, testPublicKeyHex, hex.EncodeToString(key.Public().Bytes()))
}

// TestNewSecretKeyFromBase58_Invalid tests rejection of malformed edsk input
func TestNewSecretKeyFromBase58_Invalid(t *testing.T) {
	_, err := NewSecretKeyFromBase58("edsk-definitely-not-valid")

	require.Error(t, err)
	require.True(t, types.IsCryptoErrorKind(err, types.KeyDecodeFailure))
}

// TestSecretKey_SignIsDeterministic tests that signing has no randomness
func TestSecretKey_SignIsDeterministic(t *testing.T) {
	key, err := NewSecretKeyFromHexString(testSeedHex)
	require.NoError(t, err)

	digest := Digest256([]byte("sign me"))
	sig1 := key.Sign(digest)
	sig2 := key.Sign(digest)

	require.Equal(t, sig1, sig2, "Signature should be deterministic")
	require.Len(t, sig1, SignatureLength)
}

// TestPublicKey_Verify tests signature verification
func TestPublicKey_Verify(t *testing.T) {
	key, err := NewSecretKeyFromHexString(testSeedHex)
	require.NoError(t, err)

	digest := Digest256([]byte("verify me"))
	sig := key.Sign(digest)

	require.True(t, key.Public().Verify(digest, sig))
	require.False(t, key.Public().Verify(Digest256([]byte("other")), sig),
		"Signature should not verify for a different digest")
}

// TestPublicKey_Base58RoundTrip tests the edpk encoding
func TestPublicKey_Base58RoundTrip(t *testing.T) {
	key, err := NewSecretKeyFromHexString(testSeedHex)
	require.NoError(t, err)
	public := key.Public()

	encoded := public.Base58()
	require.True(t, strings.HasPrefix(encoded, "edpk"), "Expected edpk prefix, got %s", encoded)
	require.Len(t, encoded, 54)

	decoded, err := NewPublicKeyFromBase58(encoded)
	require.NoError(t, err)
	require.Equal(t, public.Bytes(), decoded.Bytes())
}

// TestNewPublicKeyFromBytes_WrongLength tests rejection of malformed keys
func TestNewPublicKeyFromBytes_WrongLength(t *testing.T) {
	_, err := NewPublicKeyFromBytes(make([]byte, 31))

	require.Error(t, err)
	require.True(t, types.IsCryptoErrorKind(err, types.KeyDecodeFailure))
}

// TestPublicKey_Hash tests the tz1 address derivation
func TestPublicKey_Hash(t *testing.T) {
	key, err := NewSecretKeyFromHexString(testSeedHex)
	require.NoError(t, err)

	address, err := key.Public().Hash()
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(address, "tz1"), "Expected tz1 prefix, got %s", address)
	require.Len(t, address, 36)

	again, err := key.Public().Hash()
	require.NoError(t, err)
	require.Equal(t, address, again, "Address derivation should be deterministic")
}
