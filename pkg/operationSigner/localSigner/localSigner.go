package localSigner

import (
	"context"

	"go.uber.org/zap"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/crypto"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/operationSigner"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

// LocalSigner is the in-process signing backend. It holds an Ed25519 secret
// key in memory and signs digests with it directly.
type LocalSigner struct {
	key    *crypto.SecretKey
	logger *zap.Logger
}

// Compile-time check to ensure LocalSigner implements SigningBackend
var _ operationSigner.SigningBackend = (*LocalSigner)(nil)

func NewLocalSigner(key *crypto.SecretKey, logger *zap.Logger) (*LocalSigner, error) {
	if key == nil {
		return nil, types.NewKeyDecodeError("secret key is nil", nil)
	}
	return &LocalSigner{
		key:    key,
		logger: logger,
	}, nil
}

// NewLocalSignerFromBase58 builds a signer from an edsk-encoded secret key,
// accepting both the 32-byte seed and the 64-byte expanded form.
func NewLocalSignerFromBase58(encodedKey string, logger *zap.Logger) (*LocalSigner, error) {
	key, err := crypto.NewSecretKeyFromBase58(encodedKey)
	if err != nil {
		return nil, err
	}
	return NewLocalSigner(key, logger)
}

func (s *LocalSigner) SignDigest(_ context.Context, digest []byte) ([]byte, error) {
	return s.key.Sign(digest), nil
}

// PublicKey returns the public key matching the held secret key.
func (s *LocalSigner) PublicKey() *crypto.PublicKey {
	return s.key.Public()
}
