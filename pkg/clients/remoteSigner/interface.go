package remoteSigner

import (
	"context"
	"net/http"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/crypto"
)

// IRemoteSigner is the interface for the remote signer daemon client.
type IRemoteSigner interface {
	// PublicKey fetches the public key registered for the configured
	// public key hash.
	PublicKey(ctx context.Context) (*crypto.PublicKey, error)

	// Sign submits hex-encoded bytes for signing and returns the
	// base58-check encoded signature.
	Sign(ctx context.Context, bytesHex string) (string, error)

	// SignDigest submits a precomputed digest for signing and returns the
	// raw signature bytes. This is the operationSigner.SigningBackend
	// capability.
	SignDigest(ctx context.Context, digest []byte) ([]byte, error)

	// SetHttpClient overrides the underlying HTTP client, useful for testing
	SetHttpClient(client *http.Client)
}
