package operationSigner

import (
	"bytes"
	"context"
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/crypto"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/encoding"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

// SigningBackend is the capability every signing path reduces to: given the
// 32-byte digest of the (optionally watermarked) payload, return the raw
// signature bytes. In-memory keys are adapted into this capability; remote
// signers implement it directly and may suspend on the context.
type SigningBackend interface {
	SignDigest(ctx context.Context, digest []byte) ([]byte, error)
}

// SigningRequest carries one payload and the material to sign it with. It is
// a value the caller assembles and passes in; the signer never retains it or
// the key material it references. Exactly one of SecretKey and Remote needs
// to be usable; when both are set, the remote capability wins.
type SigningRequest struct {
	Payload   []byte
	Watermark types.Watermark

	// SecretKey selects the in-process Ed25519 path.
	SecretKey *crypto.SecretKey
	// Remote selects an external signing backend.
	Remote SigningBackend
}

// NewSigningRequestFromHex builds a request from a hex-encoded payload. The
// string must be strict hexadecimal of even length.
func NewSigningRequestFromHex(payloadHex string) (*SigningRequest, error) {
	payload, err := encoding.DecodeHexString(payloadHex)
	if err != nil {
		return nil, err
	}
	return &SigningRequest{Payload: payload}, nil
}

// SignResult is one signature in the three representations the submission
// protocol needs. All three are derived from the same raw bytes and always
// agree.
type SignResult struct {
	// SignedBytes is the raw 64-byte signature over the digest.
	SignedBytes []byte
	// Signature is SignedBytes under the edsig base58-check prefix.
	Signature string
	// SignedHex is hex(payload) ++ hex(SignedBytes): the untagged payload
	// with the signature appended, ready for injection.
	SignedHex string
}

// Equal reports whether two results carry the same raw signature bytes.
// Results that agree on the raw bytes are interchangeable no matter how
// their requests were constructed.
func (r *SignResult) Equal(other *SignResult) bool {
	return other != nil && bytes.Equal(r.SignedBytes, other.SignedBytes)
}

type IOperationSigner interface {
	Sign(ctx context.Context, req *SigningRequest) (*SignResult, error)
}

// OperationSigner hashes and signs forged operation payloads.
type OperationSigner struct {
	logger *zap.Logger
}

// Compile-time check to ensure OperationSigner implements IOperationSigner
var _ IOperationSigner = (*OperationSigner)(nil)

func NewOperationSigner(logger *zap.Logger) *OperationSigner {
	return &OperationSigner{logger: logger}
}

// Sign watermarks and hashes the request payload, signs the digest with the
// request's backend, and encodes the result. The watermark participates in
// the digest but never appears in SignedHex.
func (s *OperationSigner) Sign(ctx context.Context, req *SigningRequest) (*SignResult, error) {
	if req == nil {
		return nil, types.NewMissingSigningBackendError()
	}

	backend, err := s.resolveBackend(req)
	if err != nil {
		return nil, err
	}

	digest := crypto.Digest256(req.Watermark.Apply(req.Payload))

	signedBytes, err := backend.SignDigest(ctx, digest)
	if err != nil {
		return nil, errors.Wrap(err, "signing backend failed")
	}
	if len(signedBytes) != crypto.SignatureLength {
		return nil, types.NewUnhandledCryptoError(
			fmt.Sprintf("backend returned %d signature bytes, want %d", len(signedBytes), crypto.SignatureLength), nil)
	}

	s.logger.Sugar().Debugw("Signed operation payload",
		"payload_bytes", len(req.Payload),
		"watermark", req.Watermark.String(),
	)

	return &SignResult{
		SignedBytes: signedBytes,
		Signature:   encoding.EncodeBase58Check(encoding.PrefixEd25519Signature, signedBytes),
		SignedHex:   hex.EncodeToString(req.Payload) + hex.EncodeToString(signedBytes),
	}, nil
}

func (s *OperationSigner) resolveBackend(req *SigningRequest) (SigningBackend, error) {
	if req.Remote != nil {
		return req.Remote, nil
	}
	if req.SecretKey != nil {
		return secretKeyBackend{key: req.SecretKey}, nil
	}
	return nil, types.NewMissingSigningBackendError()
}

// secretKeyBackend adapts an in-memory key to the backend capability. The
// Ed25519 path is synchronous, so the context is unused.
type secretKeyBackend struct {
	key *crypto.SecretKey
}

func (b secretKeyBackend) SignDigest(_ context.Context, digest []byte) ([]byte, error) {
	return b.key.Sign(digest), nil
}
