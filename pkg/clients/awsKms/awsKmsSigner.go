package awsKms

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"encoding/asn1"
	"fmt"
	"math/big"

	"github.com/aws/aws-sdk-go-v2/service/kms"
	kmstypes "github.com/aws/aws-sdk-go-v2/service/kms/types"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	internalaws "github.com/Basalt-Labs/tezos-opkit-go/internal/aws"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/config"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/crypto"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/operationSigner"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

const digestLength = 32

// asn1EcSig is the DER signature structure KMS returns for ECDSA keys
type asn1EcSig struct {
	R asn1.RawValue
	S asn1.RawValue
}

// asn1EcPublicKey is the SubjectPublicKeyInfo structure from GetPublicKey
type asn1EcPublicKey struct {
	EcPublicKeyInfo asn1EcPublicKeyInfo
	PublicKey       asn1.BitString
}

type asn1EcPublicKeyInfo struct {
	Algorithm  asn1.ObjectIdentifier
	Parameters asn1.ObjectIdentifier
}

// KMSSigner signs digests with a P-256 key hosted in AWS KMS. The secret
// key never leaves KMS; only 32-byte digests and DER signatures cross the
// wire. A client-side rate limiter keeps bursts under the KMS API quota.
type KMSSigner struct {
	kmsClient *kms.Client
	keyId     string
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// Compile-time check to ensure KMSSigner implements SigningBackend
var _ operationSigner.SigningBackend = (*KMSSigner)(nil)

// NewKMSSigner loads AWS configuration for the configured region and wires
// a signer against the given KMS key.
func NewKMSSigner(ctx context.Context, cfg *config.KMSSignerConfig, logger *zap.Logger) (*KMSSigner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("kms signer config is required")
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid kms signer config: %s", errs.ToAggregate().Error())
	}

	awsConfig, err := internalaws.LoadAWSConfig(ctx, cfg.Region)
	if err != nil {
		return nil, err
	}

	if callerArn, err := internalaws.GetCallerIdentity(ctx, awsConfig); err == nil {
		logger.Sugar().Debugw("Resolved AWS caller identity",
			"caller_arn", callerArn,
			"key_id", cfg.KeyId,
		)
	}

	return NewKMSSignerFromClient(kms.NewFromConfig(awsConfig), cfg, logger)
}

// NewKMSSignerFromClient wires a signer onto an existing KMS client.
func NewKMSSignerFromClient(kmsClient *kms.Client, cfg *config.KMSSignerConfig, logger *zap.Logger) (*KMSSigner, error) {
	if kmsClient == nil {
		return nil, fmt.Errorf("kms client is required")
	}
	if cfg == nil {
		return nil, fmt.Errorf("kms signer config is required")
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid kms signer config: %s", errs.ToAggregate().Error())
	}

	requestsPerSecond := cfg.RequestsPerSecond
	if requestsPerSecond == 0 {
		requestsPerSecond = 10
	}
	burst := cfg.Burst
	if burst == 0 {
		burst = requestsPerSecond
	}

	return &KMSSigner{
		kmsClient: kmsClient,
		keyId:     cfg.KeyId,
		limiter:   rate.NewLimiter(rate.Limit(requestsPerSecond), burst),
		logger:    logger,
	}, nil
}

// SignDigest signs a 32-byte digest with the hosted key and returns the
// 64-byte r||s signature with S canonicalized to the low half of the curve
// order.
func (s *KMSSigner) SignDigest(ctx context.Context, digest []byte) ([]byte, error) {
	if len(digest) != digestLength {
		return nil, fmt.Errorf("digest must be %d bytes, got %d", digestLength, len(digest))
	}
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, errors.Wrap(err, "rate limiter interrupted")
	}

	signOutput, err := s.kmsClient.Sign(ctx, &kms.SignInput{
		KeyId:            &s.keyId,
		Message:          digest,
		MessageType:      kmstypes.MessageTypeDigest,
		SigningAlgorithm: kmstypes.SigningAlgorithmSpecEcdsaSha256,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "kms sign failed for key %s", s.keyId)
	}

	signature, err := derToFixedSignature(signOutput.Signature)
	if err != nil {
		return nil, err
	}

	s.logger.Sugar().Debugw("Signed digest with KMS",
		"key_id", s.keyId,
		"signature_bytes", len(signature),
	)
	return signature, nil
}

// PublicKey fetches and parses the public half of the hosted key.
func (s *KMSSigner) PublicKey(ctx context.Context) (*ecdsa.PublicKey, error) {
	output, err := s.kmsClient.GetPublicKey(ctx, &kms.GetPublicKeyInput{KeyId: &s.keyId})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get public key for %s", s.keyId)
	}
	return parseECDSAPublicKey(output.PublicKey)
}

// derToFixedSignature converts a DER-encoded ECDSA signature into the fixed
// 64-byte r||s form. S values above half the curve order are flipped to
// their canonical low form.
func derToFixedSignature(derSignature []byte) ([]byte, error) {
	var sigAsn1 asn1EcSig
	if _, err := asn1.Unmarshal(derSignature, &sigAsn1); err != nil {
		return nil, types.NewUnhandledCryptoError("failed to decode DER signature", err)
	}

	r := new(big.Int).SetBytes(sigAsn1.R.Bytes)
	sValue := new(big.Int).SetBytes(sigAsn1.S.Bytes)

	order := elliptic.P256().Params().N
	halfOrder := new(big.Int).Rsh(order, 1)
	if sValue.Cmp(halfOrder) > 0 {
		sValue = new(big.Int).Sub(order, sValue)
	}

	signature := make([]byte, crypto.SignatureLength)
	r.FillBytes(signature[:32])
	sValue.FillBytes(signature[32:])
	return signature, nil
}

// parseECDSAPublicKey decodes the SubjectPublicKeyInfo DER blob returned by
// KMS GetPublicKey into a P-256 public key.
func parseECDSAPublicKey(derPublicKey []byte) (*ecdsa.PublicKey, error) {
	var keyAsn1 asn1EcPublicKey
	if _, err := asn1.Unmarshal(derPublicKey, &keyAsn1); err != nil {
		return nil, types.NewUnhandledCryptoError("failed to decode DER public key", err)
	}

	curve := elliptic.P256()
	x, y := elliptic.Unmarshal(curve, keyAsn1.PublicKey.Bytes)
	if x == nil {
		return nil, types.NewUnhandledCryptoError("public key is not a valid P-256 point", nil)
	}
	return &ecdsa.PublicKey{Curve: curve, X: x, Y: y}, nil
}
