package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/chain"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/crypto"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/logger"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

// TestSeedHex is the RFC 8032 Ed25519 test vector 1 seed. Its public key is
// d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a.
const TestSeedHex = "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60"

// CreateTestLogger creates a debug logger for tests
func CreateTestLogger(t *testing.T) *zap.Logger {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: true})
	require.NoError(t, err, "Failed to create test logger")
	return l
}

// CreateTestSecretKey creates a secret key from the well-known test seed
func CreateTestSecretKey(t *testing.T) *crypto.SecretKey {
	key, err := crypto.NewSecretKeyFromHexString(TestSeedHex)
	require.NoError(t, err, "Failed to create test secret key")
	return key
}

// DefaultTestConstants returns chain constants with mainnet-like values
func DefaultTestConstants() *chain.Constants {
	return &chain.Constants{
		CostPerByte:     "250",
		OriginationSize: "257",
	}
}

// FakeConstantsSource serves canned chain constants and counts lookups.
type FakeConstantsSource struct {
	Result *chain.Constants
	Err    error
	Calls  int
}

func (f *FakeConstantsSource) Constants(_ context.Context) (*chain.Constants, error) {
	f.Calls++
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Result, nil
}

// FakeOperation is a minimal operation.Operation for estimator tests.
type FakeOperation struct {
	OpKind  types.OperationKind
	Gas     int64
	Storage int64
	OpFee   int64
}

func (f *FakeOperation) Kind() types.OperationKind   { return f.OpKind }
func (f *FakeOperation) GasLimit() int64             { return f.Gas }
func (f *FakeOperation) SetGasLimit(limit int64)     { f.Gas = limit }
func (f *FakeOperation) StorageLimit() int64         { return f.Storage }
func (f *FakeOperation) SetStorageLimit(limit int64) { f.Storage = limit }
func (f *FakeOperation) Fee() int64                  { return f.OpFee }
func (f *FakeOperation) SetFee(fee int64)            { f.OpFee = fee }

// FakeBatch is a minimal operation.Batch serving a canned forged payload.
type FakeBatch struct {
	Forged     string
	Count      int
	ForgeErr   error
	ForgeCalls int
}

func (f *FakeBatch) OperationCount() int { return f.Count }

func (f *FakeBatch) Forge(_ context.Context) (string, error) {
	f.ForgeCalls++
	if f.ForgeErr != nil {
		return "", f.ForgeErr
	}
	return f.Forged, nil
}

// FakeSigningBackend records every digest it is asked to sign.
type FakeSigningBackend struct {
	Signature []byte
	Err       error
	Digests   [][]byte
}

func (f *FakeSigningBackend) SignDigest(_ context.Context, digest []byte) ([]byte, error) {
	f.Digests = append(f.Digests, digest)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Signature, nil
}

// SimulationResultWith builds a node-shaped simulation result from the two
// fields the estimators read.
func SimulationResultWith(consumedGas string, paidStorageSizeDiff string) *chain.SimulationResult {
	return &chain.SimulationResult{
		Metadata: chain.OperationMetadata{
			OperationResult: chain.OperationResult{
				ConsumedGas:         consumedGas,
				PaidStorageSizeDiff: paidStorageSizeDiff,
			},
		},
	}
}
