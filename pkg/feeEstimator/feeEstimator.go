package feeEstimator

import (
	"context"
	"fmt"
	"math/big"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/chain"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/config"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/operation"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

type IFeeEstimator interface {
	Estimate(ctx context.Context, batch operation.Batch, op operation.Operation) (*types.FeeBreakdown, error)
	Apply(op operation.Operation, breakdown *types.FeeBreakdown)
}

// FeeEstimator prices an operation from its resource limits and its share
// of the forged batch. All intermediate arithmetic is exact: per-unit rates
// are rationals and every rounding step rounds up, so the result is never
// below the protocol minimum.
type FeeEstimator struct {
	params          *config.FeeParams
	constantsSource chain.ConstantsSource
	logger          *zap.Logger
}

// Compile-time check to ensure FeeEstimator implements IFeeEstimator
var _ IFeeEstimator = (*FeeEstimator)(nil)

// NewFeeEstimator wires an estimator with the given pricing parameters. A
// nil params falls back to the mainnet defaults.
func NewFeeEstimator(params *config.FeeParams, constantsSource chain.ConstantsSource, logger *zap.Logger) (*FeeEstimator, error) {
	if params == nil {
		params = config.DefaultFeeParams()
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if constantsSource == nil {
		return nil, fmt.Errorf("constants source is required")
	}
	return &FeeEstimator{
		params:          params,
		constantsSource: constantsSource,
		logger:          logger,
	}, nil
}

// Estimate computes the full fee breakdown for one operation in a batch.
// The operation must already carry its gas and storage limits.
func (e *FeeEstimator) Estimate(ctx context.Context, batch operation.Batch, op operation.Operation) (*types.FeeBreakdown, error) {
	gasLimit := op.GasLimit()
	storageLimit := op.StorageLimit()
	if gasLimit < 0 {
		return nil, fmt.Errorf("gas limit must not be negative, got %d", gasLimit)
	}
	if storageLimit < 0 {
		return nil, fmt.Errorf("storage limit must not be negative, got %d", storageLimit)
	}

	operationSize, err := e.amortizedOperationSize(ctx, batch)
	if err != nil {
		return nil, err
	}

	operationFee := e.operationFee(gasLimit, operationSize)
	minimalFee := e.params.BaseOperationMinimalFee + operationFee

	burnFee, err := e.burnFee(ctx, storageLimit)
	if err != nil {
		return nil, err
	}

	breakdown := &types.FeeBreakdown{
		OperationSize: operationSize,
		OperationFee:  operationFee,
		MinimalFee:    minimalFee,
		BurnFee:       burnFee,
		TotalCost:     burnFee + minimalFee,
	}

	e.logger.Sugar().Debugw("Estimated operation fee",
		"kind", op.Kind().String(),
		"operation_size", breakdown.OperationSize,
		"operation_fee", breakdown.OperationFee,
		"minimal_fee", breakdown.MinimalFee,
		"burn_fee", breakdown.BurnFee,
		"total_cost", breakdown.TotalCost,
	)
	return breakdown, nil
}

// Apply writes the total cost back onto the operation's fee field.
func (e *FeeEstimator) Apply(op operation.Operation, breakdown *types.FeeBreakdown) {
	op.SetFee(breakdown.TotalCost)
}

// amortizedOperationSize is this operation's share of the forged batch: the
// batch byte length divided by the operation count, rounded up.
func (e *FeeEstimator) amortizedOperationSize(ctx context.Context, batch operation.Batch) (int64, error) {
	count := int64(batch.OperationCount())
	if count <= 0 {
		return 0, errors.Errorf("batch must contain at least one operation, got %d", count)
	}
	forged, err := batch.Forge(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "failed to forge batch")
	}
	// Two hex characters per byte, then amortized across the batch.
	return ceilDiv(int64(len(forged)), 2*count), nil
}

// operationFee prices gas plus size: ceil((gasLimit + gasBuffer) *
// minimalFeePerGas + operationSize * minimalFeePerByte).
func (e *FeeEstimator) operationFee(gasLimit int64, operationSize int64) int64 {
	gasFee := new(big.Rat).Mul(big.NewRat(gasLimit+e.params.GasBuffer, 1), e.params.MinimalFeePerGas)
	sizeFee := new(big.Rat).Mul(big.NewRat(operationSize, 1), e.params.MinimalFeePerByte)
	return ceilRat(new(big.Rat).Add(gasFee, sizeFee))
}

// burnFee prices the storage the operation will allocate. Chain constants
// are only fetched when there is storage to price.
func (e *FeeEstimator) burnFee(ctx context.Context, storageLimit int64) (int64, error) {
	if storageLimit == 0 {
		return 0, nil
	}
	constants, err := e.constantsSource.Constants(ctx)
	if err != nil {
		return 0, err
	}
	costPerByte, err := chain.ParseInt64Field("cost_per_byte", constants.CostPerByte)
	if err != nil {
		return 0, err
	}
	return storageLimit * costPerByte, nil
}

func ceilDiv(a, b int64) int64 {
	return (a + b - 1) / b
}

// ceilRat rounds a non-negative rational up to the next integer.
func ceilRat(r *big.Rat) int64 {
	quotient := new(big.Int).Quo(r.Num(), r.Denom())
	if r.IsInt() {
		return quotient.Int64()
	}
	return quotient.Int64() + 1
}
