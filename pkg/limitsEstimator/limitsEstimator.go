package limitsEstimator

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/chain"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/operation"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

type ILimitsEstimator interface {
	Estimate(ctx context.Context, op operation.Operation, sim *chain.SimulationResult) (*types.ResourceEstimate, error)
	Apply(op operation.Operation, estimate *types.ResourceEstimate)
}

// LimitsEstimator turns a dry-run simulation into the gas and storage limits
// an operation should carry. Gas comes straight from the simulated
// consumption; storage is the paid size diff plus the account creation
// allowance for operations that originate new accounts.
type LimitsEstimator struct {
	constantsSource chain.ConstantsSource
	logger          *zap.Logger
}

// Compile-time check to ensure LimitsEstimator implements ILimitsEstimator
var _ ILimitsEstimator = (*LimitsEstimator)(nil)

func NewLimitsEstimator(constantsSource chain.ConstantsSource, logger *zap.Logger) (*LimitsEstimator, error) {
	if constantsSource == nil {
		return nil, fmt.Errorf("constants source is required")
	}
	return &LimitsEstimator{
		constantsSource: constantsSource,
		logger:          logger,
	}, nil
}

func (e *LimitsEstimator) Estimate(ctx context.Context, op operation.Operation, sim *chain.SimulationResult) (*types.ResourceEstimate, error) {
	if sim == nil {
		return nil, fmt.Errorf("simulation result is required")
	}
	result := sim.Metadata.OperationResult

	gasLimit, err := chain.ParseInt64Field("consumed_gas", result.ConsumedGas)
	if err != nil {
		return nil, err
	}
	storageLimit, err := chain.ParseInt64Field("paid_storage_size_diff", result.PaidStorageSizeDiff)
	if err != nil {
		return nil, err
	}

	if op.Kind().CreatesAccount() {
		constants, err := e.constantsSource.Constants(ctx)
		if err != nil {
			return nil, err
		}
		originationSize, err := chain.ParseInt64Field("origination_size", constants.OriginationSize)
		if err != nil {
			return nil, err
		}
		storageLimit += originationSize
	}

	e.logger.Sugar().Debugw("Estimated operation limits",
		"kind", op.Kind().String(),
		"gas_limit", gasLimit,
		"storage_limit", storageLimit,
	)

	return &types.ResourceEstimate{
		GasLimit:     gasLimit,
		StorageLimit: storageLimit,
	}, nil
}

// Apply writes an estimate back onto the operation.
func (e *LimitsEstimator) Apply(op operation.Operation, estimate *types.ResourceEstimate) {
	op.SetGasLimit(estimate.GasLimit)
	op.SetStorageLimit(estimate.StorageLimit)
}
