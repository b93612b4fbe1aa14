package chain

import (
	"context"
	"strconv"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

// Constants is the subset of the network's protocol constants the estimators
// consume. The node reports large integers as JSON strings, so the fields
// stay strings until they are parsed at the point of use.
type Constants struct {
	CostPerByte     string `json:"cost_per_byte"`
	OriginationSize string `json:"origination_size"`
}

// ConstantsSource fetches protocol constants. Implementations wrap whatever
// transport reaches the chain; a fetch may suspend on the context.
type ConstantsSource interface {
	Constants(ctx context.Context) (*Constants, error)
}

// OperationResult carries the resource consumption a simulation reported for
// one operation.
type OperationResult struct {
	ConsumedGas         string `json:"consumed_gas"`
	PaidStorageSizeDiff string `json:"paid_storage_size_diff"`
}

// OperationMetadata wraps the per-operation result inside a simulation reply.
type OperationMetadata struct {
	OperationResult OperationResult `json:"operation_result"`
}

// SimulationResult mirrors the node's dry-run reply for a single operation.
type SimulationResult struct {
	Metadata OperationMetadata `json:"metadata"`
}

// ParseInt64Field parses one of the network's string-encoded integer fields.
// Non-numeric and negative values fail with a NetworkFieldParseFailure; a
// guessed limit or fee must never reach the chain.
func ParseInt64Field(field, value string) (int64, error) {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, types.NewNetworkFieldParseError(field, value, err)
	}
	if parsed < 0 {
		return 0, types.NewNetworkFieldParseError(field, value, nil)
	}
	return parsed, nil
}
