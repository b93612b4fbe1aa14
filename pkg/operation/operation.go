package operation

import (
	"context"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

// Operation is the externally-owned entity whose limits and fee the
// estimators fill in. The owner controls its lifecycle; the estimators write
// each field at most once per preparation pass.
type Operation interface {
	Kind() types.OperationKind

	GasLimit() int64
	SetGasLimit(limit int64)

	StorageLimit() int64
	SetStorageLimit(limit int64)

	Fee() int64
	SetFee(fee int64)
}

// Batch is the operation list an operation belongs to. Forge returns the
// canonical hex serialization, so its length in hex digits is twice the
// byte length.
type Batch interface {
	OperationCount() int
	Forge(ctx context.Context) (string, error)
}
