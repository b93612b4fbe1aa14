package types

import "fmt"

// Watermark is the single-byte replay-domain tag prepended to a payload
// before hashing. Because the tag participates in the digest, a signature
// produced for one message class can never validate as a signature for
// another class that happens to share byte content. The zero value means no
// watermark.
type Watermark byte

const (
	WatermarkNone        Watermark = 0x00
	WatermarkBlock       Watermark = 0x01
	WatermarkEndorsement Watermark = 0x02
	WatermarkGeneric     Watermark = 0x03
)

// Apply prepends the tag byte to payload. WatermarkNone returns payload
// unchanged. The input slice is never modified.
func (w Watermark) Apply(payload []byte) []byte {
	if w == WatermarkNone {
		return payload
	}
	tagged := make([]byte, 0, len(payload)+1)
	tagged = append(tagged, byte(w))
	return append(tagged, payload...)
}

func (w Watermark) String() string {
	switch w {
	case WatermarkNone:
		return "none"
	case WatermarkBlock:
		return "block"
	case WatermarkEndorsement:
		return "endorsement"
	case WatermarkGeneric:
		return "generic"
	default:
		return fmt.Sprintf("watermark(0x%02x)", byte(w))
	}
}

// OperationKind identifies an operation's protocol kind.
type OperationKind string

const (
	OperationKindTransaction OperationKind = "transaction"
	OperationKindOrigination OperationKind = "origination"
	OperationKindDelegation  OperationKind = "delegation"
	OperationKindReveal      OperationKind = "reveal"
)

func (k OperationKind) String() string {
	return string(k)
}

// CreatesAccount reports whether the kind allocates a new account on chain,
// which adds the network's origination_size constant to the storage limit.
func (k OperationKind) CreatesAccount() bool {
	return k == OperationKindOrigination
}

// ResourceEstimate holds the limits derived from a simulation result.
type ResourceEstimate struct {
	GasLimit     int64 `json:"gas_limit"`
	StorageLimit int64 `json:"storage_limit"`
}

// FeeBreakdown records every intermediate fee quantity so callers can log
// and audit how the total was reached. TotalCost = BurnFee + MinimalFee.
type FeeBreakdown struct {
	OperationSize int64 `json:"operation_size"` // amortized bytes per operation in the batch
	OperationFee  int64 `json:"operation_fee"`
	MinimalFee    int64 `json:"minimal_fee"`
	BurnFee       int64 `json:"burn_fee"`
	TotalCost     int64 `json:"total_cost"`
}
