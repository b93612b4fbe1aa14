package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestWatermarkApply tests that each watermark prepends its tag byte
func TestWatermarkApply(t *testing.T) {
	payload := []byte{0xaa, 0xbb, 0xcc}

	t.Run("Block", func(t *testing.T) {
		tagged := WatermarkBlock.Apply(payload)
		require.Equal(t, []byte{0x01, 0xaa, 0xbb, 0xcc}, tagged)
	})

	t.Run("Endorsement", func(t *testing.T) {
		tagged := WatermarkEndorsement.Apply(payload)
		require.Equal(t, []byte{0x02, 0xaa, 0xbb, 0xcc}, tagged)
	})

	t.Run("Generic", func(t *testing.T) {
		tagged := WatermarkGeneric.Apply(payload)
		require.Equal(t, []byte{0x03, 0xaa, 0xbb, 0xcc}, tagged)
	})

	t.Run("None", func(t *testing.T) {
		tagged := WatermarkNone.Apply(payload)
		require.Equal(t, payload, tagged, "No watermark should leave the payload unchanged")
	})
}

// TestWatermarkApply_DoesNotMutateInput tests that Apply never writes into
// the caller's slice
func TestWatermarkApply_DoesNotMutateInput(t *testing.T) {
	payload := []byte{0xaa, 0xbb, 0xcc}

	tagged := WatermarkGeneric.Apply(payload)
	tagged[1] = 0xff

	require.Equal(t, []byte{0xaa, 0xbb, 0xcc}, payload, "Input payload should not be modified")
}

// TestWatermarkApply_EmptyPayload tests watermarking an empty payload
func TestWatermarkApply_EmptyPayload(t *testing.T) {
	tagged := WatermarkGeneric.Apply(nil)
	require.Equal(t, []byte{0x03}, tagged, "Empty payload should still get the tag byte")
}

// TestWatermarkString tests the human-readable watermark names
func TestWatermarkString(t *testing.T) {
	require.Equal(t, "none", WatermarkNone.String())
	require.Equal(t, "block", WatermarkBlock.String())
	require.Equal(t, "endorsement", WatermarkEndorsement.String())
	require.Equal(t, "generic", WatermarkGeneric.String())
	require.Equal(t, "watermark(0x7f)", Watermark(0x7f).String())
}

// TestOperationKindCreatesAccount tests that only originations allocate
// new accounts
func TestOperationKindCreatesAccount(t *testing.T) {
	require.True(t, OperationKindOrigination.CreatesAccount())
	require.False(t, OperationKindTransaction.CreatesAccount())
	require.False(t, OperationKindDelegation.CreatesAccount())
	require.False(t, OperationKindReveal.CreatesAccount())
}

// TestOperationKindString tests operation kind names
func TestOperationKindString(t *testing.T) {
	require.Equal(t, "transaction", OperationKindTransaction.String())
	require.Equal(t, "origination", OperationKindOrigination.String())
	require.Equal(t, "delegation", OperationKindDelegation.String())
	require.Equal(t, "reveal", OperationKindReveal.String())
}
