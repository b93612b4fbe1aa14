package encoding

import (
	"encoding/hex"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

// DecodeHexString strictly decodes s: the length must be even and every
// character a hex digit. Violations surface as InvalidEncoding errors.
func DecodeHexString(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, types.NewInvalidEncodingError("odd-length hex string", nil)
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return nil, types.NewInvalidEncodingError("string is not valid hex", err)
	}
	return decoded, nil
}
