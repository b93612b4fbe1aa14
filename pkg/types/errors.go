package types

import (
	"errors"
	"fmt"
)

// CryptoErrorKind classifies the failures the preparation pipeline can
// surface. Callers depend on this one stable taxonomy instead of the error
// types of the underlying primitive libraries.
type CryptoErrorKind int

const (
	// UnhandledCryptoFailure wraps any lower-level failure that has no more
	// specific classification.
	UnhandledCryptoFailure CryptoErrorKind = iota
	// InvalidEncoding reports malformed hex or base58 input: bad characters,
	// odd length, failed checksum, wrong prefix.
	InvalidEncoding
	// MissingSigningBackend reports a signing request that carries neither a
	// secret key nor a remote signing capability.
	MissingSigningBackend
	// KeyDecodeFailure reports key material that could not be decoded.
	KeyDecodeFailure
	// NetworkFieldParseFailure reports a simulation or constants field that
	// is not a usable integer.
	NetworkFieldParseFailure
)

func (k CryptoErrorKind) String() string {
	switch k {
	case InvalidEncoding:
		return "invalid_encoding"
	case MissingSigningBackend:
		return "missing_signing_backend"
	case KeyDecodeFailure:
		return "key_decode_failure"
	case NetworkFieldParseFailure:
		return "network_field_parse_failure"
	default:
		return "unhandled_crypto_failure"
	}
}

// CryptoError is the unified error surface for signing, encoding, and
// estimation failures. A wrong limit, fee, or signature is a correctness
// failure, so none of these are ever silently recovered.
type CryptoError struct {
	Kind    CryptoErrorKind
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *CryptoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *CryptoError) Unwrap() error {
	return e.Err
}

// NewInvalidEncodingError creates an InvalidEncoding error
func NewInvalidEncodingError(message string, err error) *CryptoError {
	return &CryptoError{Kind: InvalidEncoding, Message: message, Err: err}
}

// NewMissingSigningBackendError creates a MissingSigningBackend error
func NewMissingSigningBackendError() *CryptoError {
	return &CryptoError{Kind: MissingSigningBackend, Message: "no secret key or remote signer supplied"}
}

// NewKeyDecodeError creates a KeyDecodeFailure error
func NewKeyDecodeError(message string, err error) *CryptoError {
	return &CryptoError{Kind: KeyDecodeFailure, Message: message, Err: err}
}

// NewNetworkFieldParseError creates a NetworkFieldParseFailure error naming
// the offending field and value.
func NewNetworkFieldParseError(field, value string, err error) *CryptoError {
	return &CryptoError{
		Kind:    NetworkFieldParseFailure,
		Message: fmt.Sprintf("field %s value %q is not a valid non-negative integer", field, value),
		Err:     err,
	}
}

// NewUnhandledCryptoError creates an UnhandledCryptoFailure error
func NewUnhandledCryptoError(message string, err error) *CryptoError {
	return &CryptoError{Kind: UnhandledCryptoFailure, Message: message, Err: err}
}

// IsCryptoErrorKind reports whether any error in err's chain is a
// CryptoError of the given kind.
func IsCryptoErrorKind(err error, kind CryptoErrorKind) bool {
	var cryptoErr *CryptoError
	if errors.As(err, &cryptoErr) {
		return cryptoErr.Kind == kind
	}
	return false
}
