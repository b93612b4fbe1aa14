package config

import (
	"fmt"
	"math/big"
	"time"

	"k8s.io/apimachinery/pkg/util/validation/field"
)

const (
	EnvRemoteSignerUrl = "OPKIT_REMOTE_SIGNER_URL"
	EnvRemoteSignerPkh = "OPKIT_REMOTE_SIGNER_PKH"
	EnvLocalSecretKey  = "OPKIT_LOCAL_SECRET_KEY"
	EnvKmsKeyId        = "OPKIT_KMS_KEY_ID"
	EnvKmsRegion       = "OPKIT_KMS_REGION"
	EnvVerbose         = "OPKIT_VERBOSE"
)

// FeeParams are the protocol pricing knobs the fee estimator works from.
// GasBuffer is added to the simulated gas before pricing; the two per-unit
// rates are exact rationals so estimates never drift from rounding.
type FeeParams struct {
	GasBuffer               int64
	MinimalFeePerGas        *big.Rat
	MinimalFeePerByte       *big.Rat
	BaseOperationMinimalFee int64
}

// DefaultFeeParams returns the mainnet pricing defaults: a 100 gas buffer,
// 0.1 mutez per gas unit, 1 mutez per byte, and a 100 mutez base fee.
func DefaultFeeParams() *FeeParams {
	return &FeeParams{
		GasBuffer:               100,
		MinimalFeePerGas:        big.NewRat(1, 10),
		MinimalFeePerByte:       big.NewRat(1, 1),
		BaseOperationMinimalFee: 100,
	}
}

func (p *FeeParams) Validate() error {
	if p.GasBuffer < 0 {
		return fmt.Errorf("gas buffer must not be negative")
	}
	if p.MinimalFeePerGas == nil {
		return fmt.Errorf("minimal fee per gas is required")
	}
	if p.MinimalFeePerGas.Sign() < 0 {
		return fmt.Errorf("minimal fee per gas must not be negative")
	}
	if p.MinimalFeePerByte == nil {
		return fmt.Errorf("minimal fee per byte is required")
	}
	if p.MinimalFeePerByte.Sign() < 0 {
		return fmt.Errorf("minimal fee per byte must not be negative")
	}
	if p.BaseOperationMinimalFee < 0 {
		return fmt.Errorf("base operation minimal fee must not be negative")
	}
	return nil
}

// RemoteSignerConfig configures the HTTP remote signer client. CACert, Cert
// and Key are file paths; Cert and Key enable TLS client authentication and
// must be provided together.
type RemoteSignerConfig struct {
	Url           string
	PublicKeyHash string
	CACert        string
	Cert          string
	Key           string
	Timeout       time.Duration
}

func (rsc *RemoteSignerConfig) Validate() field.ErrorList {
	var errs field.ErrorList
	if rsc.Url == "" {
		errs = append(errs, field.Required(field.NewPath("url"), "url is required"))
	}
	if rsc.PublicKeyHash == "" {
		errs = append(errs, field.Required(field.NewPath("publicKeyHash"), "public key hash is required"))
	}
	if (rsc.Cert == "") != (rsc.Key == "") {
		errs = append(errs, field.Invalid(field.NewPath("cert"), rsc.Cert, "cert and key must be provided together"))
	}
	if rsc.Timeout < 0 {
		errs = append(errs, field.Invalid(field.NewPath("timeout"), rsc.Timeout, "timeout must not be negative"))
	}
	return errs
}

// KMSSignerConfig configures the AWS KMS signing backend. RequestsPerSecond
// and Burst bound the client-side rate limiter in front of the KMS API.
type KMSSignerConfig struct {
	KeyId             string
	Region            string
	RequestsPerSecond int
	Burst             int
}

func (ksc *KMSSignerConfig) Validate() field.ErrorList {
	var errs field.ErrorList
	if ksc.KeyId == "" {
		errs = append(errs, field.Required(field.NewPath("keyId"), "key id is required"))
	}
	if ksc.RequestsPerSecond < 0 {
		errs = append(errs, field.Invalid(field.NewPath("requestsPerSecond"), ksc.RequestsPerSecond, "requests per second must not be negative"))
	}
	if ksc.Burst < 0 {
		errs = append(errs, field.Invalid(field.NewPath("burst"), ksc.Burst, "burst must not be negative"))
	}
	return errs
}
