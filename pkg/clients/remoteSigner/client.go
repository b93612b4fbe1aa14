package remoteSigner

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/config"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/crypto"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/encoding"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/operationSigner"
)

const defaultTimeout = 30 * time.Second

type ClientConfig struct {
	BaseUrl       string
	PublicKeyHash string
	Timeout       time.Duration
}

// Client talks to a remote signer daemon over its HTTP API. Keys are
// addressed by public key hash; the daemon holds the secret material.
type Client struct {
	clientConfig *ClientConfig
	httpClient   *http.Client
	logger       *zap.Logger
}

// Compile-time checks against both client interfaces
var (
	_ IRemoteSigner                  = (*Client)(nil)
	_ operationSigner.SigningBackend = (*Client)(nil)
)

func NewClient(cfg *ClientConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("client config is required")
	}
	if cfg.BaseUrl == "" {
		return nil, fmt.Errorf("base url is required")
	}
	if cfg.PublicKeyHash == "" {
		return nil, fmt.Errorf("public key hash is required")
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &Client{
		clientConfig: cfg,
		httpClient:   &http.Client{Timeout: timeout},
		logger:       logger,
	}, nil
}

// NewClientFromRemoteSignerConfig builds a client from the shared config
// type, wiring up TLS when certificate paths are set.
func NewClientFromRemoteSignerConfig(cfg *config.RemoteSignerConfig, logger *zap.Logger) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("remote signer config is required")
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid remote signer config: %s", errs.ToAggregate().Error())
	}

	client, err := NewClient(&ClientConfig{
		BaseUrl:       cfg.Url,
		PublicKeyHash: cfg.PublicKeyHash,
		Timeout:       cfg.Timeout,
	}, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CACert != "" || cfg.Cert != "" {
		tlsConfig, err := buildTLSConfig(cfg)
		if err != nil {
			return nil, err
		}
		client.httpClient.Transport = &http.Transport{TLSClientConfig: tlsConfig}
	}
	return client, nil
}

func buildTLSConfig(cfg *config.RemoteSignerConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{}
	if cfg.CACert != "" {
		caCert, err := os.ReadFile(cfg.CACert)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read CA certificate %s", cfg.CACert)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("no certificates parsed from %s", cfg.CACert)
		}
		tlsConfig.RootCAs = pool
	}
	if cfg.Cert != "" {
		cert, err := tls.LoadX509KeyPair(cfg.Cert, cfg.Key)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load client certificate")
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}
	return tlsConfig, nil
}

// SetHttpClient overrides the underlying HTTP client, useful for testing
func (c *Client) SetHttpClient(client *http.Client) {
	c.httpClient = client
}

func (c *Client) keyUrl() string {
	return fmt.Sprintf("%s/keys/%s", c.clientConfig.BaseUrl, c.clientConfig.PublicKeyHash)
}

type publicKeyResponse struct {
	PublicKey string `json:"public_key"`
}

type signResponse struct {
	Signature string `json:"signature"`
}

func (c *Client) PublicKey(ctx context.Context) (*crypto.PublicKey, error) {
	requestId := uuid.New().String()
	c.logger.Sugar().Debugw("Fetching public key from remote signer",
		"request_id", requestId,
		"public_key_hash", c.clientConfig.PublicKeyHash,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.keyUrl(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create public key request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "public key request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("remote signer returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed publicKeyResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, errors.Wrap(err, "failed to decode public key response")
	}
	if parsed.PublicKey == "" {
		return nil, fmt.Errorf("remote signer returned an empty public key")
	}
	return crypto.NewPublicKeyFromBase58(parsed.PublicKey)
}

func (c *Client) Sign(ctx context.Context, bytesHex string) (string, error) {
	requestId := uuid.New().String()
	c.logger.Sugar().Debugw("Submitting bytes to remote signer",
		"request_id", requestId,
		"public_key_hash", c.clientConfig.PublicKeyHash,
		"hex_length", len(bytesHex),
	)

	payload, err := json.Marshal(bytesHex)
	if err != nil {
		return "", errors.Wrap(err, "failed to encode sign request body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.keyUrl(), bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed to create sign request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "sign request failed")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("remote signer returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed signResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", errors.Wrap(err, "failed to decode sign response")
	}
	if parsed.Signature == "" {
		return "", fmt.Errorf("remote signer returned an empty signature")
	}

	c.logger.Sugar().Debugw("Remote signer returned signature",
		"request_id", requestId,
		"signature", parsed.Signature,
	)
	return parsed.Signature, nil
}

// SignDigest signs a precomputed digest and decodes the daemon's edsig
// response back to raw signature bytes.
func (c *Client) SignDigest(ctx context.Context, digest []byte) ([]byte, error) {
	signature, err := c.Sign(ctx, hex.EncodeToString(digest))
	if err != nil {
		return nil, err
	}
	return encoding.DecodeBase58Check(signature, encoding.PrefixEd25519Signature)
}
