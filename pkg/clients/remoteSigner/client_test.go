package remoteSigner

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/config"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/crypto"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/encoding"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/testutil"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

const testPublicKeyHash = "tz1VSUr8wwNhLAzempoch5d6hLRiTh8Cjcjb"

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&ClientConfig{
		BaseUrl:       server.URL,
		PublicKeyHash: testPublicKeyHash,
	}, testutil.CreateTestLogger(t))
	require.NoError(t, err)
	return client, server
}

// TestClient_PublicKey tests fetching and decoding the registered public key
func TestClient_PublicKey(t *testing.T) {
	key := testutil.CreateTestSecretKey(t)
	encodedKey := key.Public().Base58()

	var gotMethod, gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]string{"public_key": encodedKey})
	})

	public, err := client.PublicKey(context.Background())
	require.NoError(t, err)

	require.Equal(t, http.MethodGet, gotMethod)
	require.Equal(t, "/keys/"+testPublicKeyHash, gotPath)
	require.Equal(t, key.Public().Bytes(), public.Bytes())
}

// TestClient_PublicKey_Empty tests rejection of an empty key response
func TestClient_PublicKey_Empty(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"public_key": ""})
	})

	_, err := client.PublicKey(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty public key")
}

// TestClient_Sign tests the signing request wire format
func TestClient_Sign(t *testing.T) {
	canned := encoding.EncodeBase58Check(encoding.PrefixEd25519Signature, bytes.Repeat([]byte{0x07}, crypto.SignatureLength))

	var gotMethod, gotPath, gotContentType, gotBody string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"signature": canned})
	})

	signature, err := client.Sign(context.Background(), "deadbeef")
	require.NoError(t, err)

	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/keys/"+testPublicKeyHash, gotPath)
	require.Equal(t, "application/json", gotContentType)
	require.Equal(t, "deadbeef", gotBody, "Body should be the JSON-encoded hex string")
	require.Equal(t, canned, signature)
}

// TestClient_SignDigest tests the raw-bytes backend capability end to end
func TestClient_SignDigest(t *testing.T) {
	raw := bytes.Repeat([]byte{0x07}, crypto.SignatureLength)
	canned := encoding.EncodeBase58Check(encoding.PrefixEd25519Signature, raw)
	digest := crypto.Digest256([]byte("sign this digest"))

	var gotBody string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]string{"signature": canned})
	})

	signature, err := client.SignDigest(context.Background(), digest)
	require.NoError(t, err)

	require.Equal(t, hex.EncodeToString(digest), gotBody, "Digest should be submitted as hex")
	require.Equal(t, raw, signature, "edsig response should decode to raw bytes")
}

// TestClient_Sign_ServerError tests surfacing of non-200 responses
func TestClient_Sign_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "key not found", http.StatusInternalServerError)
	})

	_, err := client.Sign(context.Background(), "deadbeef")
	require.Error(t, err)
	require.Contains(t, err.Error(), "500")
	require.Contains(t, err.Error(), "key not found")
}

// TestClient_Sign_EmptySignature tests rejection of an empty signature
func TestClient_Sign_EmptySignature(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"signature": ""})
	})

	_, err := client.Sign(context.Background(), "deadbeef")
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty signature")
}

// TestClient_SignDigest_BadSignatureEncoding tests rejection of a response
// that is not valid edsig
func TestClient_SignDigest_BadSignatureEncoding(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"signature": "edsig-not-actually-one"})
	})

	_, err := client.SignDigest(context.Background(), crypto.Digest256([]byte("x")))
	require.Error(t, err)
	require.True(t, types.IsCryptoErrorKind(err, types.InvalidEncoding))
}

// TestNewClient_Validation tests constructor argument checks
func TestNewClient_Validation(t *testing.T) {
	logger := testutil.CreateTestLogger(t)

	t.Run("Nil config", func(t *testing.T) {
		_, err := NewClient(nil, logger)
		require.Error(t, err)
	})

	t.Run("Missing base url", func(t *testing.T) {
		_, err := NewClient(&ClientConfig{PublicKeyHash: testPublicKeyHash}, logger)
		require.Error(t, err)
	})

	t.Run("Missing public key hash", func(t *testing.T) {
		_, err := NewClient(&ClientConfig{BaseUrl: "http://localhost:6732"}, logger)
		require.Error(t, err)
	})
}

// TestNewClient_DefaultTimeout tests that an unset timeout falls back to the
// default
func TestNewClient_DefaultTimeout(t *testing.T) {
	client, err := NewClient(&ClientConfig{
		BaseUrl:       "http://localhost:6732",
		PublicKeyHash: testPublicKeyHash,
	}, testutil.CreateTestLogger(t))
	require.NoError(t, err)

	require.Equal(t, defaultTimeout, client.httpClient.Timeout)

	client, err = NewClient(&ClientConfig{
		BaseUrl:       "http://localhost:6732",
		PublicKeyHash: testPublicKeyHash,
		Timeout:       5 * time.Second,
	}, testutil.CreateTestLogger(t))
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, client.httpClient.Timeout)
}

// TestNewClientFromRemoteSignerConfig tests construction from the shared
// config type
func TestNewClientFromRemoteSignerConfig(t *testing.T) {
	logger := testutil.CreateTestLogger(t)

	t.Run("Valid", func(t *testing.T) {
		client, err := NewClientFromRemoteSignerConfig(&config.RemoteSignerConfig{
			Url:           "http://localhost:6732",
			PublicKeyHash: testPublicKeyHash,
		}, logger)
		require.NoError(t, err)
		require.NotNil(t, client)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := NewClientFromRemoteSignerConfig(&config.RemoteSignerConfig{
			PublicKeyHash: testPublicKeyHash,
		}, logger)
		require.Error(t, err)
	})

	t.Run("Nil", func(t *testing.T) {
		_, err := NewClientFromRemoteSignerConfig(nil, logger)
		require.Error(t, err)
	})
}

// TestClient_SetHttpClient tests the HTTP client override hook
func TestClient_SetHttpClient(t *testing.T) {
	canned := encoding.EncodeBase58Check(encoding.PrefixEd25519Signature, bytes.Repeat([]byte{0x09}, crypto.SignatureLength))
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{"signature":%q}`, canned)
	}))
	t.Cleanup(server.Close)

	client, err := NewClient(&ClientConfig{
		BaseUrl:       server.URL,
		PublicKeyHash: testPublicKeyHash,
	}, testutil.CreateTestLogger(t))
	require.NoError(t, err)

	client.SetHttpClient(server.Client())

	signature, err := client.Sign(context.Background(), "00")
	require.NoError(t, err)
	require.Equal(t, canned, signature)
}
