package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Basalt-Labs/tezos-opkit-go/pkg/clients/remoteSigner"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/config"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/crypto"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/logger"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/operationSigner"
	"github.com/Basalt-Labs/tezos-opkit-go/pkg/types"
)

func main() {
	l, _ := logger.NewLogger(&logger.LoggerConfig{Debug: false})

	url := os.Getenv(config.EnvRemoteSignerUrl)
	if url == "" {
		url = "http://localhost:6732"
	}
	publicKeyHash := os.Getenv(config.EnvRemoteSignerPkh)
	if publicKeyHash == "" {
		l.Sugar().Fatalf("%s is required", config.EnvRemoteSignerPkh)
	}
	keyMaterial := os.Getenv(config.EnvLocalSecretKey)
	if keyMaterial == "" {
		l.Sugar().Fatalf("%s is required (edsk string or hex seed of the same key the daemon holds)", config.EnvLocalSecretKey)
	}

	secretKey, err := crypto.NewSecretKeyFromBase58(keyMaterial)
	if err != nil {
		secretKey, err = crypto.NewSecretKeyFromHexString(keyMaterial)
	}
	if err != nil {
		l.Sugar().Fatalf("failed to parse secret key: %v", err)
	}

	remoteClient, err := remoteSigner.NewClient(&remoteSigner.ClientConfig{
		BaseUrl:       url,
		PublicKeyHash: publicKeyHash,
	}, l)
	if err != nil {
		l.Sugar().Fatalw("failed to create remote signer client", "error", err)
	}

	ctx := context.Background()
	signer := operationSigner.NewOperationSigner(l)
	payload := []byte("Hello, remote signer!")

	resultRemote, err := signer.Sign(ctx, &operationSigner.SigningRequest{
		Payload:   payload,
		Watermark: types.WatermarkGeneric,
		Remote:    remoteClient,
	})
	if err != nil {
		l.Sugar().Fatalw("failed to sign with remote signer", "error", err)
	}

	resultLocal, err := signer.Sign(ctx, &operationSigner.SigningRequest{
		Payload:   payload,
		Watermark: types.WatermarkGeneric,
		SecretKey: secretKey,
	})
	if err != nil {
		l.Sugar().Fatalw("failed to sign with local key", "error", err)
	}

	fmt.Printf("Payload: %s\n", payload)
	fmt.Printf("Signature (remote): %s\n", resultRemote.Signature)
	fmt.Printf("Signature (local):  %s\n", resultLocal.Signature)

	if resultRemote.Equal(resultLocal) {
		fmt.Println("Signatures match!")
	} else {
		fmt.Println("Signatures do not match!")
	}
}
