package crypto

import (
	"context"
	"fmt"
	"sync"

	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

// VaultJWTSecretKey is the field holding the signing secret inside the Vault secret.
const VaultJWTSecretKey = "jwt_secret"

// minSecretLength is the shortest HMAC secret accepted for HS256.
const minSecretLength = 32

// SecretProvider supplies the HMAC key used to sign access tokens.
type SecretProvider interface {
	SigningKey(ctx context.Context) ([]byte, error)
}

// StaticSecretProvider serves a secret taken from configuration.
type StaticSecretProvider struct {
	secret []byte
}

func NewStaticSecretProvider(secret string) (*StaticSecretProvider, error) {
	if len(secret) < minSecretLength {
		return nil, errors.ErrInvalidRequest(fmt.Sprintf("jwt secret must be at least %d bytes", minSecretLength))
	}
	return &StaticSecretProvider{secret: []byte(secret)}, nil
}

func (p *StaticSecretProvider) SigningKey(context.Context) ([]byte, error) {
	return p.secret, nil
}

// VaultSecretProvider loads the secret from Vault on first use and keeps it
// for the life of the process. A failed load is retried on the next call.
type VaultSecretProvider struct {
	client VaultClient
	path   string
	log    logger.Logger

	mu     sync.Mutex
	secret []byte
}

func NewVaultSecretProvider(client VaultClient, path string, log logger.Logger) *VaultSecretProvider {
	return &VaultSecretProvider{client: client, path: path, log: log.WithComponent("secret_provider")}
}

func (p *VaultSecretProvider) SigningKey(ctx context.Context) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.secret != nil {
		return p.secret, nil
	}

	data, err := p.client.GetSecret(ctx, p.path)
	if err != nil {
		return nil, err
	}
	raw, ok := data[VaultJWTSecretKey].(string)
	if !ok || len(raw) < minSecretLength {
		return nil, errors.ErrInternal(fmt.Sprintf("vault secret %s has no usable %s", p.path, VaultJWTSecretKey))
	}
	p.secret = []byte(raw)
	p.log.Info(ctx, "Loaded JWT signing secret from Vault", logger.String("path", p.path))
	return p.secret, nil
}
