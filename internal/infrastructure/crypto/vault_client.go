package crypto

import (
	"context"
	goerrors "errors"

	vault "github.com/hashicorp/vault/api"

	"github.com/turtacn/acadmin/internal/config"
	"github.com/turtacn/acadmin/pkg/errors"
	"github.com/turtacn/acadmin/pkg/logger"
)

// VaultClient reads and writes secrets in a Vault KV v2 engine.
type VaultClient interface {
	GetSecret(ctx context.Context, secretPath string) (map[string]interface{}, error)
	PutSecret(ctx context.Context, secretPath string, data map[string]interface{}) error
}

type vaultClientImpl struct {
	client    *vault.Client
	mountPath string
	log       logger.Logger
}

// NewVaultClient creates a token-authenticated Vault client.
func NewVaultClient(cfg *config.VaultConfig, log logger.Logger) (VaultClient, error) {
	vaultConfig := vault.DefaultConfig()
	vaultConfig.Address = cfg.Address

	client, err := vault.NewClient(vaultConfig)
	if err != nil {
		return nil, errors.ErrInternal("failed to create vault client").WithCause(err)
	}
	client.SetToken(cfg.Token)

	mount := cfg.MountPath
	if mount == "" {
		mount = "secret"
	}
	return &vaultClientImpl{client: client, mountPath: mount, log: log.WithComponent("vault_client")}, nil
}

func (v *vaultClientImpl) GetSecret(ctx context.Context, secretPath string) (map[string]interface{}, error) {
	secret, err := v.client.KVv2(v.mountPath).Get(ctx, secretPath)
	if err != nil {
		if goerrors.Is(err, vault.ErrSecretNotFound) {
			return nil, errors.ErrNotFound("vault secret", secretPath)
		}
		v.log.Error(ctx, "Vault read failed", err, logger.String("path", secretPath))
		return nil, errors.ErrServiceUnavailable("vault is unavailable").WithCause(err)
	}
	if secret == nil || secret.Data == nil {
		return nil, errors.ErrNotFound("vault secret", secretPath)
	}
	return secret.Data, nil
}

func (v *vaultClientImpl) PutSecret(ctx context.Context, secretPath string, data map[string]interface{}) error {
	if _, err := v.client.KVv2(v.mountPath).Put(ctx, secretPath, data); err != nil {
		v.log.Error(ctx, "Vault write failed", err, logger.String("path", secretPath))
		return errors.ErrServiceUnavailable("vault is unavailable").WithCause(err)
	}
	return nil
}
