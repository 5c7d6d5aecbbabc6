package bootstrap

import (
	"context"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	"github.com/pennyboard/pennyboard-backend/internal/config"
)

// ResolvePlaidSecret returns the Plaid client secret, preferring a Secret
// Manager version (PLAIDSECRETNAME) over the raw PLAIDSECRET env var.
func ResolvePlaidSecret(ctx context.Context, cfg *config.Config) (string, error) {
	if cfg.PlaidSecretName == "" {
		return cfg.PlaidSecret, nil
	}

	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", err
	}
	defer client.Close()

	res, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: cfg.PlaidSecretName + "/versions/latest",
	})
	if err != nil {
		return "", err
	}
	return string(res.Payload.Data), nil
}
