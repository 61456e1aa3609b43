package aws

import (
	"context"
	"fmt"
	"strings"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// Secret ids the storefront reads at startup.
const (
	SecretJWT      = "storefront/JWT_SECRET"
	SecretMongoURI = "storefront/MONGODB_URI"
)

// SecretsAPI is the subset of the Secrets Manager client used here.
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// StorefrontSecrets holds the values that may override the environment.
// A field is empty when its secret could not be read.
type StorefrontSecrets struct {
	JWTSecret string
	MongoURI  string
}

type SecretsClient struct {
	api SecretsAPI
}

func NewSecretsClient(cfg sdkaws.Config) *SecretsClient {
	return &SecretsClient{api: secretsmanager.NewFromConfig(cfg)}
}

// LoadStorefront reads the JWT secret and the MongoDB URI. Every failed
// lookup is returned; the other value is still filled in.
func (s *SecretsClient) LoadStorefront(ctx context.Context) (StorefrontSecrets, []error) {
	var (
		out  StorefrontSecrets
		errs []error
		err  error
	)
	if out.JWTSecret, err = s.value(ctx, SecretJWT); err != nil {
		errs = append(errs, err)
	}
	if out.MongoURI, err = s.value(ctx, SecretMongoURI); err != nil {
		errs = append(errs, err)
	}
	return out, errs
}

func (s *SecretsClient) value(ctx context.Context, id string) (string, error) {
	res, err := s.api.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{SecretId: sdkaws.String(id)})
	if err != nil {
		return "", fmt.Errorf("failed to get secret %s: %w", id, err)
	}
	if res.SecretString == nil || strings.TrimSpace(*res.SecretString) == "" {
		return "", fmt.Errorf("secret %s has no string value", id)
	}
	return strings.TrimSpace(*res.SecretString), nil
}
