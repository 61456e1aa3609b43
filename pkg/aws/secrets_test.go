package aws

import (
	"context"
	"errors"
	"testing"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets struct {
	values map[string]*string
	asked  []string
}

func (f *fakeSecrets) GetSecretValue(_ context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	id := sdkaws.ToString(in.SecretId)
	f.asked = append(f.asked, id)
	v, ok := f.values[id]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: v}, nil
}

func TestSecretsClient_LoadStorefront(t *testing.T) {
	ctx := context.Background()

	t.Run("both present", func(t *testing.T) {
		fake := &fakeSecrets{values: map[string]*string{
			SecretJWT:      sdkaws.String("jwt-from-sm\n"),
			SecretMongoURI: sdkaws.String("mongodb://sm:27017"),
		}}
		got, errs := (&SecretsClient{api: fake}).LoadStorefront(ctx)

		assert.Empty(t, errs)
		assert.Equal(t, StorefrontSecrets{JWTSecret: "jwt-from-sm", MongoURI: "mongodb://sm:27017"}, got)
		assert.Equal(t, []string{SecretJWT, SecretMongoURI}, fake.asked)
	})

	t.Run("missing and binary secrets", func(t *testing.T) {
		fake := &fakeSecrets{values: map[string]*string{SecretJWT: nil}}
		got, errs := (&SecretsClient{api: fake}).LoadStorefront(ctx)

		assert.Equal(t, StorefrontSecrets{}, got)
		require.Len(t, errs, 2)
		assert.ErrorContains(t, errs[0], "has no string value")
		assert.ErrorContains(t, errs[1], SecretMongoURI)
	})
}
