package aws_handler_test

import (
	"errors"
	"testing"

	"salesboard/src/config"
	aws_handler "salesboard/src/utils/aws"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type secretsManagerMock struct {
	secretsmanageriface.SecretsManagerAPI
	secrets map[string]*string
}

func (m *secretsManagerMock) GetSecretValue(input *secretsmanager.GetSecretValueInput) (*secretsmanager.GetSecretValueOutput, error) {
	value, ok := m.secrets[aws.StringValue(input.SecretId)]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: value}, nil
}

var _ config.SecretGetter = (*aws_handler.SecretManager)(nil)

func TestSecretManager(t *testing.T) {
	manager := aws_handler.NewSecretManager(&secretsManagerMock{secrets: map[string]*string{
		"salesboard/db":     aws.String("pg-password"),
		"salesboard/binary": nil,
	}})

	value, err := manager.GetSecretValue("salesboard/db")
	require.NoError(t, err)
	assert.Equal(t, "pg-password", value)

	_, err = manager.GetSecretValue("salesboard/binary")
	assert.ErrorContains(t, err, "no string value")

	_, err = manager.GetSecretValue("unknown")
	assert.Error(t, err)
}
