package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecodeSecret(t *testing.T) {
	encoded := EncodeSecret(`{"api_key":"pat123","base_id":"appX"}`)
	assert.NotContains(t, encoded, "pat123")

	decoded, err := DecodeSecret(encoded)
	require.NoError(t, err)
	assert.Equal(t, `{"api_key":"pat123","base_id":"appX"}`, decoded)
}

func TestDecodeSecretInvalidInput(t *testing.T) {
	_, err := DecodeSecret("这不是base64!!")
	assert.Error(t, err)
}
