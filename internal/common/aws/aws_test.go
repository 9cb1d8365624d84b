package aws

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientsSatisfyInterfaces(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	sesClient, err := NewSESClient(context.Background(), "us-east-1")
	require.NoError(t, err)
	snsClient, err := NewSNSClient(context.Background(), "us-east-1")
	require.NoError(t, err)

	var _ SESAPI = sesClient
	var _ SNSAPI = snsClient
	assert.NotNil(t, sesClient)
	assert.NotNil(t, snsClient)
}
