package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubImageStorage(t *testing.T) {
	ctx := context.Background()
	stub := NewStubImageStorage()

	url, err := stub.Upload(ctx, "products/abc.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://images.test/products/abc.png", url)

	data, ok := stub.Object("products/abc.png")
	require.True(t, ok)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, stub.Delete(ctx, "products/abc.png"))
	_, ok = stub.Object("products/abc.png")
	assert.False(t, ok)
}
