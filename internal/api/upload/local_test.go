package upload

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalTransport_Put(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	lt, err := NewLocalTransport(dir, "/api/uploads")
	require.NoError(t, err)

	url, err := lt.Put(context.Background(), "partners/logo.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/api/uploads/partners/logo.png", url)

	got, err := os.ReadFile(filepath.Join(dir, "partners", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(got))
}

func TestLocalTransport_PutCancelled(t *testing.T) {
	lt, err := NewLocalTransport(t.TempDir(), "/api/uploads")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = lt.Put(ctx, "a.png", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLocalTransport_Resolve(t *testing.T) {
	lt, err := NewLocalTransport(t.TempDir(), "/api/uploads")
	require.NoError(t, err)

	ok := []string{"a.png", "partners/a.png", "x/../a.png"}
	for _, key := range ok {
		full, err := lt.Resolve(key)
		require.NoError(t, err, key)
		assert.True(t, filepath.IsAbs(full))
	}

	unsafe := []string{"", ".", "..", "../secret", "a/../../secret", `..\secret`, "a\x00b", "x/.."}
	for _, key := range unsafe {
		_, err := lt.Resolve(key)
		assert.ErrorIs(t, err, ErrUnsafePath, "key %q", key)
	}
}
