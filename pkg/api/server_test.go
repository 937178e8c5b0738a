package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/bridgefs/pkg/provider"
)

func TestServerShutdownTimeout(t *testing.T) {
	mounts := provider.NewMounts()
	t.Cleanup(func() { _ = mounts.Close() })

	server := NewServer(APIConfig{}, mounts, nil)
	require.NotNil(t, server)
	assert.Equal(t, 5*time.Second, server.shutdownTimeout)

	server.SetShutdownTimeout(30 * time.Second)
	assert.Equal(t, 30*time.Second, server.shutdownTimeout)

	// Non-positive values keep the current timeout.
	server.SetShutdownTimeout(0)
	assert.Equal(t, 30*time.Second, server.shutdownTimeout)
	server.SetShutdownTimeout(-time.Second)
	assert.Equal(t, 30*time.Second, server.shutdownTimeout)
}

func TestServerAppliesConfigDefaults(t *testing.T) {
	mounts := provider.NewMounts()
	t.Cleanup(func() { _ = mounts.Close() })

	server := NewServer(APIConfig{}, mounts, nil)
	assert.Equal(t, 9618, server.Port())
}
