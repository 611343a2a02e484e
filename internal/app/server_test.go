package app

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/intl-tools/translator-service/config"
)

func TestNewServer(t *testing.T) {
	cfg := config.ServerConfig{
		Port:            "9090",
		ReadTimeout:     2 * time.Second,
		WriteTimeout:    3 * time.Second,
		IdleTimeout:     4 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}

	srv := NewServer(http.NotFoundHandler(), cfg)
	require.NotNil(t, srv.httpServer)

	assert.Equal(t, ":9090", srv.httpServer.Addr)
	assert.Equal(t, 2*time.Second, srv.httpServer.ReadTimeout)
	assert.Equal(t, 3*time.Second, srv.httpServer.WriteTimeout)
	assert.Equal(t, 4*time.Second, srv.httpServer.IdleTimeout)
	assert.Equal(t, 5*time.Second, srv.shutdownTimeout)
}
