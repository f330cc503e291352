package http

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/NFHS-Explorer/internal/config"
	"github.com/turtacn/NFHS-Explorer/internal/interfaces/http/handlers"
	"github.com/turtacn/NFHS-Explorer/internal/testutil"
)

func TestServer_ServeAndStop(t *testing.T) {
	logger := testutil.NewMockLogger()
	router := NewRouter(RouterConfig{HealthHandler: handlers.NewHealthHandler("test")})
	srv := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: 0, ShutdownTimeout: time.Second}, router, logger)
	assert.Equal(t, router, srv.Handler())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Stop(context.Background()))
	select {
	case err := <-done:
		assert.NoError(t, err, "Serve returns nil after a graceful stop")
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}

	assert.True(t, logger.HasMessage("info", "HTTP server listening"))
	assert.True(t, logger.HasMessage("info", "HTTP server stopped"))
}

func TestServer_StartFailsWhenPortTaken(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	port := ln.Addr().(*net.TCPAddr).Port
	srv := NewServer(config.ServerConfig{Host: "127.0.0.1", Port: port}, http.NotFoundHandler(), nil)
	err = srv.Start()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on")
}

//Personal.AI order the ending
