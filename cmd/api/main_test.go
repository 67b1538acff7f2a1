package main

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExitsZeroOnCancel(t *testing.T) {
	t.Setenv("USERSAPI_SERVER__HOST", "127.0.0.1")
	t.Setenv("USERSAPI_SERVER__PORT", "0")

	ctx, cancel := context.WithCancel(context.Background())

	code := make(chan int, 1)
	go func() { code <- run(ctx) }()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case got := <-code:
		assert.Equal(t, exitOK, got)
	case <-time.After(15 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}

func TestRunExitsOneWhenPortIsTaken(t *testing.T) {
	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = taken.Close() })

	_, port, err := net.SplitHostPort(taken.Addr().String())
	require.NoError(t, err)

	t.Setenv("USERSAPI_SERVER__HOST", "127.0.0.1")
	t.Setenv("USERSAPI_SERVER__PORT", port)

	assert.Equal(t, exitFailure, run(context.Background()))
}

func TestRunExitsOneOnBadConfig(t *testing.T) {
	t.Setenv("USERSAPI_DATABASE__URL", "mysql://localhost/app")

	assert.Equal(t, exitFailure, run(context.Background()))
}

func TestRunExitsOneOnInvalidEnv(t *testing.T) {
	t.Setenv("USERSAPI_SERVER__PORT", "not-a-port")

	assert.Equal(t, exitFailure, run(context.Background()))
}
