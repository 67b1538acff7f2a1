//go:build unix

package main

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExitsZeroOnShutdownSignals(t *testing.T) {
	for _, sig := range []syscall.Signal{syscall.SIGTERM, syscall.SIGINT} {
		t.Run(sig.String(), func(t *testing.T) {
			t.Setenv("USERSAPI_SERVER__HOST", "127.0.0.1")
			t.Setenv("USERSAPI_SERVER__PORT", "0")

			ctx, stop := notifyContext(context.Background())
			defer stop()

			code := make(chan int, 1)
			go func() { code <- run(ctx) }()

			time.Sleep(200 * time.Millisecond)
			require.NoError(t, syscall.Kill(os.Getpid(), sig))

			select {
			case got := <-code:
				assert.Equal(t, exitOK, got)
			case <-time.After(15 * time.Second):
				t.Fatalf("run did not return after %s", sig)
			}
		})
	}
}
