package server

import (
	"bytes"
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mpdash/internal/server/config"
)

func testConfig(addr string) *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.Addr = addr
	c.DatabaseDSN = ":memory:"
	return c
}

func TestApp_StopsOnSignal(t *testing.T) {
	var logs bytes.Buffer
	app, err := NewApp(context.Background(), testConfig("127.0.0.1:0"), &logs)
	require.NoError(t, err)

	sigCh := make(chan chan<- os.Signal, 1)
	app.notifyFn = func(c chan<- os.Signal, _ ...os.Signal) { sigCh <- c }

	done := make(chan error, 1)
	go func() { done <- app.Run(context.Background()) }()

	(<-sigCh) <- syscall.SIGTERM

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
	assert.Contains(t, logs.String(), `"signal":"terminated"`)
}

func TestApp_StopsOnContext(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig("127.0.0.1:0"), &bytes.Buffer{})
	require.NoError(t, err)
	app.notifyFn = func(chan<- os.Signal, ...os.Signal) {}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	require.NoError(t, app.Run(ctx))
}

func TestApp_ListenError(t *testing.T) {
	app, err := NewApp(context.Background(), testConfig("256.0.0.1:bad"), &bytes.Buffer{})
	require.NoError(t, err)
	app.notifyFn = func(chan<- os.Signal, ...os.Signal) {}

	require.Error(t, app.Run(context.Background()))
}

func TestNewApp_BadDatabase(t *testing.T) {
	c := testConfig(":0")
	c.DatabaseDSN = t.TempDir() // a directory is not a database
	_, err := NewApp(context.Background(), c, &bytes.Buffer{})
	require.Error(t, err)
}
