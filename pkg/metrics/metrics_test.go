package metrics

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestServe(t *testing.T) {
	assert := assert.New(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	base := "http://" + ln.Addr().String()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Serve(ctx, ln, "v1.2.3") }()

	code, body := get(t, base+"/ping")
	assert.Equal(http.StatusOK, code)
	assert.Equal("OK", body)

	code, body = get(t, base+"/version")
	assert.Equal(http.StatusOK, code)
	assert.Equal("v1.2.3\n", body)

	code, body = get(t, base+"/metrics")
	assert.Equal(http.StatusOK, code)
	assert.Contains(body, "go_goroutines")

	cancel()
	select {
	case err := <-done:
		assert.NoError(err)
	case <-time.After(10 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestRunServerDisabled(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.NoError(t, RunServer(ctx, "", "dev"))
}

func TestRunServerBadAddr(t *testing.T) {
	assert.ErrorContains(t, RunServer(context.Background(), "not-an-address", "dev"), "metrics listener")
}
