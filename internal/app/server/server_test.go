package server

import (
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_StartAndShutdown(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	srv := New(addr, time.Second, time.Second, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	srv.Start()

	require.Eventually(t, func() bool {
		res, err := http.Get("http://" + addr)
		if err != nil {
			return false
		}
		_ = res.Body.Close()
		return res.StatusCode == http.StatusNoContent
	}, 2*time.Second, 20*time.Millisecond)

	require.NoError(t, srv.Shutdown())
	err, open := <-srv.Notify()
	assert.NoError(t, err)
	assert.False(t, open)
}

func TestServer_NotifyOnListenFailure(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()

	srv := New(l.Addr().String(), time.Second, time.Second, http.NotFoundHandler())
	srv.Start()

	select {
	case err := <-srv.Notify():
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a listen error")
	}
}
