package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_CachesBody(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("audio"))
	}))
	defer srv.Close()

	c := New(Config{})
	defer c.Close()

	url := srv.URL + "/001.mp3"
	for range 3 {
		data, err := c.Fetch(context.Background(), url)
		require.NoError(t, err)
		assert.Equal(t, "audio", string(data))
	}
	assert.Equal(t, int32(1), hits.Load())
	assert.True(t, c.Cached(url))
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	defer srv.Close()

	c := New(Config{})
	defer c.Close()

	_, err := c.Fetch(context.Background(), srv.URL+"/404.mp3")
	assert.ErrorIs(t, err, ErrStatus)
	assert.False(t, c.Cached(srv.URL+"/404.mp3"), "failures must not be cached")
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := New(Config{})
	defer c.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.Fetch(ctx, srv.URL+"/slow.mp3")
	assert.Error(t, err)
}
