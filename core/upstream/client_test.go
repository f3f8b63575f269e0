package upstream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"gacha-tracker/core/apperr"
	"gacha-tracker/core/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(baseURL string, retrySeconds int) upstream.Client {
	return upstream.NewClient(upstream.Config{
		BaseURL:                baseURL,
		TimeoutSeconds:         5,
		RetryMaxElapsedSeconds: retrySeconds,
	})
}

func TestFetchProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/profile/100000001", r.URL.Path)
			_, _ = w.Write([]byte(`{"nickname":"Traveler"}`))
		}))
		defer srv.Close()

		body, err := newClient(srv.URL, 0).FetchProfile(context.Background(), 100000001)
		require.NoError(t, err)
		assert.JSONEq(t, `{"nickname":"Traveler"}`, string(body))
	})

	t.Run("Not Found Is Permanent", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		_, err := newClient(srv.URL, 10).FetchProfile(context.Background(), 42)
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "404 must not be retried")
	})

	t.Run("Rate Limit Is Retried", func(t *testing.T) {
		var calls int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		_, err := newClient(srv.URL, 10).FetchProfile(context.Background(), 42)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
	})

	t.Run("Server Error Surfaces As Upstream Unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := newClient(srv.URL, 0).FetchProfile(context.Background(), 42)
		assert.ErrorIs(t, err, apperr.ErrUpstreamUnavailable)
	})
}

func TestFetchReference(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reference", r.URL.Path)
		_, _ = w.Write([]byte(`[{"game":"genshin","standard_pool":[10000003]}]`))
	}))
	defer srv.Close()

	body, err := newClient(srv.URL, 0).FetchReference(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(body), "genshin")
}
