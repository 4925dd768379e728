// pkg/workshop/client_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: httptest server
// PURPOSE: Test changelog fetching, retries and error codes

package workshop

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/arthur-debert/a3update/pkg/config"
	"github.com/arthur-debert/a3update/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string, retries int) *Client {
	return NewClient(ClientOptions{BaseURL: url, Timeout: 5 * time.Second, Retries: retries})
}

func TestChangelogFetch(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(changelogPage(1700000000)))
	}))
	defer srv.Close()

	page, err := newTestClient(srv.URL+"/changelog/", 1).Changelog(context.Background(), "450814997")
	require.NoError(t, err)
	assert.Equal(t, "/changelog/450814997", path)
	assert.Contains(t, page, `<p id="1700000000">`)
}

func TestChangelogRetriesServerErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	page, err := newTestClient(srv.URL, 1).Changelog(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "ok", page)
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
}

func TestChangelogGivesUpAfterRetries(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 1).Changelog(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrChangelogFetch))
	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	assert.Equal(t, 2, errors.GetErrorDetails(err)["attempts"])
}

func TestChangelogDoesNotRetryClientErrors(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, 3).Changelog(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrChangelogFetch))
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestChangelogTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url, 1).Changelog(context.Background(), "1")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrChangelogFetch))
}

func TestNewClientFromConfig(t *testing.T) {
	c := NewClientFromConfig(config.Workshop{
		ChangelogURL: "https://example.test/changelog/",
		HTTPTimeout:  time.Second,
		Retries:      2,
		RetryDelay:   time.Millisecond,
	})
	assert.Equal(t, "https://example.test/changelog/42", c.PageURL("42"))
	assert.Equal(t, 2, c.retries)
	assert.Equal(t, time.Second, c.httpClient.Timeout)
}
