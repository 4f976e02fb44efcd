package netx

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHTTPClient_NoProxy(t *testing.T) {
	c, err := NewHTTPClient("")
	require.NoError(t, err)
	assert.Nil(t, c.Transport, "empty proxy keeps the default transport")
}

func TestNewHTTPClient_InvalidProxy(t *testing.T) {
	_, err := NewHTTPClient("://bad")
	require.Error(t, err)
}

func TestNewHTTPClient_ProxyIsApplied(t *testing.T) {
	c, err := NewHTTPClient("http://127.0.0.1:8118")
	require.NoError(t, err)

	transport, ok := c.Transport.(*http.Transport)
	require.True(t, ok)
	require.NotNil(t, transport.Proxy)

	req, err := http.NewRequest(http.MethodGet, "https://example.test/x", nil)
	require.NoError(t, err)

	var proxied *url.URL
	proxied, err = transport.Proxy(req)
	require.NoError(t, err)
	require.NotNil(t, proxied)
	assert.Equal(t, "127.0.0.1:8118", proxied.Host)
}

func TestNewHTTPClient_RequestsStillWork(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer ts.Close()

	c, err := NewHTTPClient("")
	require.NoError(t, err)

	resp, err := c.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}
