// Package netx contains shared HTTP plumbing for backends and the download
// streamer.
package netx

import (
	"fmt"
	"net/http"
	"net/url"
)

// NewHTTPClient returns an *http.Client that routes requests through proxyURL
// when it is non-empty. An empty proxyURL yields a client with the default
// transport (environment proxies still apply). The engine sets no timeout
// here; transports own their own deadlines.
func NewHTTPClient(proxyURL string) (*http.Client, error) {
	if proxyURL == "" {
		return &http.Client{}, nil
	}

	u, err := url.Parse(proxyURL)
	if err != nil {
		return nil, fmt.Errorf("parse proxy %q: %w", proxyURL, err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = http.ProxyURL(u)

	return &http.Client{Transport: transport}, nil
}
