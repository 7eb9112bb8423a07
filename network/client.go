// Package network provides the HTTP client used to talk to the broadcaster.
package network

import (
	"net/http"
	"time"

	"github.com/jofsarpur/jofsarpur/constant"
)

// New returns a client whose requests identify the application and look like they come from the web player.
// A zero timeout leaves requests unbounded.
func New(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &headerTransport{
			base: newTransport(),
			headers: map[string]string{
				"User-Agent": constant.UserAgent,
				"Referer":    constant.RUVReferer,
				"Origin":     constant.RUVOrigin,
			},
		},
	}
}

// newTransport initializes a tuned http.Transport for a handful of sequential API calls.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConnsPerHost = 4
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	return t
}

// headerTransport sets default headers on requests that do not carry them already.
type headerTransport struct {
	base    http.RoundTripper
	headers map[string]string
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		if req.Header.Get(k) == "" {
			req.Header.Set(k, v)
		}
	}
	return t.base.RoundTrip(req)
}
