package httpclient

import (
	"net"
	"net/http"
	"time"

	"github.com/creatorkit/server/internal/shared/config"
)

// New creates the shared outbound HTTP client used by provider adapters.
func New(cfg config.HTTPClientConfig) *http.Client {
	return WithTimeout(cfg, cfg.Timeout)
}

// WithTimeout returns a client on a fresh transport tuned by cfg, with the
// overall request deadline set to timeout. A zero timeout falls back to
// cfg.Timeout.
func WithTimeout(cfg config.HTTPClientConfig, timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = cfg.Timeout
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        cfg.MaxIdleConns,
		MaxIdleConnsPerHost: cfg.MaxIdleConnsPerHost,
		IdleConnTimeout:     cfg.IdleConnTimeout,
		TLSHandshakeTimeout: cfg.TLSHandshakeTimeout,
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}
