package customHttpClient

import (
	"net/http"

	"github.com/contentflow/ingestAPI/internal/config"
)

var customTransport = &http.Transport{
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
}

// PooledClient is shared by the completion providers so the two passes of a
// run reuse connections instead of paying a fresh TLS handshake each call.
func PooledClient() *http.Client {
	return &http.Client{Transport: customTransport}
}
