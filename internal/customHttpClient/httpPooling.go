package customHttpClient

import (
	"net/http"
	"sync"

	"github.com/swippe/quickcommerce/internal/config"
)

var (
	once   sync.Once
	client *http.Client
)

// GetPooledClient returns the shared HTTP client the Gemini clients ride on,
// so embedding and generation calls reuse connections instead of paying a
// fresh handshake per request.
func GetPooledClient() *http.Client {
	once.Do(func() {
		client = &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        config.MaxIdleConns,
				MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
				IdleConnTimeout:     config.IdleConnTimeout,
			},
		}
	})
	return client
}
