// Package network provides pre-configured HTTP clients for catalog and hoster communication.
package network

import (
	"net/http"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/sapphirebluet/Movix/key"
)

// defaultTimeout applies when no fetch timeout is configured.
const defaultTimeout = 30 * time.Second

// Timeout returns the configured page-fetch timeout.
func Timeout() time.Duration {
	if seconds := viper.GetInt(key.StreamingNetworkTimeout); seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return defaultTimeout
}

var (
	client     *http.Client
	clientOnce sync.Once
)

// Client returns the singleton HTTP client shared across the application for
// plain (non-fingerprinted) requests such as the update check. It is built on
// first use so the configured timeout is honored, with increased concurrency
// limits tailored for scraping workflows.
func Client() *http.Client {
	clientOnce.Do(func() {
		client = &http.Client{
			Timeout:   Timeout(),
			Transport: newTransport(),
		}
	})
	return client
}

// newTransport initializes a tuned http.Transport with optimized pool and timeout parameters.
func newTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = Timeout()
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}
