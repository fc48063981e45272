// Package network provides pre-configured HTTP clients for catalog and hoster communication.
//
// FetchPage performs requests with uTLS fingerprint emulation, mimicking Chrome's
// Client Hello signature. This is a hard requirement for the hosters this
// application scrapes: sophisticated anti-bot challenges (Cloudflare,
// DDoS-Guard) reject standard Go HTTP clients outright.
//
// Fingerprint Selection:
// uTLS HelloChrome_120 is used as it provides a modern, stable fingerprint
// that matches prevalent browser traffic.
//
// Protocol Negotiation (ALPN):
// The implementation performs automatic protocol detection. It first attempts
// an HTTP/2 connection (preferred by modern CDNs). If the handshake fails or
// the server only supports HTTP/1.1, it transparently falls back to a
// standard H1 transport with forced protocol advertisement.
package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"

	utls "github.com/refraction-networking/utls"
	"github.com/sapphirebluet/Movix/constant"
	"golang.org/x/net/http2"
)

// FetchPage retrieves a page body with browser-like headers over the fingerprinted transport.
// Returns (body, statusCode, error).
func FetchPage(rawURL string) (string, int, error) {
	return doTLSRequest(http.MethodGet, rawURL, nil, "")
}

// h2Transport is a shared HTTP/2 transport for servers that negotiate h2.
var (
	h2Transport     *http2.Transport
	h2TransportOnce sync.Once
)

func getH2Transport() *http2.Transport {
	h2TransportOnce.Do(func() {
		h2Transport = &http2.Transport{
			// Use custom DialTLSContext to provide utls connections
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialTLS(ctx, network, addr)
			},
		}
	})
	return h2Transport
}

// h1Transport is a shared HTTP/1.1 transport for servers that negotiate http/1.1.
var h1Transport = &http.Transport{
	DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialTLSH1(ctx, network, addr)
	},
}

// doTLSRequest performs an HTTP request with Chrome TLS fingerprint spoofing.
// It routes through the H2 transport first and falls back to HTTP/1.1 when
// the negotiation fails. Returns (body, statusCode, error).
func doTLSRequest(method, rawURL string, headers map[string]string, body string) (string, int, error) {
	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}

	req, err := http.NewRequest(method, rawURL, reqBody)
	if err != nil {
		return "", 0, fmt.Errorf("create request: %w", err)
	}

	// Set default headers to look like a real browser
	req.Header.Set("User-Agent", constant.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	// Apply custom headers (overrides defaults)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{
		Timeout:   Timeout(),
		Transport: getH2Transport(),
	}

	resp, err := client.Do(req)
	if err != nil {
		// If H2 fails, fallback to H1 transport
		if body != "" {
			reqBody = strings.NewReader(body) // reset reader
		}
		req2, _ := http.NewRequest(method, rawURL, reqBody)
		req2.Header = req.Header

		h1Client := &http.Client{
			Timeout:   Timeout(),
			Transport: h1Transport,
		}
		resp, err = h1Client.Do(req2)
		if err != nil {
			return "", 0, fmt.Errorf("request failed: %w", err)
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("read body: %w", err)
	}

	return string(respBody), resp.StatusCode, nil
}

// dialTLS creates a TLS connection mimicking Chrome 120's fingerprint.
// Advertises both h2 and http/1.1 (natural Chrome behavior).
func dialTLS(ctx context.Context, network, addr string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: Timeout()}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName:         host,
		InsecureSkipVerify: true,
		MinVersion:         tls.VersionTLS12,
	}, utls.HelloChrome_120)

	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}

// dialTLSH1 creates a TLS connection forcing HTTP/1.1 only (for fallback).
func dialTLSH1(ctx context.Context, network, addr string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: Timeout()}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName:         host,
		InsecureSkipVerify: false,
		MinVersion:         tls.VersionTLS12,
		NextProtos:         []string{"http/1.1"},
	}, utls.HelloChrome_120)

	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
