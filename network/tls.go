package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/kyoku-cli/kyoku/constant"
	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

// Browser performs requests with a Chrome TLS fingerprint.
//
// Google's CDN hosts occasionally reject stock Go TLS handshakes with
// opaque 403 responses, which would make a perfectly playable direct URL
// look dead to the probe. The fingerprint leverages
// refraction-networking/utls mimicking Chrome's Client Hello signature.
//
// Fingerprint Selection:
// uTLS HelloChrome_120 is used as it provides a modern, stable fingerprint
// that matches prevalent browser traffic.
//
// Protocol Negotiation (ALPN):
// An HTTP/2 connection is attempted first (preferred by modern CDNs). If the
// handshake fails or the server only supports HTTP/1.1, the request
// transparently falls back to a standard H1 transport with forced protocol
// advertisement.
func Browser(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", constant.UserAgent)

	client := &http.Client{
		Timeout:   browserTimeout,
		Transport: getH2Transport(),
	}

	resp, err := client.Do(req)
	if err == nil {
		return resp, nil
	}

	// If H2 fails, fallback to H1 transport.
	fallback, cloneErr := http.NewRequestWithContext(req.Context(), req.Method, req.URL.String(), nil)
	if cloneErr != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	fallback.Header = req.Header

	h1Client := &http.Client{
		Timeout:   browserTimeout,
		Transport: h1Transport,
	}
	resp, err = h1Client.Do(fallback)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	return resp, nil
}

const browserTimeout = 30 * time.Second

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

// dialTLS creates a TLS connection mimicking Chrome 120's fingerprint.
// Advertises both h2 and http/1.1 (natural Chrome behavior).
func dialTLS(ctx context.Context, network, addr string) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: browserTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
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

	dialer := &net.Dialer{Timeout: browserTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
		NextProtos: []string{"http/1.1"},
	}, utls.HelloChrome_120)

	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}
