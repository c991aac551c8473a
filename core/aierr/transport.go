package aierr

import (
	"context"
	"errors"
	"net"
	"net/url"
	"os"
	"syscall"
)

// ClassifyTransport inspects an error returned by an HTTP client call that
// produced no response and reports whether it was a timeout, a connection
// failure, or something else (e.g. a request that could not be built).
func ClassifyTransport(err error) TransportFailure {
	if err == nil {
		return TransportNone
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return TransportTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return TransportTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return TransportConnection
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return TransportConnection
	}

	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.EHOSTUNREACH) || errors.Is(err, syscall.ENETUNREACH) {
		return TransportConnection
	}

	// The remaining *url.Error shapes (EOF mid-handshake, TLS failures) all
	// mean the request never got an answer.
	var urlErr *url.Error
	if errors.As(err, &urlErr) && !errors.Is(err, context.Canceled) {
		return TransportConnection
	}

	return TransportNone
}
