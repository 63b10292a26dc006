package domain

import (
	"context"
	"errors"
	"net"
	"os"
	"syscall"
)

// TransportErrorKind is a finer classification of network failures, used for logging.
type TransportErrorKind string

const (
	TransportUnknown TransportErrorKind = "unknown"
	TransportTimeout TransportErrorKind = "timeout"
	TransportDNS     TransportErrorKind = "dns"
	TransportConn    TransportErrorKind = "connection"
	TransportCancel  TransportErrorKind = "canceled"
)

// ClassifyTransportError inspects a client error (typically a *url.Error) and
// returns its transport kind.
func ClassifyTransportError(err error) TransportErrorKind {
	if err == nil {
		return TransportUnknown
	}

	if errors.Is(err, context.Canceled) {
		return TransportCancel
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return TransportTimeout
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return TransportDNS
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.EHOSTUNREACH) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return TransportConn
	}

	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return TransportTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return TransportConn
	}

	return TransportUnknown
}
