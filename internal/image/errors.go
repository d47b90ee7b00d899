package image

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"syscall"
)

// Kind classifies why a generation request failed.
type Kind int

const (
	KindUnknown Kind = iota
	KindTimeout
	KindHTTP
	KindConnection
)

func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindHTTP:
		return "http"
	case KindConnection:
		return "connection"
	default:
		return "unknown"
	}
}

// Error is returned by Generate for every failed request.
type Error struct {
	Kind Kind

	// StatusCode and Status are set for KindHTTP.
	StatusCode int
	Status     string

	// Detail is the beginning of a non-2xx response body, if any.
	Detail string

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindHTTP:
		if e.Detail != "" {
			return fmt.Sprintf("%s: %s", e.Status, e.Detail)
		}
		return e.Status
	case KindTimeout:
		return fmt.Sprintf("request timed out: %v", e.Err)
	case KindConnection:
		return fmt.Sprintf("connection failed: %v", e.Err)
	default:
		return fmt.Sprintf("%v", e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err. Errors that are not an *Error are
// KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func classify(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	redact(err)

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Kind: KindTimeout, Err: err}
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	switch {
	case errors.As(err, &dnsErr),
		errors.As(err, &opErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF):
		return &Error{Kind: KindConnection, Err: err}
	}
	return &Error{Kind: KindUnknown, Err: err}
}

// redact masks the key query value in any *url.Error within err, so the
// error text can be logged and printed.
func redact(err error) {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return
	}
	u, perr := url.Parse(urlErr.URL)
	if perr != nil {
		urlErr.URL = ""
		return
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	urlErr.URL = u.String()
}
