package fetch

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/vietddude/matchboard/internal/datastore"
)

// ErrorClass determines how the fetcher handles a failure.
type ErrorClass int

const (
	// ClassNetwork covers transient connectivity failures: retried with
	// backoff, then masked by the cache fallback.
	ClassNetwork ErrorClass = iota
	// ClassApplication covers datastore rejections (validation, auth,
	// not-found): propagated immediately, never retried.
	ClassApplication
)

func (c ErrorClass) String() string {
	if c == ClassApplication {
		return "application"
	}
	return "network"
}

// Classify determines the class of a fetch error. Typed errors are
// checked first; string patterns catch transports that only surface
// text. Unrecognized errors default to network-class, biasing toward
// availability.
func Classify(err error) ErrorClass {
	if err == nil {
		return ClassNetwork // Should not happen
	}

	if datastore.IsRequestError(err) || errors.Is(err, datastore.ErrNotFound) {
		return ClassApplication
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return ClassNetwork
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return ClassNetwork
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ClassNetwork
	}

	s := strings.ToLower(err.Error())

	if strings.Contains(s, "validation") || strings.Contains(s, "invalid") ||
		strings.Contains(s, "unauthorized") || strings.Contains(s, "forbidden") ||
		strings.Contains(s, "bad request") {
		return ClassApplication
	}

	// Connection refused, resets, DNS, timeouts, aborts
	return ClassNetwork
}
