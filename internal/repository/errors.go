// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers or the aggregation facade to distinguish between different
// failure scenarios. The most important distinction for this service is
// between "the store answered and the result is empty" (not an error)
// and "the store could not be reached at all" (ErrUnavailable), which
// callers must never silently convert into an empty view.
package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
)

// ErrUnavailable is returned when the underlying database cannot be
// reached or a query times out. Handlers should translate this into an
// HTTP 503 response rather than serving a fabricated empty result.
var ErrUnavailable = errors.New("record store unavailable")

// classify wraps connectivity-class failures in ErrUnavailable and
// passes every other error through unchanged. Query errors (bad SQL,
// constraint violations) are not connectivity failures and keep their
// original identity.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	switch {
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return errors.Join(ErrUnavailable, err)
	}
	return err
}
