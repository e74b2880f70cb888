// Package analytics implements the market-demand aggregation engine: it
// turns a window of flight observations into the derived views the
// dashboard renders. The aggregators themselves are pure functions of
// their input slice; the Service facade mediates between them and the
// record store.
package analytics

import "errors"

// ErrInvalidWindow is returned when the requested look-back window is
// not a positive number of days. The request is rejected before the
// record store is touched.
var ErrInvalidWindow = errors.New("invalid look-back window")

// ErrInvalidLimit is returned when a route-popularity limit is not a
// positive integer. Rejected before any aggregation runs.
var ErrInvalidLimit = errors.New("invalid limit")

// ErrSourceUnavailable is returned when the record store cannot be
// read. It is deliberately distinct from an empty window: a window with
// zero matching rows yields a well-formed empty view, while a failed
// read is surfaced to the caller untouched.
var ErrSourceUnavailable = errors.New("record source unavailable")
