// Package domain defines domain-level errors for the analysis feature.
package domain

import "errors"

// ErrInsufficientData indicates that the price series holds fewer than two
// samples, so no swing can be measured. It is fatal to the analysis run and
// no result is published.
var ErrInsufficientData = errors.New("insufficient price data: need at least 2 samples")
