// Package domain defines domain-level errors for the prices feature.
package domain

import "errors"

// ErrDataUnavailable indicates that the external market provider could not
// produce a usable daily price series for the requested ticker and year.
// It is fatal to the analysis run that requested the series.
var ErrDataUnavailable = errors.New("price data unavailable")
