// Package entity defines the domain models for the prices feature.
package entity

import "time"

// PricePoint represents the closing price of a stock on a single trading day.
type PricePoint struct {
	Date  time.Time // Trading day (UTC midnight, day resolution)
	Price float64   // Closing price, always positive
}
