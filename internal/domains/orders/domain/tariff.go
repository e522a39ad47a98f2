package domain

import (
	"fmt"
	"math"
)

// Delivery pricing is linear in trip distance: a fixed pickup fee plus a
// per-kilometer rate, both in FCFA.
const (
	BaseFee   = 500
	PerKmRate = 250
)

// Tariff is a computed delivery price in FCFA.
type Tariff int64

// TariffForDistance prices a trip of the given length in meters.
func TariffForDistance(meters float64) Tariff {
	km := meters / 1000
	return Tariff(math.Round(BaseFee + PerKmRate*km))
}

// Label renders the tariff the way it is shown to customers and stored on
// the order, e.g. "3000 FCFA".
func (t Tariff) Label() string {
	return fmt.Sprintf("%d FCFA", int64(t))
}
