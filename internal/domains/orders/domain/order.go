package domain

import (
	"errors"
	"time"
)

var (
	ErrMissingDeparture = errors.New("departure address is required")
	ErrMissingArrival   = errors.New("arrival address is required")
)

// DefaultClientName stands in when the conversation never captured a name.
const DefaultClientName = "Client"

// Order is the record of a confirmed delivery. It is created exactly once,
// at the moment a confirmation computes a tariff, and never mutated.
type Order struct {
	DepartureAddress string
	ArrivalAddress   string
	Tariff           string
	Date             string
	ClientName       string
	Reference        string
}

// NewOrder assembles the order for a delivery confirmed at the given
// instant. Both addresses must already be formatted and non-empty; the
// client name defaults to DefaultClientName when absent.
func NewOrder(departure, arrival string, tariff Tariff, clientName string, now time.Time) (*Order, error) {
	if departure == "" {
		return nil, ErrMissingDeparture
	}
	if arrival == "" {
		return nil, ErrMissingArrival
	}
	if clientName == "" {
		clientName = DefaultClientName
	}
	return &Order{
		DepartureAddress: departure,
		ArrivalAddress:   arrival,
		Tariff:           tariff.Label(),
		Date:             now.Format("02/01/2006"),
		ClientName:       clientName,
		Reference:        NewReference(now),
	}, nil
}

// NewReference derives the order reference from the creation instant:
// "CMD-" followed by exactly 14 digits. References issued later in the
// same process never sort before earlier ones; nothing guards against
// collisions within the same second.
func NewReference(now time.Time) string {
	return "CMD-" + now.UTC().Format("20060102150405")
}
