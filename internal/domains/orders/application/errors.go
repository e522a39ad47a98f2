package application

import (
	"errors"
	"fmt"
)

// DistanceUnavailableError reports that a tariff could not be computed
// because the distance lookup failed or found no route. It carries both
// input addresses so the reply can name them.
type DistanceUnavailableError struct {
	Departure string
	Arrival   string
	Err       error
}

func (e *DistanceUnavailableError) Error() string {
	return fmt.Sprintf("distance unavailable between %q and %q: %v", e.Departure, e.Arrival, e.Err)
}

func (e *DistanceUnavailableError) Unwrap() error { return e.Err }

// ErrReceiptWrite marks a failure to write the delivery note. The
// confirmation flow stops before persistence and notification when it
// occurs, since the receipt URL embedded in the message would be dead.
var ErrReceiptWrite = errors.New("receipt write failed")
