package ports

import (
	"context"
	"errors"
)

// ErrNoRoute signals the distance service could not resolve a driving
// route between the two addresses.
var ErrNoRoute = errors.New("no driving route between addresses")

// DistanceEstimator resolves the driving distance, in meters, between two
// formatted addresses. Every call hits the upstream service; results are
// never cached and failed lookups are never retried.
type DistanceEstimator interface {
	DrivingDistance(ctx context.Context, origin, destination string) (float64, error)
}
