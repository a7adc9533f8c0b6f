package kernel

import (
	"errors"
	"fmt"
	"math"

	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in degrees.
	LatitudeMin = -90.0
	// LatitudeMax is the maximum valid latitude in degrees.
	LatitudeMax = 90.0
	// LongitudeMin is the minimum valid longitude in degrees.
	LongitudeMin = -180.0
	// LongitudeMax is the maximum valid longitude in degrees.
	LongitudeMax = 180.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly initialized Location.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is an immutable geographic point (WGS84 degrees).
// The zero value is invalid: (0,0) is a real place, so construction is tracked
// by a guard rather than by the coordinate values.
//
// Example:
//
//	vendor, err := kernel.NewLocation(34.0, -118.4)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(vendor) // Location(34.000000,-118.400000)
type Location struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewLocation creates a Location after checking that lat is within
// [LatitudeMin, LatitudeMax] and lng within [LongitudeMin, LongitudeMax].
// NaN is rejected for either coordinate. All violations are reported together.
func NewLocation(lat float64, lng float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLat(lat), loc.setLng(lng)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// MustNewLocation is NewLocation for compile-time constants; it panics on invalid input.
func MustNewLocation(lat float64, lng float64) Location {
	loc, err := NewLocation(lat, lng)
	if err != nil {
		panic(err)
	}
	return loc
}

// Validate checks if the Location was properly constructed using a constructor.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Lat returns the latitude in degrees.
func (l Location) Lat() float64 {
	return l.lat
}

// Lng returns the longitude in degrees.
func (l Location) Lng() float64 {
	return l.lng
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.lat, l.lng)
}

// IsEqual reports whether both locations have exactly the same coordinates.
// Both locations must be properly constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l.lat == other.lat && l.lng == other.lng, nil
}

// Interpolate returns the point at the given fraction of the straight line
// from l to target:
//
//	lat = l.lat + (target.lat - l.lat) * fraction
//	lng = l.lng + (target.lng - l.lng) * fraction
//
// This is a planar approximation and does not follow roads or great circles.
// fraction must be within [0, 1]. The endpoints are returned exactly
// (l for 0, target for 1) so callers can compare them without tolerance.
//
// Example:
//
//	origin, _ := kernel.NewLocation(34.0, -118.4)
//	dest, _ := kernel.NewLocation(34.02, -118.45)
//	mid, _ := origin.Interpolate(dest, 0.5) // Location(34.010000,-118.425000)
func (l Location) Interpolate(target Location, fraction float64) (Location, error) {
	if err := errors.Join(l.Validate(), target.Validate()); err != nil {
		return Location{}, err
	}

	if math.IsNaN(fraction) || fraction < 0 || fraction > 1 {
		return Location{}, errs.NewValueIsOutOfRangeError("fraction", fraction, 0, 1)
	}

	switch fraction {
	case 0:
		return l, nil
	case 1:
		return target, nil
	}

	return NewLocation(
		l.lat+(target.lat-l.lat)*fraction,
		l.lng+(target.lng-l.lng)*fraction,
	)
}

// setLat sets the latitude with validation.
// Pointer receivers on the private setters let construction validate in place.
func (l *Location) setLat(lat float64) error {
	if math.IsNaN(lat) || lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("lat", lat, LatitudeMin, LatitudeMax)
	}

	l.lat = lat
	return nil
}

// setLng sets the longitude with validation.
func (l *Location) setLng(lng float64) error {
	if math.IsNaN(lng) || lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("lng", lng, LongitudeMin, LongitudeMax)
	}

	l.lng = lng
	return nil
}
