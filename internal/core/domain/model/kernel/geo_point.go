package kernel

import (
	"errors"
	"fmt"

	"ricetrade/internal/pkg/errs"
	"ricetrade/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when a zero GeoPoint is used.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint or GeoPointFromLngLat")

// GeoPoint is an immutable WGS84 position. It is used for pickup and delivery
// addresses and for the live position of a vehicle.
//
// Example:
//
//	p, err := kernel.NewGeoPoint(22.5726, 88.3639)
//	fmt.Println(p) // GeoPoint(22.572600,88.363900)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a point from latitude and longitude in degrees.
//
// Parameters:
//   - lat: latitude, [LatitudeMin..LatitudeMax]
//   - lng: longitude, [LongitudeMin..LongitudeMax]
//
// Returns:
//   - GeoPoint: a valid point
//   - error: ValueIsOutOfRangeError for every coordinate out of bounds, joined
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	p := GeoPoint{guard: guard.NewConstructorGuard()}

	if err := errors.Join(p.setLat(lat), p.setLng(lng)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// GeoPointFromLngLat builds a point from a GeoJSON style [longitude, latitude]
// pair, the shape clients send and the store keeps.
//
// Example:
//
//	p, err := kernel.GeoPointFromLngLat([]float64{88.3639, 22.5726})
func GeoPointFromLngLat(coordinates []float64) (GeoPoint, error) {
	if len(coordinates) != 2 {
		return GeoPoint{}, errs.NewValueIsInvalidErrorWithCause("coordinates",
			fmt.Errorf("expected [lng, lat], got %d values", len(coordinates)))
	}
	return NewGeoPoint(coordinates[1], coordinates[0])
}

// Validate fails with ErrGeoPointIsNotConstructed for the zero value.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Lat() float64 {
	return p.lat
}

func (p GeoPoint) Lng() float64 {
	return p.lng
}

// LngLat returns the GeoJSON ordering used on the wire and in storage.
func (p GeoPoint) LngLat() []float64 {
	return []float64{p.lng, p.lat}
}

func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng && p.Validate() == nil && other.Validate() == nil
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.lat, p.lng)
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < LatitudeMin || lat > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, LatitudeMin, LatitudeMax)
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLng(lng float64) error {
	if lng < LongitudeMin || lng > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", lng, LongitudeMin, LongitudeMax)
	}
	p.lng = lng
	return nil
}
