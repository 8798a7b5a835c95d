package order

import (
	"strings"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/pkg/errs"
)

// Address is a pickup or delivery address. Coordinates are mandatory; the
// textual parts are kept as given.
type Address struct {
	street      string
	city        string
	state       string
	pincode     string
	coordinates kernel.GeoPoint
}

func NewAddress(street, city, state, pincode string, coordinates kernel.GeoPoint) (Address, error) {
	if err := coordinates.Validate(); err != nil {
		return Address{}, errs.NewValueIsRequiredErrorWithCause("coordinates", err)
	}
	return Address{
		street:      strings.TrimSpace(street),
		city:        strings.TrimSpace(city),
		state:       strings.TrimSpace(state),
		pincode:     strings.TrimSpace(pincode),
		coordinates: coordinates,
	}, nil
}

func (a Address) Street() string { return a.street }
func (a Address) City() string { return a.city }
func (a Address) State() string { return a.state }
func (a Address) Pincode() string { return a.pincode }
func (a Address) Coordinates() kernel.GeoPoint { return a.coordinates }

// Validate fails for the zero Address.
func (a Address) Validate() error {
	return a.coordinates.Validate()
}
