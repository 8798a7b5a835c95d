package order

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"time"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/pkg/errs"
)

// OTPLength is the number of decimal digits in a handoff code.
const OTPLength = 6

// VehicleRef points at one vehicle inside a provider's fleet.
type VehicleRef struct {
	ProviderID    kernel.UUID
	VehicleNumber string
}

// Logistics is the transport record attached to an order at assignment.
// Driver details are a snapshot taken at that moment; later fleet edits do
// not change them. Both handoff codes are fixed for the life of the record.
type Logistics struct {
	providerID    kernel.UUID
	vehicleNumber string
	driverName    string
	driverPhone   string
	pickupOTP     string
	deliveryOTP   string

	currentLocation       *kernel.GeoPoint
	estimatedDeliveryTime *time.Time
	actualDeliveryTime    *time.Time
}

// NewLogistics builds the record created by an assignment.
//
// Parameters:
//   - providerID: the assigned logistics provider
//   - vehicleNumber: the reserved vehicle, unique within the provider's fleet
//   - driverName, driverPhone: snapshot of the vehicle's driver
//   - pickupOTP, deliveryOTP: two different 6-digit codes
//
// Returns:
//   - *Logistics: the record, with no location or delivery times yet
//   - error: joined validation errors
func NewLogistics(
	providerID kernel.UUID,
	vehicleNumber, driverName, driverPhone, pickupOTP, deliveryOTP string,
) (*Logistics, error) {
	l := &Logistics{
		providerID:    providerID,
		vehicleNumber: strings.TrimSpace(vehicleNumber),
		driverName:    driverName,
		driverPhone:   driverPhone,
		pickupOTP:     pickupOTP,
		deliveryOTP:   deliveryOTP,
	}
	if err := l.validate(); err != nil {
		return nil, err
	}
	return l, nil
}

// RestoreLogistics rebuilds a persisted record. It applies the same checks as
// NewLogistics so a corrupt row never becomes an aggregate.
func RestoreLogistics(
	providerID kernel.UUID,
	vehicleNumber, driverName, driverPhone, pickupOTP, deliveryOTP string,
	currentLocation *kernel.GeoPoint,
	estimatedDeliveryTime, actualDeliveryTime *time.Time,
) (*Logistics, error) {
	l, err := NewLogistics(providerID, vehicleNumber, driverName, driverPhone, pickupOTP, deliveryOTP)
	if err != nil {
		return nil, err
	}
	l.currentLocation = currentLocation
	l.estimatedDeliveryTime = estimatedDeliveryTime
	l.actualDeliveryTime = actualDeliveryTime
	return l, nil
}

func (l *Logistics) validate() error {
	var vehicleErr error
	if l.vehicleNumber == "" {
		vehicleErr = errs.NewValueIsRequiredError("vehicleNumber")
	}
	var distinctErr error
	if l.pickupOTP != "" && l.pickupOTP == l.deliveryOTP {
		distinctErr = errs.NewValueIsInvalidErrorWithCause("deliveryOTP",
			errors.New("pickup and delivery codes must differ"))
	}
	return errors.Join(
		l.providerID.Validate(),
		vehicleErr,
		ValidateOTPFormat("pickupOTP", l.pickupOTP),
		ValidateOTPFormat("deliveryOTP", l.deliveryOTP),
		distinctErr,
	)
}

// ValidateOTPFormat accepts exactly OTPLength ASCII digits.
func ValidateOTPFormat(name, code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError(name)
	}
	if len(code) != OTPLength {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("expected %d digits", OTPLength))
	}
	for i := range len(code) {
		if code[i] < '0' || code[i] > '9' {
			return errs.NewValueIsInvalidErrorWithCause(name, errors.New("must be numeric"))
		}
	}
	return nil
}

func (l *Logistics) ProviderID() kernel.UUID { return l.providerID }
func (l *Logistics) VehicleNumber() string { return l.vehicleNumber }
func (l *Logistics) DriverName() string { return l.driverName }
func (l *Logistics) DriverPhone() string { return l.driverPhone }
func (l *Logistics) PickupOTP() string { return l.pickupOTP }
func (l *Logistics) DeliveryOTP() string { return l.deliveryOTP }

func (l *Logistics) CurrentLocation() *kernel.GeoPoint { return l.currentLocation }
func (l *Logistics) EstimatedDeliveryTime() *time.Time { return l.estimatedDeliveryTime }
func (l *Logistics) ActualDeliveryTime() *time.Time { return l.actualDeliveryTime }

// Vehicle returns the reference of the reserved vehicle.
func (l *Logistics) Vehicle() VehicleRef {
	return VehicleRef{ProviderID: l.providerID, VehicleNumber: l.vehicleNumber}
}

// IsAssignedTo reports whether providerID runs this shipment.
func (l *Logistics) IsAssignedTo(providerID kernel.UUID) bool {
	return l.providerID.IsEqual(providerID)
}

func matches(expected, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(expected), []byte(presented)) == 1
}
