package order

import (
	"errors"
	"strings"
	"time"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned for an Order that bypassed NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("order must be created via NewOrder or RestoreOrder")

	// ErrInvalidOTP is returned when a presented handoff code does not match
	// the stored one. The order is left untouched.
	ErrInvalidOTP = errs.NewValueIsInvalidError("otp")
)

// Transition describes the effect of a status write.
// Released is set when the write freed a reserved vehicle that the caller
// must release in the same unit of work.
type Transition struct {
	From     Status
	To       Status
	Released *VehicleRef
}

// Changed reports whether the write moved the order to another status.
func (t Transition) Changed() bool {
	return t.From != t.To
}

// Order is the aggregate root of a trade order from acceptance to delivery.
//
// Order follows these invariants:
//   - Buyer, seller and product references never change after creation
//   - Terms, pickup and delivery addresses never change after creation
//   - A logistics record is present exactly while the status is processing, in_transit or delivered
//   - Handoff codes are set once, at assignment, and never regenerated
//
// version is the optimistic-concurrency token of the stored row. Repositories
// compare it on update and advance it with MarkPersisted.
type Order struct {
	id        kernel.UUID
	buyerID   kernel.UUID
	sellerID  kernel.UUID
	productID kernel.UUID

	terms           Terms
	status          Status
	paymentStatus   PaymentStatus
	logistics       *Logistics
	pickupAddress   Address
	deliveryAddress Address
	notes           string

	createdAt time.Time
	updatedAt time.Time
	version   int64

	isConstructed bool
}

// NewOrder places an order in the pending status with payment pending.
// Placement belongs to the negotiation flow; the constructor exists for it
// and for seeding.
//
// Parameters:
//   - id, buyerID, sellerID, productID: valid identifiers
//   - terms: the agreed commercial figures
//   - pickup, delivery: addresses with coordinates
//   - notes: free text, may be empty
//   - createdAt: placement time
//
// Returns:
//   - *Order: the new aggregate at version 0
//   - error: joined validation errors
//
// Example:
//
//	terms, _ := order.NewTerms(10, decimal.NewFromInt(32000), decimal.NewFromInt(320000),
//		decimal.NewFromInt(3200), decimal.NewFromInt(4500))
//	o, err := order.NewOrder(kernel.NewUUID(), buyerID, sellerID, productID, terms, pickup, delivery, "", time.Now())
func NewOrder(
	id, buyerID, sellerID, productID kernel.UUID,
	terms Terms,
	pickup, delivery Address,
	notes string,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		status:        Pending,
		paymentStatus: PaymentPending,
		notes:         strings.TrimSpace(notes),
		createdAt:     createdAt,
		updatedAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setReferences(id, buyerID, sellerID, productID),
		o.setTerms(terms),
		o.setAddresses(pickup, delivery),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot carries every persisted field of an Order.
type Snapshot struct {
	ID              kernel.UUID
	BuyerID         kernel.UUID
	SellerID        kernel.UUID
	ProductID       kernel.UUID
	Terms           Terms
	Status          Status
	PaymentStatus   PaymentStatus
	Logistics       *Logistics
	PickupAddress   Address
	DeliveryAddress Address
	Notes           string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Version         int64
}

// RestoreOrder rebuilds an aggregate from storage. Besides the field checks of
// NewOrder it rejects a row whose logistics record contradicts its status.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		logistics:     s.Logistics,
		notes:         s.Notes,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		version:       s.Version,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setReferences(s.ID, s.BuyerID, s.SellerID, s.ProductID),
		o.setTerms(s.Terms),
		o.setAddresses(s.PickupAddress, s.DeliveryAddress),
		s.Status.Validate(),
		s.PaymentStatus.Validate(),
	); err != nil {
		return nil, err
	}
	if err := s.Status.ValidateHasLogistics(s.Logistics != nil); err != nil {
		return nil, err
	}

	o.status = s.Status
	o.paymentStatus = s.PaymentStatus
	return o, nil
}

// Validate ensures the Order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) BuyerID() kernel.UUID { return o.buyerID }
func (o *Order) SellerID() kernel.UUID { return o.sellerID }
func (o *Order) ProductID() kernel.UUID { return o.productID }
func (o *Order) Terms() Terms { return o.terms }
func (o *Order) Status() Status { return o.status }
func (o *Order) PaymentStatus() PaymentStatus { return o.paymentStatus }
func (o *Order) PickupAddress() Address { return o.pickupAddress }
func (o *Order) DeliveryAddress() Address { return o.deliveryAddress }
func (o *Order) Notes() string { return o.notes }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }
func (o *Order) Version() int64 { return o.version }

// Logistics returns the transport record, nil before assignment.
func (o *Order) Logistics() *Logistics {
	return o.logistics
}

// ProviderID returns the assigned provider, nil before assignment.
func (o *Order) ProviderID() *kernel.UUID {
	if o.logistics == nil {
		return nil
	}
	id := o.logistics.providerID
	return &id
}

// IsBuyer, IsSeller and IsProvider answer the stakeholder questions used by
// the access policy.
func (o *Order) IsBuyer(id kernel.UUID) bool { return o.buyerID.IsEqual(id) }
func (o *Order) IsSeller(id kernel.UUID) bool { return o.sellerID.IsEqual(id) }
func (o *Order) IsProvider(id kernel.UUID) bool {
	return o.logistics != nil && o.logistics.IsAssignedTo(id)
}

// MarkPersisted records the version and modification time written by the store.
func (o *Order) MarkPersisted(version int64, at time.Time) {
	o.version = version
	o.updatedAt = at
}

// AssignLogistics attaches the transport record and moves the order to
// processing.
//
// Allowed only from accepted or paid. An order that already carries
// logistics is in processing or later and is refused, so handoff codes are
// never regenerated.
//
// Returns:
//   - nil on success
//   - ConflictError when the status does not allow assignment
func (o *Order) AssignLogistics(l *Logistics) error {
	if l == nil {
		return errs.NewValueIsRequiredError("logistics")
	}
	if o.status != Accepted && o.status != Paid {
		return mismatch(o.status, "assign logistics")
	}
	o.logistics = l
	o.status = Processing
	return nil
}

// ConfirmPickup checks the pickup code presented by the provider and moves
// the order to in_transit.
//
// Returns:
//   - ValueIsRequiredError when otp is empty
//   - ConflictError when the order is not processing (e.g. a replayed code)
//   - ErrInvalidOTP when the code does not match; the order is unchanged
func (o *Order) ConfirmPickup(otp string) error {
	if otp == "" {
		return errs.NewValueIsRequiredError("otp")
	}
	if o.status != Processing {
		return mismatch(o.status, "verify pickup")
	}
	if !matches(o.logistics.pickupOTP, otp) {
		return ErrInvalidOTP
	}
	o.status = InTransit
	return nil
}

// ConfirmDelivery checks the delivery code, moves the order to delivered and
// stamps the actual delivery time. The returned reference is the vehicle to
// release.
//
// Returns the same errors as ConfirmPickup, with in_transit as the required status.
func (o *Order) ConfirmDelivery(otp string, at time.Time) (VehicleRef, error) {
	if otp == "" {
		return VehicleRef{}, errs.NewValueIsRequiredError("otp")
	}
	if o.status != InTransit {
		return VehicleRef{}, mismatch(o.status, "verify delivery")
	}
	if !matches(o.logistics.deliveryOTP, otp) {
		return VehicleRef{}, ErrInvalidOTP
	}
	o.status = Delivered
	delivered := at
	o.logistics.actualDeliveryTime = &delivered
	return o.logistics.Vehicle(), nil
}

// Cancel moves a non-terminal order to cancelled. A logistics record is
// detached and its vehicle returned in Transition.Released so the caller can
// free it together with the order write. Cancelling a cancelled order is a
// no-op.
func (o *Order) Cancel() (Transition, error) {
	t := Transition{From: o.status, To: Cancelled}
	if o.status == Cancelled {
		return t, nil
	}
	if o.status.IsTerminal() {
		return Transition{}, mismatch(o.status, "cancel")
	}
	if o.logistics != nil {
		ref := o.logistics.Vehicle()
		t.Released = &ref
		o.logistics = nil
	}
	o.status = Cancelled
	return t, nil
}

// ChangeStatus is the generic status write.
//
// Rules:
//   - cancelled delegates to Cancel
//   - re-submitting the current status is accepted and changes nothing
//   - processing, in_transit and delivered are reachable only through
//     AssignLogistics, ConfirmPickup and ConfirmDelivery
//   - pending, accepted, rejected and paid may be written while the order is
//     not terminal and carries no logistics
func (o *Order) ChangeStatus(target Status) (Transition, error) {
	if err := target.Validate(); err != nil {
		return Transition{}, err
	}
	if target == Cancelled {
		return o.Cancel()
	}

	t := Transition{From: o.status, To: target}
	if target == o.status {
		return t, nil
	}
	if target.RequiresLogistics() {
		return Transition{}, errs.NewConflictError("order",
			target.String()+" is set by its dedicated operation, not by a status update")
	}
	if o.status.IsTerminal() || o.logistics != nil {
		return Transition{}, mismatch(o.status, "change status to "+target.String())
	}

	o.status = target
	return t, nil
}

// UpdateLocation records the live position of the shipment.
// Allowed while the vehicle is reserved (processing or in_transit).
func (o *Order) UpdateLocation(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("location", err)
	}
	if !o.status.HoldsVehicle() {
		return mismatch(o.status, "update location")
	}
	o.logistics.currentLocation = &point
	return nil
}

// SetEstimatedDelivery stores the arrival estimate supplied by the provider.
func (o *Order) SetEstimatedDelivery(eta time.Time) error {
	if eta.IsZero() {
		return errs.NewValueIsRequiredError("estimatedDeliveryTime")
	}
	if !o.status.HoldsVehicle() {
		return mismatch(o.status, "set estimated delivery")
	}
	o.logistics.estimatedDeliveryTime = &eta
	return nil
}

func (o *Order) setReferences(id, buyerID, sellerID, productID kernel.UUID) error {
	if err := errors.Join(
		required("id", id),
		required("buyerId", buyerID),
		required("sellerId", sellerID),
		required("productId", productID),
	); err != nil {
		return err
	}
	o.id, o.buyerID, o.sellerID, o.productID = id, buyerID, sellerID, productID
	return nil
}

func (o *Order) setTerms(t Terms) error {
	if t.quantity <= 0 {
		return errs.NewValueIsRequiredError("terms")
	}
	o.terms = t
	return nil
}

func (o *Order) setAddresses(pickup, delivery Address) error {
	var pickupErr, deliveryErr error
	if err := pickup.Validate(); err != nil {
		pickupErr = errs.NewValueIsRequiredErrorWithCause("pickupAddress", err)
	}
	if err := delivery.Validate(); err != nil {
		deliveryErr = errs.NewValueIsRequiredErrorWithCause("deliveryAddress", err)
	}
	if err := errors.Join(pickupErr, deliveryErr); err != nil {
		return err
	}
	o.pickupAddress, o.deliveryAddress = pickup, delivery
	return nil
}

func required(name string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(name, err)
	}
	return nil
}
