package order

import (
	"fmt"
	"strings"

	"ricetrade/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// State transitions:
//
//	pending ──> accepted ──> paid ──> processing ──> in_transit ──> delivered
//	   │           │          │           │              │
//	   └───────────┴──────────┴───────────┴──────────────┴──> cancelled
//	   │           │
//	   └───────────┴──> rejected
//
// pending, accepted and paid are produced upstream by negotiation; the
// fulfillment core drives the order from accepted/paid onward. delivered,
// cancelled and rejected are terminal.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota
	Pending
	Accepted
	Rejected
	Paid
	Processing
	InTransit
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Pending:    "pending",
	Accepted:   "accepted",
	Rejected:   "rejected",
	Paid:       "paid",
	Processing: "processing",
	InTransit:  "in_transit",
	Delivered:  "delivered",
	Cancelled:  "cancelled",
}

// ParseStatus maps a wire status name. Unknown names are invalid input.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusNames {
		if name == strings.TrimSpace(s) {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. ones read from storage.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no further transition may leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Rejected
}

// RequiresLogistics reports whether an order in s must carry a logistics
// record. It is the single source of the logistics presence invariant.
func (s Status) RequiresLogistics() bool {
	return s == Processing || s == InTransit || s == Delivered
}

// HoldsVehicle reports whether the assigned vehicle is reserved in s.
func (s Status) HoldsVehicle() bool {
	return s == Processing || s == InTransit
}

// ValidateHasLogistics checks that the presence of a logistics record matches s.
func (s Status) ValidateHasLogistics(hasLogistics bool) error {
	if hasLogistics == s.RequiresLogistics() {
		return nil
	}
	if hasLogistics {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have logistics", s))
	}
	return errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%s is not a valid status to have no logistics", s))
}

func mismatch(s Status, action string) error {
	return errs.NewConflictError("order", fmt.Sprintf("%s is not a valid status to %s", s, action))
}
