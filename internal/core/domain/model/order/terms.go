package order

import (
	"errors"
	"fmt"

	"ricetrade/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Terms are the commercial fields agreed during negotiation. They are fixed
// when the order is placed and never change afterwards. Money amounts are
// exact decimals in the marketplace currency.
type Terms struct {
	quantity      float64
	pricePerUnit  decimal.Decimal
	totalAmount   decimal.Decimal
	commission    decimal.Decimal
	transportCost decimal.Decimal
}

// NewTerms validates the agreed figures. Quantity is in tons and must be
// positive; money amounts must not be negative.
func NewTerms(quantity float64, pricePerUnit, totalAmount, commission, transportCost decimal.Decimal) (Terms, error) {
	if err := errors.Join(
		positive("quantity", quantity),
		nonNegative("pricePerUnit", pricePerUnit),
		nonNegative("totalAmount", totalAmount),
		nonNegative("commission", commission),
		nonNegative("transportCost", transportCost),
	); err != nil {
		return Terms{}, err
	}

	return Terms{
		quantity:      quantity,
		pricePerUnit:  pricePerUnit,
		totalAmount:   totalAmount,
		commission:    commission,
		transportCost: transportCost,
	}, nil
}

func (t Terms) Quantity() float64              { return t.quantity }
func (t Terms) PricePerUnit() decimal.Decimal  { return t.pricePerUnit }
func (t Terms) TotalAmount() decimal.Decimal   { return t.totalAmount }
func (t Terms) Commission() decimal.Decimal    { return t.commission }
func (t Terms) TransportCost() decimal.Decimal { return t.transportCost }

func positive(name string, v float64) error {
	if v <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is not greater than 0", v))
	}
	return nil
}

func nonNegative(name string, v decimal.Decimal) error {
	if v.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", v))
	}
	return nil
}
