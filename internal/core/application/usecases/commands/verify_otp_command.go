package commands

import (
	"errors"
	"strings"

	"ricetrade/internal/core/domain/model/identity"
	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/pkg/errs"
	"ricetrade/internal/pkg/guard"
)

var ErrVerifyOTPCommandIsNotConstructed = errors.New(
	"VerifyOTPCommand must be created via NewVerifyOTPCommand constructor",
)

// VerifyOTPCommand carries a handoff code presented by the provider. The same
// command serves pickup and delivery; the handler decides which code is checked.
type VerifyOTPCommand struct { //nolint:recvcheck //using for validation
	orderRequest
	otp string

	guard guard.ConstructorGuard
}

// NewVerifyOTPCommand rejects a missing code. Any other code is compared
// against the stored one, so a malformed code is reported as a mismatch.
func NewVerifyOTPCommand(actor identity.Actor, orderID kernel.UUID, otp string) (VerifyOTPCommand, error) {
	cmd := VerifyOTPCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setActor(actor),
		cmd.setOrderID(orderID),
		cmd.setOTP(otp),
	); err != nil {
		return VerifyOTPCommand{}, err
	}

	return cmd, nil
}

func (c VerifyOTPCommand) Validate() error {
	return c.guard.Validate(ErrVerifyOTPCommandIsNotConstructed)
}

func (c VerifyOTPCommand) OTP() string {
	return c.otp
}

func (c *VerifyOTPCommand) setOTP(otp string) error {
	otp = strings.TrimSpace(otp)
	if otp == "" {
		return errs.NewValueIsRequiredError("otp")
	}
	c.otp = otp
	return nil
}
