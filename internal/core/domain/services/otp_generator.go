package services

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
)

const (
	otpMin  = 100000
	otpSpan = 900000
)

// OTPGenerator issues the pickup and delivery codes of an assignment.
type OTPGenerator interface {
	NewHandoffCodes() (pickup string, delivery string, err error)
}

// RandomOTPGenerator draws 6-digit codes in [100000, 999999] from a
// cryptographic source.
type RandomOTPGenerator struct {
	source io.Reader
}

func NewRandomOTPGenerator() RandomOTPGenerator {
	return RandomOTPGenerator{source: rand.Reader}
}

// NewRandomOTPGeneratorFrom reads randomness from source instead of crypto/rand.
func NewRandomOTPGeneratorFrom(source io.Reader) RandomOTPGenerator {
	return RandomOTPGenerator{source: source}
}

// NewHandoffCodes returns two distinct codes.
func (g RandomOTPGenerator) NewHandoffCodes() (string, string, error) {
	pickup, err := g.code()
	if err != nil {
		return "", "", err
	}
	for {
		delivery, err := g.code()
		if err != nil {
			return "", "", err
		}
		if delivery != pickup {
			return pickup, delivery, nil
		}
	}
}

func (g RandomOTPGenerator) code() (string, error) {
	n, err := rand.Int(g.source, big.NewInt(otpSpan))
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", otpMin+n.Int64()), nil
}
