// Package identity describes who is calling the fulfillment core. The
// authenticated identity is produced by an external collaborator; this
// package only models it.
package identity

import (
	"fmt"
	"strings"

	"ricetrade/internal/core/domain/model/kernel"
	"ricetrade/internal/pkg/errs"
)

// Role is the marketplace role of an actor. The zero value is invalid.
type Role int

const (
	RoleUnknown Role = iota
	RoleSeller
	RoleBuyer
	RoleLogistics
)

var roleNames = map[Role]string{
	RoleSeller:    "seller",
	RoleBuyer:     "buyer",
	RoleLogistics: "logistics",
}

// ParseRole maps the wire name of a role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return r, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("unknown role %q", s))
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

func (r Role) IsValid() bool {
	_, ok := roleNames[r]
	return ok
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	id       kernel.UUID
	role     Role
	verified bool
}

// NewActor validates the identity handed in by the identity context.
// verified mirrors the account verification flag; only sellers need it.
func NewActor(id kernel.UUID, role Role, verified bool) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, errs.NewValueIsRequiredErrorWithCause("actorId", err)
	}
	if !role.IsValid() {
		return Actor{}, errs.NewValueIsInvalidError("role")
	}
	return Actor{id: id, role: role, verified: verified}, nil
}

func (a Actor) ID() kernel.UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) IsVerified() bool {
	return a.verified
}

// Is reports whether the actor holds role and id.
func (a Actor) Is(role Role, id kernel.UUID) bool {
	return a.role == role && a.id.IsEqual(id)
}

// Channel is the notification channel owned by the actor.
func (a Actor) Channel() ChannelKey {
	return NewChannelKey(a.role, a.id)
}

// ChannelKey names a per-actor notification channel, "{role}_{id}".
type ChannelKey string

func NewChannelKey(role Role, id kernel.UUID) ChannelKey {
	return ChannelKey(role.String() + "_" + id.String())
}

func (k ChannelKey) String() string {
	return string(k)
}
