package services

import (
	"strings"

	"ricetrade/internal/core/domain/model/kernel"
)

// SellerAlias is the label that replaces a seller's name in every buyer
// facing view, e.g. "Burdwan Rice Mill #0000". It is derived on read and
// never stored.
func SellerAlias(city string, sellerID kernel.UUID) string {
	id := sellerID.String()
	suffix := id[len(id)-4:]
	return strings.TrimSpace(strings.TrimSpace(city) + " Rice Mill #" + suffix)
}
