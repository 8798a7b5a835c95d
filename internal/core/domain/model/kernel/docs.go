// Package kernel holds the value objects shared by every aggregate of the
// fulfillment core: opaque identifiers and geographic points.
//
// The package includes:
//   - UUID: identifier for orders, parties, products and logistics providers
//   - GeoPoint: a validated latitude/longitude pair used for addresses and live vehicle positions
//
// Zero values of both types are invalid and fail Validate. Both are immutable
// and safe for concurrent use.
package kernel
