// Package order models a trade order from the moment negotiation hands it
// over until the goods are delivered.
//
// The package includes:
//   - Order: the aggregate root owning status, logistics and handoff codes
//   - Status and PaymentStatus: the lifecycle and the payment flag
//   - Logistics: the transport record created by an assignment
//   - Terms and Address: immutable values fixed at placement
//
// Key business rules:
//   - Logistics is present exactly in processing, in_transit and delivered
//   - Handoff codes are generated once and compared exactly
//   - Cancellation detaches logistics and reports the vehicle to release
//   - Delivered, cancelled and rejected are terminal
package order
