// Package logistics holds the vehicle registry: a logistics provider and the
// fleet it offers for hire.
//
// The Provider aggregate owns its vehicles, indexed by registration number.
// Reservation and release go through the provider so that availability
// stays consistent with the orders the vehicles serve.
package logistics
