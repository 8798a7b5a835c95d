// Package services provides domain services that span the order and logistics
// aggregates of the fulfillment core.
//
// The package includes:
//   - AccessPolicy: the single table deciding which actor may do what to an order
//   - OTPGenerator: the source of handoff codes
//   - LogisticsAssigner: reserves a vehicle and attaches it to an order
//   - SellerAlias: the anonymised seller label shown to buyers
package services
