// Package order provides the Order aggregate advanced by the delivery simulator.
//
// The package includes:
//   - Order: identity, customer, vendor origin, destination and the mutable
//     simulation state (status, progress, courier position, courier assignment)
//   - Status: the fixed forward sequence pending -> confirmed -> preparing ->
//     picked_up -> delivered, plus the externally set cancelled state
//   - Revision: the status/progress pair used for optimistic updates
//
// Key business rules:
//   - Status never skips a stage and never moves backwards
//   - Progress is reset to 0 when the order is picked up and only grows afterwards
//   - A courier position exists exactly while the order is picked up or delivered
//   - Delivered and cancelled orders are frozen
package order
