// Package services provides domain services that operate on orders without
// belonging to a single aggregate.
//
// The package includes:
//   - OrderSimulator: the pure state machine that advances an order by one tick
//     and interpolates the courier position along the straight line from vendor
//     to destination
//   - OrderDispatcher: picks an available courier for an order at pickup time
//
// Neither service performs I/O; persistence and notification side effects live
// in the application layer.
package services
