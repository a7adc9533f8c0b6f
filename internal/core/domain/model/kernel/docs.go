// Package kernel provides the value objects shared by every aggregate of the
// order tracking service.
//
// The package includes:
//   - UUID: identifiers for orders, customers, vendors, couriers and notifications
//   - Location: a validated latitude/longitude pair with straight-line interpolation
//
// Both are immutable and safe for concurrent use. Their zero values are invalid
// and fail Validate, so a value that skipped its constructor is caught early.
package kernel
