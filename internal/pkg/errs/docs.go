// Package errs holds the error types shared by the domain, the handlers and
// the HTTP adapter.
//
// Each type unwraps to a sentinel so callers branch with errors.Is and the
// HTTP layer maps them to status codes without knowing the concrete type:
//
//	ErrValueIsRequired    a mandatory value is missing (origin, name)
//	ErrValueIsInvalid     a value breaks a rule (status transition, coordinates)
//	ErrValueIsOutOfRange  a number is outside its bounds (latitude, progress)
//	ErrObjectNotFound     a lookup by ID matched nothing (order, vendor, courier)
//
// Constructors come in pairs, with and without a cause. Messages stay on one
// line so they can be logged as a single attribute.
package errs
