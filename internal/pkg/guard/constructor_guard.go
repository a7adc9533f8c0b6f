// Package guard lets value objects, entities and commands detect whether they
// were built by their constructor or are a bare zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded in types that must only be created through a
// constructor. Its zero value reports "not constructed".
//
// Go cannot forbid composite literals of exported types, so a zero value of a
// command or value object can always reach a handler. Constructors set the
// guard after every field has been validated; consumers call Validate before
// trusting the object.
//
// Example:
//
//	type AdvanceOrderCommand struct {
//	    orderID kernel.UUID
//	    guard   guard.ConstructorGuard
//	}
//
//	func (c AdvanceOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the enclosing object as properly constructed.
//
// Returns:
//   - ConstructorGuard: a guard whose Validate returns nil
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate reports whether the enclosing object was created via its constructor.
//
// Parameters:
//   - validationError: the error to return for a zero value; nil selects
//     ErrDefaultConstructorGuard
//
// Returns:
//   - error: validationError if the object was not constructed, nil otherwise
//
// Example:
//
//	var cmd AdvanceOrderCommand // zero value
//	if err := cmd.Validate(); err != nil {
//	    return err // ErrAdvanceOrderCommandIsNotConstructed
//	}
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
