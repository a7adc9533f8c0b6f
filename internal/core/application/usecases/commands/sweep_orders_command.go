package commands

import (
	"errors"

	"tracking/internal/pkg/guard"
)

var ErrSweepOrdersCommandIsNotConstructed = errors.New(
	"SweepOrdersCommand must be created via NewSweepOrdersCommand constructor",
)

// SweepOrdersCommand triggers one sweep tick: every open order moves one step.
//
// Example:
//
//	cmd := NewSweepOrdersCommand()
//	report, err := handler.Handle(ctx, cmd)
type SweepOrdersCommand struct {
	guard guard.ConstructorGuard
}

// NewSweepOrdersCommand creates a new sweep command. It is parameterless.
func NewSweepOrdersCommand() SweepOrdersCommand {
	return SweepOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c SweepOrdersCommand) Validate() error {
	return c.guard.Validate(ErrSweepOrdersCommandIsNotConstructed)
}
