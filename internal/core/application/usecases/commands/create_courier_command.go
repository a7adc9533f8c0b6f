package commands

import (
	"errors"
	"strings"
	"unicode/utf8"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

// MaxNameLength bounds courier and vendor display names, in runes.
const MaxNameLength = 64

var (
	ErrCreateCourierCommandIsNotConstructed = errors.New(
		"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
	)
	ErrNameIsRequired = errors.New("name is required")
)

// CreateCourierCommand registers a courier. Couriers start available and are
// attached to orders only at pickup.
//
//	cmd, err := NewCreateCourierCommand("Alice")
//	if err != nil {
//	    return err
//	}
//	err = NewCreateCourierCommandHandler(uowFactory).Handle(ctx, cmd)
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand trims name and assigns a fresh courier ID.
func NewCreateCourierCommand(name string) (CreateCourierCommand, error) {
	cleaned, err := normalizeName(name)
	if err != nil {
		return CreateCourierCommand{}, err
	}

	return CreateCourierCommand{
		courierID: kernel.NewUUID(),
		name:      cleaned,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c CreateCourierCommand) Name() string {
	return c.name
}

// normalizeName trims surrounding blanks and enforces 1..MaxNameLength runes.
func normalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameIsRequired
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return "", errs.NewValueIsOutOfRangeError("name length", n, 1, MaxNameLength)
	}
	return name, nil
}
