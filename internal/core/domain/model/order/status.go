package order

import (
	"fmt"
	"strings"

	"tracking/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions (strictly forward, one step at a time):
//
//	Pending ──> Confirmed ──> Preparing ──> PickedUp ──> Delivered
//
//	Cancelled is terminal and is set outside the simulator.
//
// Status is persisted as its integer value and exposed on the wire by its
// lowercase name (see String and ParseStatus).
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the status of a freshly placed order.
	Pending

	// Confirmed means the vendor accepted the order.
	Confirmed

	// Preparing means the vendor is preparing the order.
	Preparing

	// PickedUp means a courier is carrying the order to the destination.
	// Progress and courier position are only meaningful in this status.
	PickedUp

	// Delivered is the final state of a successful order.
	Delivered

	// Cancelled is a terminal state never produced by the simulator.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Cancelled: "cancelled",
	}
}

// successors maps every non-terminal status to the one that follows it.
// PickedUp advances to Delivered only once transit progress reaches 1.
func successors() map[Status]Status {
	//nolint:exhaustive // terminal and invalid statuses have no successor
	return map[Status]Status{
		Pending:   Confirmed,
		Confirmed: Preparing,
		Preparing: PickedUp,
		PickedUp:  Delivered,
	}
}

// ParseStatus converts a wire name ("picked_up") into a Status.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseStatus(s string) (Status, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for status, name := range getStatusStrings() {
		if status != Unknown && name == needle {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// OpenStatuses returns every status the sweep still has to advance.
func OpenStatuses() []Status {
	return []Status{Pending, Confirmed, Preparing, PickedUp}
}

// TerminalStatuses returns the statuses that are never mutated again.
func TerminalStatuses() []Status {
	return []Status{Delivered, Cancelled}
}

// Validate checks if the Status value is one of the defined statuses.
func (s Status) Validate() error {
	if s <= Unknown || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status is Delivered or Cancelled.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// Next returns the status that follows s in the fixed sequence.
// Terminal and invalid statuses have no successor.
func (s Status) Next() (Status, error) {
	next, ok := successors()[s]
	if !ok {
		return Unknown, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s has no next status", s.String()),
		)
	}
	return next, nil
}

// ValidateTransition checks that moving from s to next is either a stay in
// PickedUp (transit progress) or exactly one step forward.
func (s Status) ValidateTransition(next Status) error {
	if s == PickedUp && next == PickedUp {
		return nil
	}

	successor, err := s.Next()
	if err != nil {
		return err
	}

	if successor != next {
		return errs.NewValueIsInvalidErrorWithCause(
			"status transition is invalid",
			fmt.Errorf("%s cannot move to %s", s.String(), next.String()),
		)
	}
	return nil
}

// ValidateCanHaveCourierPosition validates the consistency between status and
// a simulated courier position.
//
// Business Rules:
//   - Pending, Confirmed and Preparing orders must not have a courier position
//   - PickedUp and Delivered orders must have a courier position
//   - Cancelled orders may keep whatever position they had when cancelled
func (s Status) ValidateCanHaveCourierPosition(hasPosition bool) error {
	if s == Cancelled {
		return nil
	}

	inTransit := s == PickedUp || s == Delivered
	if hasPosition && !inTransit {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier position", s.String()),
		)
	}

	if !hasPosition && inTransit {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier position", s.String()),
		)
	}

	return nil
}
