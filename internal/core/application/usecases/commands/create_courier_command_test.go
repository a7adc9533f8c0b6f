package commands_test

import (
	"strings"
	"testing"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateCourierCommand(t *testing.T) {
	t.Run("name is trimmed", func(t *testing.T) {
		cmd, err := commands.NewCreateCourierCommand("  Alice ")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "Alice", cmd.Name())
		assert.NoError(t, cmd.CourierID().Validate())
	})

	t.Run("each command gets its own id", func(t *testing.T) {
		a, err := commands.NewCreateCourierCommand("A")
		require.NoError(t, err)
		b, err := commands.NewCreateCourierCommand("B")
		require.NoError(t, err)

		assert.False(t, a.CourierID().IsEqual(b.CourierID()))
	})

	t.Run("blank name", func(t *testing.T) {
		_, err := commands.NewCreateCourierCommand(" \t ")

		require.ErrorIs(t, err, commands.ErrNameIsRequired)
	})

	t.Run("name length counts runes", func(t *testing.T) {
		_, err := commands.NewCreateCourierCommand(strings.Repeat("é", commands.MaxNameLength))
		require.NoError(t, err)

		_, err = commands.NewCreateCourierCommand(strings.Repeat("é", commands.MaxNameLength+1))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cmd commands.CreateCourierCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrCreateCourierCommandIsNotConstructed)
	})
}
