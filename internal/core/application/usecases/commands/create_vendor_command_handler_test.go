package commands_test

import (
	"errors"
	"testing"

	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/vendor"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewCreateVendorCommand(t *testing.T) {
	location := kernel.MustNewLocation(40.0, -74.0)

	cmd, err := commands.NewCreateVendorCommand("  Pizza Place ", location)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "Pizza Place", cmd.Name())
	assert.NoError(t, cmd.VendorID().Validate())

	_, err = commands.NewCreateVendorCommand("", location)
	require.ErrorIs(t, err, commands.ErrNameIsRequired)

	_, err = commands.NewCreateVendorCommand("Pizza Place", kernel.Location{})
	require.Error(t, err)
}

func TestCreateVendorCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateVendorCommand("Pizza Place", kernel.MustNewLocation(40.0, -74.0))
	require.NoError(t, err)

	mockRepo := new(MockVendorRepository)
	mockUoW := new(MockVendorUoW)
	mockFactory := new(MockVendorUoWFactory)

	mock.InOrder(
		mockUoW.On("Begin", ctx).Return(nil).Once(),
		mockUoW.On("VendorRepository").Return(mockRepo).Once(),
		mockRepo.On("Add", ctx, mock.MatchedBy(func(v *vendor.Vendor) bool {
			return v.ID().IsEqual(cmd.VendorID()) && v.Name() == "Pizza Place"
		})).Return(nil).Once(),
		mockUoW.On("Commit", ctx).Return(nil).Once(),
		mockUoW.On("Rollback", ctx).Return(nil).Once(),
	)
	mockFactory.On("Create").Return(mockUoW).Once()

	err = commands.NewCreateVendorCommandHandler(mockFactory).Handle(ctx, cmd)

	require.NoError(t, err)
	mockFactory.AssertExpectations(t)
	mockUoW.AssertExpectations(t)
	mockRepo.AssertExpectations(t)
}

func TestCreateVendorCommandHandler_Handle_RepositoryError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewCreateVendorCommand("Pizza Place", kernel.MustNewLocation(40.0, -74.0))
	require.NoError(t, err)

	addErr := errors.New("duplicate key")
	mockRepo := new(MockVendorRepository)
	mockUoW := new(MockVendorUoW)
	mockFactory := new(MockVendorUoWFactory)

	mockFactory.On("Create").Return(mockUoW).Once()
	mockUoW.On("Begin", ctx).Return(nil).Once()
	mockUoW.On("VendorRepository").Return(mockRepo).Once()
	mockRepo.On("Add", ctx, mock.Anything).Return(addErr).Once()
	mockUoW.On("Rollback", ctx).Return(nil).Once()

	err = commands.NewCreateVendorCommandHandler(mockFactory).Handle(ctx, cmd)

	require.ErrorIs(t, err, addErr)
	mockUoW.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateVendorCommandHandler_Handle_InvalidCommand(t *testing.T) {
	mockFactory := new(MockVendorUoWFactory)

	err := commands.NewCreateVendorCommandHandler(mockFactory).Handle(t.Context(), commands.CreateVendorCommand{})

	require.ErrorIs(t, err, commands.ErrCreateVendorCommandIsNotConstructed)
	mockFactory.AssertNotCalled(t, "Create")
}
