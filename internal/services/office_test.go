package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

func newOfficeService(officeRepo *fakeOfficeRepo) OfficeServiceInterface {
	return NewOfficeService(officeRepo, &fakeActivity{}, zap.NewNop())
}

func TestGetOfficesScoping(t *testing.T) {
	ctx := context.Background()

	t.Run("staff list carries the office scope", func(t *testing.T) {
		officeRepo := &fakeOfficeRepo{}
		svc := newOfficeService(officeRepo)

		_, _, err := svc.GetOffices(ctx, staffActor(1, 5), types.Filter{})
		require.NoError(t, err)
		require.NotNil(t, officeRepo.listScope.OfficeID)
		assert.Equal(t, uint64(5), *officeRepo.listScope.OfficeID)
	})

	t.Run("admin list is unscoped", func(t *testing.T) {
		officeRepo := &fakeOfficeRepo{}
		svc := newOfficeService(officeRepo)

		_, _, err := svc.GetOffices(ctx, adminActor(1), types.Filter{})
		require.NoError(t, err)
		assert.Nil(t, officeRepo.listScope.OfficeID)
	})

	t.Run("staff cannot read another office", func(t *testing.T) {
		officeRepo := &fakeOfficeRepo{offices: map[uint64]entities.Office{
			5: {ID: 5, Name: "IT Office"},
			9: {ID: 9, Name: "Registrar"},
		}}
		svc := newOfficeService(officeRepo)

		_, err := svc.GetOffice(ctx, staffActor(1, 5), 9)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		office, err := svc.GetOffice(ctx, staffActor(1, 5), 5)
		require.NoError(t, err)
		assert.Equal(t, "IT Office", office.Name)
	})

	t.Run("admin reads any office", func(t *testing.T) {
		officeRepo := &fakeOfficeRepo{offices: map[uint64]entities.Office{
			9: {ID: 9, Name: "Registrar"},
		}}
		svc := newOfficeService(officeRepo)

		office, err := svc.GetOffice(ctx, adminActor(1), 9)
		require.NoError(t, err)
		assert.Equal(t, uint64(9), office.ID)
	})
}
