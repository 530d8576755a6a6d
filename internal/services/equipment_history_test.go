package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
)

type fakeAllocator struct {
	queue []string
	calls int
}

func (f *fakeAllocator) Prefix(date time.Time) string {
	return "JO-" + date.Format("06-01") + "-"
}

func (f *fakeAllocator) Next(ctx context.Context, date time.Time) (string, error) {
	f.calls++
	if len(f.queue) == 0 {
		return "", apperrors.ErrAllocationExhausted
	}
	next := f.queue[0]
	f.queue = f.queue[1:]
	return next, nil
}

func newHistoryService(historyRepo *fakeHistoryRepo, equipmentRepo *fakeEquipmentRepo, allocator *fakeAllocator) (EquipmentHistoryServiceInterface, *fakeActivity) {
	activity := &fakeActivity{}
	svc := NewEquipmentHistoryService(
		historyRepo, equipmentRepo, allocator, &fakeTxManager{}, activity, zap.NewNop(),
	)
	return svc, activity
}

func validPayload() dto.CreateEquipmentHistoryDTO {
	return dto.CreateEquipmentHistoryDTO{
		Date:              "2024-05-17",
		ActionTaken:       "Replaced power supply",
		EquipmentStatus:   entities.StatusServiceable,
		ResponsiblePerson: "J. Cruz",
	}
}

func TestCreateHistory(t *testing.T) {
	ctx := context.Background()

	t.Run("allocates a number and syncs equipment status", func(t *testing.T) {
		historyRepo := &fakeHistoryRepo{existing: map[string]bool{}}
		equipmentRepo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3}}
		svc, activity := newHistoryService(historyRepo, equipmentRepo, &fakeAllocator{queue: []string{"JO-24-05-001"}})

		payload := validPayload()
		payload.EquipmentStatus = entities.StatusForRepair

		history, err := svc.CreateHistory(ctx, adminActor(1), 7, payload)
		require.NoError(t, err)
		assert.Equal(t, "JO-24-05-001", history.JoNumber)
		assert.Equal(t, uint64(1), history.AssignedByID)

		require.Len(t, equipmentRepo.statusUpdates, 1)
		assert.Equal(t, entities.StatusForRepair, equipmentRepo.statusUpdates[0].status)
		assert.Equal(t, entities.ConditionNotWorking, equipmentRepo.statusUpdates[0].condition)
		assert.Contains(t, activity.actions, "history.created")
	})

	t.Run("out-of-scope equipment reads as not found", func(t *testing.T) {
		historyRepo := &fakeHistoryRepo{}
		equipmentRepo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3}}
		svc, _ := newHistoryService(historyRepo, equipmentRepo, &fakeAllocator{queue: []string{"JO-24-05-001"}})

		_, err := svc.CreateHistory(ctx, staffActor(1, 9), 7, validPayload())
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("backdated entry requires confirmation", func(t *testing.T) {
		latest := mustDate(t, "2024-06-01")
		historyRepo := &fakeHistoryRepo{latestDate: &latest}
		equipmentRepo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3}}
		svc, _ := newHistoryService(historyRepo, equipmentRepo, &fakeAllocator{queue: []string{"JO-24-05-001"}})

		_, err := svc.CreateHistory(ctx, adminActor(1), 7, validPayload())
		assert.ErrorIs(t, err, apperrors.ErrLaterHistoryExists)
	})

	t.Run("confirmed backdated entry inserts without touching status", func(t *testing.T) {
		latest := mustDate(t, "2024-06-01")
		historyRepo := &fakeHistoryRepo{latestDate: &latest}
		equipmentRepo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3}}
		svc, _ := newHistoryService(historyRepo, equipmentRepo, &fakeAllocator{queue: []string{"JO-24-05-001"}})

		payload := validPayload()
		payload.Confirmed = true
		payload.EquipmentStatus = entities.StatusDefective

		history, err := svc.CreateHistory(ctx, adminActor(1), 7, payload)
		require.NoError(t, err)
		assert.Equal(t, entities.StatusDefective, history.EquipmentStatus)
		assert.Empty(t, equipmentRepo.statusUpdates)
	})

	t.Run("generated number lost to a race is re-allocated", func(t *testing.T) {
		historyRepo := &fakeHistoryRepo{createErrs: []error{joConflict()}}
		equipmentRepo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3}}
		allocator := &fakeAllocator{queue: []string{"JO-24-05-004", "JO-24-05-005"}}
		svc, _ := newHistoryService(historyRepo, equipmentRepo, allocator)

		history, err := svc.CreateHistory(ctx, adminActor(1), 7, validPayload())
		require.NoError(t, err)
		assert.Equal(t, "JO-24-05-005", history.JoNumber)
		assert.Equal(t, 2, allocator.calls)
	})

	t.Run("client-supplied number conflict fails immediately", func(t *testing.T) {
		historyRepo := &fakeHistoryRepo{createErrs: []error{joConflict()}}
		equipmentRepo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3}}
		allocator := &fakeAllocator{queue: []string{"JO-24-05-001"}}
		svc, _ := newHistoryService(historyRepo, equipmentRepo, allocator)

		payload := validPayload()
		supplied := "JO-24-05-777"
		payload.JoNumber = &supplied

		_, err := svc.CreateHistory(ctx, adminActor(1), 7, payload)
		assert.ErrorIs(t, err, apperrors.ErrJoNumberTaken)
		assert.Zero(t, allocator.calls)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		historyRepo := &fakeHistoryRepo{}
		equipmentRepo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3}}
		svc, _ := newHistoryService(historyRepo, equipmentRepo, &fakeAllocator{})

		payload := validPayload()
		payload.EquipmentStatus = "broken"

		_, err := svc.CreateHistory(ctx, adminActor(1), 7, payload)
		var httpErr *apperrors.HttpError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, 422, httpErr.Code)
	})
}

func TestUpdateHistory(t *testing.T) {
	ctx := context.Background()
	entryDate := mustDate(t, "2024-05-17")

	t.Run("editing the latest entry re-syncs equipment status from it", func(t *testing.T) {
		historyRepo := &fakeHistoryRepo{
			history: entities.EquipmentHistory{
				ID: 12, EquipmentID: 7, JoNumber: "JO-24-05-001",
				Date: entryDate, EquipmentStatus: entities.StatusForRepair,
			},
			latestOther: &entities.EquipmentHistory{
				ID: 11, EquipmentID: 7, Date: mustDate(t, "2024-05-01"),
				EquipmentStatus: entities.StatusDefective,
			},
		}
		equipmentRepo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3}}
		svc, _ := newHistoryService(historyRepo, equipmentRepo, &fakeAllocator{})

		status := entities.StatusServiceable
		err := svc.UpdateHistory(ctx, adminActor(1), 12, dto.UpdateEquipmentHistoryDTO{EquipmentStatus: &status})
		require.NoError(t, err)

		assert.Equal(t, status, historyRepo.updates["equipment_status"])
		require.Len(t, equipmentRepo.statusUpdates, 1)
		assert.Equal(t, status, equipmentRepo.statusUpdates[0].status)
		assert.Equal(t, entities.ConditionGood, equipmentRepo.statusUpdates[0].condition)
	})

	t.Run("editing an older entry re-syncs from the latest entry, not the edited one", func(t *testing.T) {
		historyRepo := &fakeHistoryRepo{
			history: entities.EquipmentHistory{
				ID: 12, EquipmentID: 7, JoNumber: "JO-24-05-001",
				Date: entryDate, EquipmentStatus: entities.StatusForRepair,
			},
			latestOther: &entities.EquipmentHistory{
				ID: 13, EquipmentID: 7, Date: mustDate(t, "2024-06-01"),
				EquipmentStatus: entities.StatusDefective,
			},
		}
		equipmentRepo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3}}
		svc, _ := newHistoryService(historyRepo, equipmentRepo, &fakeAllocator{})

		status := entities.StatusServiceable
		err := svc.UpdateHistory(ctx, adminActor(1), 12, dto.UpdateEquipmentHistoryDTO{EquipmentStatus: &status})
		require.NoError(t, err)

		require.Len(t, equipmentRepo.statusUpdates, 1)
		assert.Equal(t, entities.StatusDefective, equipmentRepo.statusUpdates[0].status)
		assert.Equal(t, entities.ConditionNotWorking, equipmentRepo.statusUpdates[0].condition)
	})

	t.Run("moving the latest entry's date backward hands status to the new latest", func(t *testing.T) {
		historyRepo := &fakeHistoryRepo{
			history: entities.EquipmentHistory{
				ID: 12, EquipmentID: 7, JoNumber: "JO-24-06-001",
				Date: mustDate(t, "2024-06-15"), EquipmentStatus: entities.StatusForRepair,
			},
			latestOther: &entities.EquipmentHistory{
				ID: 11, EquipmentID: 7, Date: mustDate(t, "2024-06-01"),
				EquipmentStatus: entities.StatusServiceable,
			},
		}
		equipmentRepo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3}}
		svc, _ := newHistoryService(historyRepo, equipmentRepo, &fakeAllocator{})

		moved := "2024-05-10"
		err := svc.UpdateHistory(ctx, adminActor(1), 12, dto.UpdateEquipmentHistoryDTO{Date: &moved})
		require.NoError(t, err)

		require.Len(t, equipmentRepo.statusUpdates, 1)
		assert.Equal(t, entities.StatusServiceable, equipmentRepo.statusUpdates[0].status)
		assert.Equal(t, entities.ConditionGood, equipmentRepo.statusUpdates[0].condition)
	})
}

func TestCheckBackdate(t *testing.T) {
	ctx := context.Background()
	equipmentRepo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3}}

	t.Run("allowed when no later entry exists", func(t *testing.T) {
		svc, _ := newHistoryService(&fakeHistoryRepo{}, equipmentRepo, &fakeAllocator{})

		check, err := svc.CheckBackdate(ctx, adminActor(1), 7, "2024-05-17")
		require.NoError(t, err)
		assert.True(t, check.Allowed)
		assert.Nil(t, check.Reason)
	})

	t.Run("refused with reason when a later entry exists", func(t *testing.T) {
		latest := mustDate(t, "2024-06-01")
		svc, _ := newHistoryService(&fakeHistoryRepo{latestDate: &latest}, equipmentRepo, &fakeAllocator{})

		check, err := svc.CheckBackdate(ctx, adminActor(1), 7, "2024-05-17")
		require.NoError(t, err)
		assert.False(t, check.Allowed)
		require.NotNil(t, check.Reason)
		assert.Contains(t, *check.Reason, "2024-06-01")
	})
}
