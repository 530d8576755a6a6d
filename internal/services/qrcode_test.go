package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	apperrors "inventory-system/pkg/errors"
)

func newQRService(equipmentRepo *fakeEquipmentRepo, storage *fakeFileStorage) (QRCodeServiceInterface, *fakeActivity) {
	activity := &fakeActivity{}
	svc := NewQRCodeService(equipmentRepo, storage, activity, "https://inventory.example.com/", zap.NewNop())
	return svc, activity
}

func equipmentDetail(id uint64) dto.EquipmentDTO {
	return dto.EquipmentDTO{
		ID:            id,
		Brand:         "Dell",
		ModelNumber:   "OptiPlex 7090",
		SerialNumber:  "SN-001",
		Status:        entities.StatusServiceable,
		EquipmentType: dto.ShortEquipmentTypeDTO{ID: 1, Name: "Desktop Computer"},
		Office:        dto.ShortOfficeDTO{ID: 3, Name: "IT Office"},
	}
}

func TestEnsureToken(t *testing.T) {
	ctx := context.Background()

	t.Run("mints a token for equipment without one", func(t *testing.T) {
		repo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3}}
		svc, _ := newQRService(repo, newFakeFileStorage())

		token, err := svc.EnsureToken(ctx, adminActor(1), 7)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(token, "EQP-"))
		assert.Equal(t, token, repo.qrToken)
	})

	t.Run("never replaces an existing token", func(t *testing.T) {
		existing := "EQP-legacy-token"
		repo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3, QRCode: &existing}}
		svc, _ := newQRService(repo, newFakeFileStorage())

		token, err := svc.EnsureToken(ctx, adminActor(1), 7)
		require.NoError(t, err)
		assert.Equal(t, existing, token)
		assert.Empty(t, repo.qrToken)
	})
}

func TestGetOrRenderImage(t *testing.T) {
	ctx := context.Background()

	t.Run("renders once, then serves the cached image", func(t *testing.T) {
		repo := &fakeEquipmentRepo{
			equipment: entities.Equipment{ID: 7, OfficeID: 3},
			detail:    equipmentDetail(7),
		}
		storage := newFakeFileStorage()
		svc, _ := newQRService(repo, storage)

		first, err := svc.GetOrRenderImage(ctx, adminActor(1), 7)
		require.NoError(t, err)
		assert.Equal(t, "qrcodes/equipment-7.png", first.ImagePath)
		assert.Equal(t, 1, storage.saves)
		assert.NotEmpty(t, storage.files[first.ImagePath])

		second, err := svc.GetOrRenderImage(ctx, adminActor(1), 7)
		require.NoError(t, err)
		assert.Equal(t, first.ImagePath, second.ImagePath)
		assert.Equal(t, 1, storage.saves)
	})

	t.Run("re-renders when the cached file disappeared", func(t *testing.T) {
		path := "qrcodes/equipment-7.png"
		repo := &fakeEquipmentRepo{
			equipment: entities.Equipment{ID: 7, OfficeID: 3, QRCodeImagePath: &path},
			detail:    equipmentDetail(7),
		}
		storage := newFakeFileStorage()
		svc, _ := newQRService(repo, storage)

		image, err := svc.GetOrRenderImage(ctx, adminActor(1), 7)
		require.NoError(t, err)
		assert.Equal(t, 1, storage.saves)
		assert.NotEmpty(t, image.ImagePath)
	})
}

func TestResolveScan(t *testing.T) {
	ctx := context.Background()
	repo := &fakeEquipmentRepo{
		equipment: entities.Equipment{ID: 7, OfficeID: 3},
		detail:    equipmentDetail(7),
	}

	t.Run("resolves the JSON payload to the live record", func(t *testing.T) {
		svc, activity := newQRService(repo, newFakeFileStorage())

		detail, err := svc.ResolveScan(ctx, adminActor(1), `{"id": 7, "serial_number": "stale"}`)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), detail.ID)
		assert.Equal(t, "SN-001", detail.SerialNumber)
		assert.Contains(t, activity.actions, "qr.scanned")
	})

	t.Run("out-of-scope scan reads as not found", func(t *testing.T) {
		svc, _ := newQRService(repo, newFakeFileStorage())

		_, err := svc.ResolveScan(ctx, staffActor(1, 9), `{"id": 7}`)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestExtractEquipmentID(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    uint64
		wantErr bool
	}{
		{name: "json id as number", payload: `{"id": 42}`, want: 42},
		{name: "json id as string", payload: `{"id": "42"}`, want: 42},
		{name: "legacy equipment_id key", payload: `{"equipment_id": 42}`, want: 42},
		{name: "url form", payload: "https://inventory.example.com/scan?id=42", want: 42},
		{name: "url legacy key", payload: "https://inventory.example.com/scan?equipment_id=42", want: 42},
		{name: "surrounding whitespace", payload: "  {\"id\": 42}\n", want: 42},
		{name: "malformed json", payload: `{"id": `, wantErr: true},
		{name: "json without id", payload: `{"serial_number": "SN-001"}`, wantErr: true},
		{name: "url without id", payload: "https://inventory.example.com/scan", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := extractEquipmentID(tc.payload)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, id)
		})
	}
}

func TestBatchBundles(t *testing.T) {
	ctx := context.Background()

	t.Run("staff cannot print another office's batch", func(t *testing.T) {
		repo := &fakeEquipmentRepo{equipment: entities.Equipment{ID: 7, OfficeID: 3}}
		svc, _ := newQRService(repo, newFakeFileStorage())

		officeID := uint64(3)
		_, err := svc.BatchBundles(ctx, staffActor(1, 9), dto.QRBatchRequestDTO{OfficeID: &officeID})
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("bundles carry image path and payload", func(t *testing.T) {
		repo := &fakeEquipmentRepo{
			equipment: entities.Equipment{ID: 7, OfficeID: 3},
			detail:    equipmentDetail(7),
		}
		svc, _ := newQRService(repo, newFakeFileStorage())

		bundles, err := svc.BatchBundles(ctx, adminActor(1), dto.QRBatchRequestDTO{EquipmentIDs: []uint64{7}})
		require.NoError(t, err)
		require.Len(t, bundles, 1)
		assert.NotEmpty(t, bundles[0].ImagePath)
		assert.Equal(t, "https://inventory.example.com/scan?id=7", bundles[0].Payload.URL)
	})
}
