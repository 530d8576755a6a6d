package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/filestorage"
)

const qrImageSize = 512

type QRCodeServiceInterface interface {
	EnsureToken(ctx context.Context, actor *authz.Actor, equipmentID uint64) (string, error)
	GetOrRenderImage(ctx context.Context, actor *authz.Actor, equipmentID uint64) (dto.QRImageDTO, error)
	ResolveScan(ctx context.Context, actor *authz.Actor, payload string) (dto.EquipmentDTO, error)
	BatchBundles(ctx context.Context, actor *authz.Actor, req dto.QRBatchRequestDTO) ([]dto.QRBundleDTO, error)
}

// QRCodeService mints scan tokens, renders label images, and resolves scans
// back to live equipment records. Rendered images are cached on disk; the
// embedded payload is a snapshot, so resolution always re-fetches from the
// database.
type QRCodeService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	storage       filestorage.FileStorageInterface
	activity      ActivityServiceInterface
	baseURL       string
	logger        *zap.Logger
}

func NewQRCodeService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	storage filestorage.FileStorageInterface,
	activity ActivityServiceInterface,
	baseURL string,
	logger *zap.Logger,
) QRCodeServiceInterface {
	return &QRCodeService{
		equipmentRepo: equipmentRepo,
		storage:       storage,
		activity:      activity,
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		logger:        logger,
	}
}

// EnsureToken returns the equipment's scan token, minting one only for
// records that never had one. An existing token is never replaced, so labels
// printed years ago still resolve.
func (s *QRCodeService) EnsureToken(ctx context.Context, actor *authz.Actor, equipmentID uint64) (string, error) {
	scope := authz.ScopeForActor(actor)
	equipment, err := s.equipmentRepo.FindEquipment(ctx, equipmentID, scope)
	if err != nil {
		return "", err
	}
	if equipment.QRCode != nil && *equipment.QRCode != "" {
		return *equipment.QRCode, nil
	}

	token := "EQP-" + uuid.NewString()
	if err := s.equipmentRepo.SetQRCode(ctx, equipmentID, token); err != nil {
		return "", err
	}
	return token, nil
}

func (s *QRCodeService) buildPayload(equipment dto.EquipmentDTO) dto.QRPayloadDTO {
	return dto.QRPayloadDTO{
		ID:            equipment.ID,
		URL:           fmt.Sprintf("%s/scan?id=%d", s.baseURL, equipment.ID),
		ModelNumber:   equipment.ModelNumber,
		SerialNumber:  equipment.SerialNumber,
		EquipmentType: equipment.EquipmentType.Name,
		Office:        equipment.Office.Name,
		Status:        equipment.Status,
	}
}

// GetOrRenderImage returns the cached label image when it still exists on
// disk, rendering and caching it otherwise.
func (s *QRCodeService) GetOrRenderImage(ctx context.Context, actor *authz.Actor, equipmentID uint64) (dto.QRImageDTO, error) {
	scope := authz.ScopeForActor(actor)
	equipment, err := s.equipmentRepo.FindEquipment(ctx, equipmentID, scope)
	if err != nil {
		return dto.QRImageDTO{}, err
	}

	if equipment.QRCodeImagePath != nil && *equipment.QRCodeImagePath != "" &&
		s.storage.Exists(*equipment.QRCodeImagePath) {
		return dto.QRImageDTO{EquipmentID: equipmentID, ImagePath: *equipment.QRCodeImagePath}, nil
	}

	if _, err := s.EnsureToken(ctx, actor, equipmentID); err != nil {
		return dto.QRImageDTO{}, err
	}

	detail, err := s.equipmentRepo.FindEquipmentDetail(ctx, equipmentID, scope)
	if err != nil {
		return dto.QRImageDTO{}, err
	}

	content, err := json.Marshal(s.buildPayload(detail))
	if err != nil {
		return dto.QRImageDTO{}, fmt.Errorf("encode qr payload: %w", err)
	}
	png, err := qrcode.Encode(string(content), qrcode.Medium, qrImageSize)
	if err != nil {
		return dto.QRImageDTO{}, fmt.Errorf("render qr image: %w", err)
	}

	path, err := s.storage.SaveBytes(png, fmt.Sprintf("equipment-%d.png", equipmentID), "qrcodes")
	if err != nil {
		return dto.QRImageDTO{}, fmt.Errorf("store qr image: %w", err)
	}
	if err := s.equipmentRepo.SetQRImagePath(ctx, equipmentID, path); err != nil {
		return dto.QRImageDTO{}, err
	}

	return dto.QRImageDTO{EquipmentID: equipmentID, ImagePath: path}, nil
}

// ResolveScan accepts whatever a scanner app sends back: the JSON payload
// embedded in the image, or the URL form. Either way the live record is
// fetched fresh; stale snapshot fields in old labels are ignored.
func (s *QRCodeService) ResolveScan(ctx context.Context, actor *authz.Actor, payload string) (dto.EquipmentDTO, error) {
	equipmentID, err := extractEquipmentID(payload)
	if err != nil {
		return dto.EquipmentDTO{}, err
	}

	scope := authz.ScopeForActor(actor)
	detail, err := s.equipmentRepo.FindEquipmentDetail(ctx, equipmentID, scope)
	if err != nil {
		return dto.EquipmentDTO{}, err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryEquipment,
		"qr.scanned",
		fmt.Sprintf("scanned equipment %d (%s)", detail.ID, detail.SerialNumber),
		map[string]interface{}{"equipment_id": detail.ID})
	return detail, nil
}

// extractEquipmentID understands both payload shapes, and both the current
// "id" key and the older "equipment_id" one.
func extractEquipmentID(payload string) (uint64, error) {
	trimmed := strings.TrimSpace(payload)

	if strings.HasPrefix(trimmed, "{") {
		var decoded map[string]interface{}
		if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
			return 0, apperrors.NewValidationError(map[string]string{
				"payload": "malformed QR payload",
			})
		}
		for _, key := range []string{"id", "equipment_id"} {
			if raw, ok := decoded[key]; ok {
				switch v := raw.(type) {
				case float64:
					return uint64(v), nil
				case string:
					if id, err := strconv.ParseUint(v, 10, 64); err == nil {
						return id, nil
					}
				}
			}
		}
		return 0, apperrors.NewValidationError(map[string]string{
			"payload": "QR payload carries no equipment id",
		})
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return 0, apperrors.NewValidationError(map[string]string{
			"payload": "malformed QR payload",
		})
	}
	query := parsed.Query()
	for _, key := range []string{"id", "equipment_id"} {
		if value := query.Get(key); value != "" {
			if id, err := strconv.ParseUint(value, 10, 64); err == nil {
				return id, nil
			}
		}
	}
	return 0, apperrors.NewValidationError(map[string]string{
		"payload": "QR payload carries no equipment id",
	})
}

// BatchBundles prepares label bundles for printing: explicit ids, or every
// equipment of an office.
func (s *QRCodeService) BatchBundles(ctx context.Context, actor *authz.Actor, req dto.QRBatchRequestDTO) ([]dto.QRBundleDTO, error) {
	scope := authz.ScopeForActor(actor)

	var ids []uint64
	switch {
	case len(req.EquipmentIDs) > 0:
		equipments, err := s.equipmentRepo.GetEquipmentsByIDs(ctx, req.EquipmentIDs, scope)
		if err != nil {
			return nil, err
		}
		for _, e := range equipments {
			ids = append(ids, e.ID)
		}
	case req.OfficeID != nil:
		if scope.OfficeID != nil && *req.OfficeID != *scope.OfficeID {
			return nil, apperrors.ErrNotFound
		}
		equipments, err := s.equipmentRepo.GetEquipmentsByOffice(ctx, *req.OfficeID)
		if err != nil {
			return nil, err
		}
		for _, e := range equipments {
			ids = append(ids, e.ID)
		}
	default:
		return nil, apperrors.NewValidationError(map[string]string{
			"equipment_ids": "either equipment_ids or office_id is required",
		})
	}

	bundles := make([]dto.QRBundleDTO, 0, len(ids))
	for _, id := range ids {
		image, err := s.GetOrRenderImage(ctx, actor, id)
		if err != nil {
			return nil, err
		}
		detail, err := s.equipmentRepo.FindEquipmentDetail(ctx, id, scope)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, dto.QRBundleDTO{
			Equipment: detail,
			ImagePath: image.ImagePath,
			Payload:   s.buildPayload(detail),
		})
	}
	return bundles, nil
}
