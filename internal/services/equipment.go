package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

const serialUniqueConstraint = "equipments_serial_number_key"

type EquipmentServiceInterface interface {
	GetEquipments(ctx context.Context, actor *authz.Actor, filter types.Filter) ([]dto.EquipmentDTO, uint64, error)
	GetEquipment(ctx context.Context, actor *authz.Actor, id uint64) (dto.EquipmentDTO, error)
	CreateEquipment(ctx context.Context, actor *authz.Actor, payload dto.CreateEquipmentDTO) (dto.EquipmentDTO, error)
	UpdateEquipment(ctx context.Context, actor *authz.Actor, id uint64, payload dto.UpdateEquipmentDTO) error
	DeleteEquipment(ctx context.Context, actor *authz.Actor, id uint64) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	activity      ActivityServiceInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	activity ActivityServiceInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		activity:      activity,
		logger:        logger,
	}
}

func (s *EquipmentService) GetEquipments(ctx context.Context, actor *authz.Actor, filter types.Filter) ([]dto.EquipmentDTO, uint64, error) {
	scope := authz.ScopeForActor(actor)
	return s.equipmentRepo.GetEquipments(ctx, filter, scope)
}

func (s *EquipmentService) GetEquipment(ctx context.Context, actor *authz.Actor, id uint64) (dto.EquipmentDTO, error) {
	scope := authz.ScopeForActor(actor)
	return s.equipmentRepo.FindEquipmentDetail(ctx, id, scope)
}

func (s *EquipmentService) CreateEquipment(ctx context.Context, actor *authz.Actor, payload dto.CreateEquipmentDTO) (dto.EquipmentDTO, error) {
	scope := authz.ScopeForActor(actor)
	if scope.OfficeID != nil && payload.OfficeID != *scope.OfficeID {
		return dto.EquipmentDTO{}, apperrors.NewForbiddenError("equipment can only be registered in your own office")
	}

	purchaseDate, err := parseDatePtr(payload.PurchaseDate)
	if err != nil {
		return dto.EquipmentDTO{}, apperrors.NewValidationError(map[string]string{
			"purchase_date": "must be a valid date in YYYY-MM-DD format",
		})
	}

	// Token is minted once at registration and never regenerated; printed
	// labels stay valid for the life of the record.
	token := "EQP-" + uuid.NewString()

	equipment := entities.Equipment{
		Brand:           payload.Brand,
		ModelNumber:     payload.ModelNumber,
		SerialNumber:    payload.SerialNumber,
		EquipmentTypeID: payload.EquipmentTypeID,
		CategoryID:      payload.CategoryID,
		OfficeID:        payload.OfficeID,
		Description:     payload.Description,
		PurchaseDate:    purchaseDate,
		CostOfPurchase:  payload.CostOfPurchase,
		Status:          payload.Status,
		Condition:       entities.ConditionForStatus(payload.Status),
		QRCode:          &token,
	}

	id, err := s.equipmentRepo.CreateEquipment(ctx, equipment)
	if err != nil {
		if isUniqueViolation(err, serialUniqueConstraint) {
			return dto.EquipmentDTO{}, apperrors.NewValidationError(map[string]string{
				"serial_number": "an equipment with this serial number already exists",
			})
		}
		return dto.EquipmentDTO{}, err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryEquipment,
		"equipment.created",
		fmt.Sprintf("registered equipment %s %s (%s)", payload.Brand, payload.ModelNumber, payload.SerialNumber),
		map[string]interface{}{"equipment_id": id})

	return s.equipmentRepo.FindEquipmentDetail(ctx, id, scope)
}

func (s *EquipmentService) UpdateEquipment(ctx context.Context, actor *authz.Actor, id uint64, payload dto.UpdateEquipmentDTO) error {
	scope := authz.ScopeForActor(actor)
	if _, err := s.equipmentRepo.FindEquipment(ctx, id, scope); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	if payload.Brand.Valid {
		updates["brand"] = payload.Brand.String
	}
	if payload.ModelNumber.Valid {
		updates["model_number"] = payload.ModelNumber.String
	}
	if payload.SerialNumber.Valid {
		updates["serial_number"] = payload.SerialNumber.String
	}
	if payload.EquipmentTypeID.Valid {
		updates["equipment_type_id"] = payload.EquipmentTypeID.Uint64
	}
	if payload.CategoryID.Valid {
		updates["category_id"] = payload.CategoryID.Uint64
	}
	if payload.OfficeID.Valid {
		if scope.OfficeID != nil && payload.OfficeID.Uint64 != *scope.OfficeID {
			return apperrors.NewForbiddenError("equipment cannot be moved outside your own office")
		}
		updates["office_id"] = payload.OfficeID.Uint64
	}
	if payload.Description.Valid {
		updates["description"] = payload.Description.String
	}
	if payload.PurchaseDate.Valid {
		parsed, err := parseDatePtr(&payload.PurchaseDate.String)
		if err != nil {
			return apperrors.NewValidationError(map[string]string{
				"purchase_date": "must be a valid date in YYYY-MM-DD format",
			})
		}
		updates["purchase_date"] = parsed
	}
	if payload.CostOfPurchase.Valid {
		updates["cost_of_purchase"] = payload.CostOfPurchase.Float64
	}
	if payload.Status.Valid {
		if !entities.IsValidStatus(payload.Status.String) {
			return apperrors.NewValidationError(map[string]string{
				"status": "must be one of serviceable, for_repair, defective",
			})
		}
		updates["status"] = payload.Status.String
		updates["condition"] = entities.ConditionForStatus(payload.Status.String)
	}

	if err := s.equipmentRepo.UpdateEquipment(ctx, id, updates); err != nil {
		if isUniqueViolation(err, serialUniqueConstraint) {
			return apperrors.NewValidationError(map[string]string{
				"serial_number": "an equipment with this serial number already exists",
			})
		}
		return err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryEquipment,
		"equipment.updated",
		fmt.Sprintf("updated equipment %d", id),
		map[string]interface{}{"equipment_id": id})
	return nil
}

func (s *EquipmentService) DeleteEquipment(ctx context.Context, actor *authz.Actor, id uint64) error {
	scope := authz.ScopeForActor(actor)
	equipment, err := s.equipmentRepo.FindEquipment(ctx, id, scope)
	if err != nil {
		return err
	}
	if err := s.equipmentRepo.DeleteEquipment(ctx, id); err != nil {
		return err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryEquipment,
		"equipment.deleted",
		fmt.Sprintf("deleted equipment %s (%s)", equipment.ModelNumber, equipment.SerialNumber),
		map[string]interface{}{"equipment_id": id})
	return nil
}
