package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

type OfficeServiceInterface interface {
	GetOffices(ctx context.Context, actor *authz.Actor, filter types.Filter) ([]dto.OfficeDTO, uint64, error)
	GetOffice(ctx context.Context, actor *authz.Actor, id uint64) (entities.Office, error)
	CreateOffice(ctx context.Context, actor *authz.Actor, payload dto.CreateOfficeDTO) (uint64, error)
	UpdateOffice(ctx context.Context, actor *authz.Actor, id uint64, payload dto.UpdateOfficeDTO) error
	DeleteOffice(ctx context.Context, actor *authz.Actor, id uint64) error
}

type OfficeService struct {
	officeRepo repositories.OfficeRepositoryInterface
	activity   ActivityServiceInterface
	logger     *zap.Logger
}

func NewOfficeService(
	officeRepo repositories.OfficeRepositoryInterface,
	activity ActivityServiceInterface,
	logger *zap.Logger,
) OfficeServiceInterface {
	return &OfficeService{officeRepo: officeRepo, activity: activity, logger: logger}
}

func (s *OfficeService) GetOffices(ctx context.Context, actor *authz.Actor, filter types.Filter) ([]dto.OfficeDTO, uint64, error) {
	scope := authz.ScopeForActor(actor)
	return s.officeRepo.GetOffices(ctx, filter, scope)
}

func (s *OfficeService) GetOffice(ctx context.Context, actor *authz.Actor, id uint64) (entities.Office, error) {
	scope := authz.ScopeForActor(actor)
	if scope.OfficeID != nil && id != *scope.OfficeID {
		return entities.Office{}, apperrors.ErrNotFound
	}
	return s.officeRepo.FindOffice(ctx, id)
}

func (s *OfficeService) CreateOffice(ctx context.Context, actor *authz.Actor, payload dto.CreateOfficeDTO) (uint64, error) {
	id, err := s.officeRepo.CreateOffice(ctx, entities.Office{
		CampusID:      payload.CampusID,
		Name:          payload.Name,
		IsActive:      true,
		ContactPerson: payload.ContactPerson,
		ContactNumber: payload.ContactNumber,
		Email:         payload.Email,
	})
	if err != nil {
		return 0, err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"office.created", fmt.Sprintf("created office %s", payload.Name),
		map[string]interface{}{"office_id": id})
	return id, nil
}

func (s *OfficeService) UpdateOffice(ctx context.Context, actor *authz.Actor, id uint64, payload dto.UpdateOfficeDTO) error {
	updates := make(map[string]interface{})
	if payload.Name.Valid {
		updates["name"] = payload.Name.String
	}
	if payload.CampusID.Valid {
		updates["campus_id"] = payload.CampusID.Uint64
	}
	if payload.IsActive.Valid {
		updates["is_active"] = payload.IsActive.Bool
	}
	if payload.ContactPerson.Valid {
		updates["contact_person"] = payload.ContactPerson.String
	}
	if payload.ContactNumber.Valid {
		updates["contact_number"] = payload.ContactNumber.String
	}
	if payload.Email.Valid {
		updates["email"] = payload.Email.String
	}

	if err := s.officeRepo.UpdateOffice(ctx, id, updates); err != nil {
		return err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"office.updated", fmt.Sprintf("updated office %d", id),
		map[string]interface{}{"office_id": id})
	return nil
}

// DeleteOffice refuses while users or equipment still reference the office.
func (s *OfficeService) DeleteOffice(ctx context.Context, actor *authz.Actor, id uint64) error {
	office, err := s.officeRepo.FindOffice(ctx, id)
	if err != nil {
		return err
	}

	references, err := s.officeRepo.CountReferences(ctx, id)
	if err != nil {
		return err
	}
	if references > 0 {
		return apperrors.ErrOfficeInUse
	}

	if err := s.officeRepo.DeleteOffice(ctx, id); err != nil {
		return err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"office.deleted", fmt.Sprintf("deleted office %s", office.Name),
		map[string]interface{}{"office_id": id})
	return nil
}
