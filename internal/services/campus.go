package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
)

type CampusServiceInterface interface {
	GetCampuses(ctx context.Context) ([]entities.Campus, error)
	GetCampus(ctx context.Context, id uint64) (entities.Campus, error)
	CreateCampus(ctx context.Context, actor *authz.Actor, payload dto.CreateCampusDTO) (uint64, error)
	UpdateCampus(ctx context.Context, actor *authz.Actor, id uint64, payload dto.UpdateCampusDTO) error
	DeleteCampus(ctx context.Context, actor *authz.Actor, id uint64) error
}

type CampusService struct {
	campusRepo repositories.CampusRepositoryInterface
	activity   ActivityServiceInterface
	logger     *zap.Logger
}

func NewCampusService(
	campusRepo repositories.CampusRepositoryInterface,
	activity ActivityServiceInterface,
	logger *zap.Logger,
) CampusServiceInterface {
	return &CampusService{campusRepo: campusRepo, activity: activity, logger: logger}
}

func (s *CampusService) GetCampuses(ctx context.Context) ([]entities.Campus, error) {
	return s.campusRepo.GetCampuses(ctx)
}

func (s *CampusService) GetCampus(ctx context.Context, id uint64) (entities.Campus, error) {
	return s.campusRepo.FindCampus(ctx, id)
}

func (s *CampusService) CreateCampus(ctx context.Context, actor *authz.Actor, payload dto.CreateCampusDTO) (uint64, error) {
	id, err := s.campusRepo.CreateCampus(ctx, entities.Campus{
		Name:    payload.Name,
		Address: payload.Address,
	})
	if err != nil {
		return 0, err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"campus.created", fmt.Sprintf("created campus %s", payload.Name),
		map[string]interface{}{"campus_id": id})
	return id, nil
}

func (s *CampusService) UpdateCampus(ctx context.Context, actor *authz.Actor, id uint64, payload dto.UpdateCampusDTO) error {
	updates := make(map[string]interface{})
	if payload.Name != nil {
		updates["name"] = *payload.Name
	}
	if payload.Address != nil {
		updates["address"] = *payload.Address
	}
	if err := s.campusRepo.UpdateCampus(ctx, id, updates); err != nil {
		return err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"campus.updated", fmt.Sprintf("updated campus %d", id),
		map[string]interface{}{"campus_id": id})
	return nil
}

func (s *CampusService) DeleteCampus(ctx context.Context, actor *authz.Actor, id uint64) error {
	campus, err := s.campusRepo.FindCampus(ctx, id)
	if err != nil {
		return err
	}
	if err := s.campusRepo.DeleteCampus(ctx, id); err != nil {
		return err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryAccounts,
		"campus.deleted", fmt.Sprintf("deleted campus %s", campus.Name),
		map[string]interface{}{"campus_id": id})
	return nil
}
