package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"inventory-system/internal/authz"
	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
	"inventory-system/pkg/types"
)

const (
	dateLayout         = "2006-01-02"
	maxCreateAttempts  = 5
	joUniqueConstraint = "equipment_histories_jo_number_key"
)

type EquipmentHistoryServiceInterface interface {
	GetHistories(ctx context.Context, actor *authz.Actor, equipmentID uint64, filter types.Filter) ([]dto.EquipmentHistoryDTO, uint64, error)
	GenerateJoNumber(ctx context.Context, dateStr string) (dto.GeneratedJoNumberDTO, error)
	CheckBackdate(ctx context.Context, actor *authz.Actor, equipmentID uint64, dateStr string) (dto.BackdateCheckDTO, error)
	CreateHistory(ctx context.Context, actor *authz.Actor, equipmentID uint64, payload dto.CreateEquipmentHistoryDTO) (entities.EquipmentHistory, error)
	UpdateHistory(ctx context.Context, actor *authz.Actor, historyID uint64, payload dto.UpdateEquipmentHistoryDTO) error
}

// EquipmentHistoryService owns the maintenance-entry workflow: job order
// numbering, backdating rules, and the transactional link between a new
// entry and the equipment's status.
type EquipmentHistoryService struct {
	historyRepo   repositories.EquipmentHistoryRepositoryInterface
	equipmentRepo repositories.EquipmentRepositoryInterface
	allocator     JoNumberAllocatorInterface
	txManager     repositories.TxManagerInterface
	activity      ActivityServiceInterface
	logger        *zap.Logger
}

func NewEquipmentHistoryService(
	historyRepo repositories.EquipmentHistoryRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	allocator JoNumberAllocatorInterface,
	txManager repositories.TxManagerInterface,
	activity ActivityServiceInterface,
	logger *zap.Logger,
) EquipmentHistoryServiceInterface {
	return &EquipmentHistoryService{
		historyRepo:   historyRepo,
		equipmentRepo: equipmentRepo,
		allocator:     allocator,
		txManager:     txManager,
		activity:      activity,
		logger:        logger,
	}
}

func (s *EquipmentHistoryService) GetHistories(ctx context.Context, actor *authz.Actor, equipmentID uint64, filter types.Filter) ([]dto.EquipmentHistoryDTO, uint64, error) {
	scope := authz.ScopeForActor(actor)
	// Scope check happens on the parent record; an out-of-scope equipment id
	// is indistinguishable from a missing one.
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID, scope); err != nil {
		return nil, 0, err
	}
	return s.historyRepo.GetHistories(ctx, equipmentID, filter)
}

func (s *EquipmentHistoryService) GenerateJoNumber(ctx context.Context, dateStr string) (dto.GeneratedJoNumberDTO, error) {
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return dto.GeneratedJoNumberDTO{}, apperrors.NewValidationError(map[string]string{
			"date": "must be a valid date in YYYY-MM-DD format",
		})
	}
	joNumber, err := s.allocator.Next(ctx, date)
	if err != nil {
		return dto.GeneratedJoNumberDTO{}, err
	}
	return dto.GeneratedJoNumberDTO{JoNumber: joNumber}, nil
}

// CheckBackdate reports whether an entry dated dateStr would land before an
// existing later-dated entry. The client uses the answer to show the
// confirmation prompt before submitting with Confirmed set.
func (s *EquipmentHistoryService) CheckBackdate(ctx context.Context, actor *authz.Actor, equipmentID uint64, dateStr string) (dto.BackdateCheckDTO, error) {
	scope := authz.ScopeForActor(actor)
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID, scope); err != nil {
		return dto.BackdateCheckDTO{}, err
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return dto.BackdateCheckDTO{}, apperrors.NewValidationError(map[string]string{
			"date": "must be a valid date in YYYY-MM-DD format",
		})
	}

	latest, err := s.historyRepo.LatestHistoryDate(ctx, equipmentID)
	if err != nil {
		return dto.BackdateCheckDTO{}, err
	}
	if latest != nil && date.Before(*latest) {
		reason := fmt.Sprintf("a later entry dated %s already exists", latest.Format(dateLayout))
		return dto.BackdateCheckDTO{Allowed: false, Reason: &reason}, nil
	}
	return dto.BackdateCheckDTO{Allowed: true}, nil
}

// CreateHistory inserts a maintenance entry and synchronizes the equipment's
// status in one transaction. A generated job order number that loses the
// race on the UNIQUE constraint is re-allocated and retried; a
// client-supplied one fails immediately with ErrJoNumberTaken.
func (s *EquipmentHistoryService) CreateHistory(ctx context.Context, actor *authz.Actor, equipmentID uint64, payload dto.CreateEquipmentHistoryDTO) (entities.EquipmentHistory, error) {
	scope := authz.ScopeForActor(actor)
	if _, err := s.equipmentRepo.FindEquipment(ctx, equipmentID, scope); err != nil {
		return entities.EquipmentHistory{}, err
	}
	if !entities.IsValidStatus(payload.EquipmentStatus) {
		return entities.EquipmentHistory{}, apperrors.NewValidationError(map[string]string{
			"equipment_status": "must be one of serviceable, for_repair, defective",
		})
	}

	date, err := time.Parse(dateLayout, payload.Date)
	if err != nil {
		return entities.EquipmentHistory{}, apperrors.NewValidationError(map[string]string{
			"date": "must be a valid date in YYYY-MM-DD format",
		})
	}

	latest, err := s.historyRepo.LatestHistoryDate(ctx, equipmentID)
	if err != nil {
		return entities.EquipmentHistory{}, err
	}
	isBackdated := latest != nil && date.Before(*latest)
	if isBackdated && !payload.Confirmed {
		return entities.EquipmentHistory{}, apperrors.ErrLaterHistoryExists
	}

	clientSupplied := payload.JoNumber != nil && *payload.JoNumber != ""

	var joNumber string
	if clientSupplied {
		joNumber = *payload.JoNumber
	} else {
		joNumber, err = s.allocator.Next(ctx, date)
		if err != nil {
			return entities.EquipmentHistory{}, err
		}
	}

	history := entities.EquipmentHistory{
		EquipmentID:       equipmentID,
		Date:              date,
		ActionTaken:       payload.ActionTaken,
		Remarks:           payload.Remarks,
		EquipmentStatus:   payload.EquipmentStatus,
		ResponsiblePerson: payload.ResponsiblePerson,
		AssignedByID:      actor.User.ID,
	}

	for attempt := 1; attempt <= maxCreateAttempts; attempt++ {
		history.JoNumber = joNumber

		err = s.txManager.RunInTransaction(ctx, func(q repositories.Querier) error {
			id, err := s.historyRepo.CreateHistory(ctx, q, history)
			if err != nil {
				return err
			}
			history.ID = id

			// A backdated entry describes the past; it must not overwrite
			// the status set by a later-dated entry.
			if !isBackdated {
				condition := entities.ConditionForStatus(payload.EquipmentStatus)
				return s.equipmentRepo.UpdateStatus(ctx, q, equipmentID, payload.EquipmentStatus, condition)
			}
			return nil
		})
		if err == nil {
			s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryEquipment,
				"history.created",
				fmt.Sprintf("recorded %s for equipment %d", joNumber, equipmentID),
				map[string]interface{}{"equipment_id": equipmentID, "jo_number": joNumber})
			return history, nil
		}

		if !isUniqueViolation(err, joUniqueConstraint) {
			return entities.EquipmentHistory{}, err
		}
		if clientSupplied {
			return entities.EquipmentHistory{}, apperrors.ErrJoNumberTaken
		}

		s.logger.Info("jo number lost allocation race, retrying",
			zap.String("jo_number", joNumber), zap.Int("attempt", attempt))
		joNumber, err = s.allocator.Next(ctx, date)
		if err != nil {
			return entities.EquipmentHistory{}, err
		}
	}

	return entities.EquipmentHistory{}, apperrors.ErrAllocationExhausted
}

// UpdateHistory edits an existing entry. The job order number is immutable.
// The equipment status is re-synchronized from whichever entry is latest by
// date after the edit, the edited one or another.
func (s *EquipmentHistoryService) UpdateHistory(ctx context.Context, actor *authz.Actor, historyID uint64, payload dto.UpdateEquipmentHistoryDTO) error {
	history, err := s.historyRepo.FindHistory(ctx, historyID)
	if err != nil {
		return err
	}
	scope := authz.ScopeForActor(actor)
	if _, err := s.equipmentRepo.FindEquipment(ctx, history.EquipmentID, scope); err != nil {
		return err
	}

	updates := make(map[string]interface{})
	effectiveDate := history.Date
	if payload.Date != nil {
		parsed, err := time.Parse(dateLayout, *payload.Date)
		if err != nil {
			return apperrors.NewValidationError(map[string]string{
				"date": "must be a valid date in YYYY-MM-DD format",
			})
		}
		updates["date"] = parsed
		effectiveDate = parsed
	}
	if payload.ActionTaken != nil {
		updates["action_taken"] = *payload.ActionTaken
	}
	if payload.Remarks != nil {
		updates["remarks"] = *payload.Remarks
	}
	if payload.ResponsiblePerson != nil {
		updates["responsible_person"] = *payload.ResponsiblePerson
	}
	effectiveStatus := history.EquipmentStatus
	if payload.EquipmentStatus != nil {
		if !entities.IsValidStatus(*payload.EquipmentStatus) {
			return apperrors.NewValidationError(map[string]string{
				"equipment_status": "must be one of serviceable, for_repair, defective",
			})
		}
		updates["equipment_status"] = *payload.EquipmentStatus
		effectiveStatus = *payload.EquipmentStatus
	}

	// The equipment's status mirrors the latest-dated entry. The edited row is
	// excluded from the comparison so that moving its date backward hands the
	// status back to whichever entry is now latest.
	latestOther, err := s.historyRepo.LatestHistoryExcept(ctx, history.EquipmentID, historyID)
	if err != nil {
		return err
	}
	syncStatus := effectiveStatus
	if latestOther != nil && effectiveDate.Before(latestOther.Date) {
		syncStatus = latestOther.EquipmentStatus
	}

	err = s.txManager.RunInTransaction(ctx, func(q repositories.Querier) error {
		if err := s.historyRepo.UpdateHistory(ctx, q, historyID, updates); err != nil {
			return err
		}
		condition := entities.ConditionForStatus(syncStatus)
		return s.equipmentRepo.UpdateStatus(ctx, q, history.EquipmentID, syncStatus, condition)
	})
	if err != nil {
		return err
	}

	s.activity.Log(ctx, &actor.User.ID, entities.ActivityCategoryEquipment,
		"history.updated",
		fmt.Sprintf("updated %s for equipment %d", history.JoNumber, history.EquipmentID),
		map[string]interface{}{"equipment_id": history.EquipmentID, "history_id": historyID})
	return nil
}
