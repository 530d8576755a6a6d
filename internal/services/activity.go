package services

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"inventory-system/internal/dto"
	"inventory-system/internal/entities"
	"inventory-system/internal/repositories"
	"inventory-system/pkg/types"
)

type ActivityServiceInterface interface {
	GetActivities(ctx context.Context, filter types.Filter) ([]dto.ActivityDTO, uint64, error)
	Log(ctx context.Context, userID *uint64, category, action, description string, metadata interface{})
}

type ActivityService struct {
	activityRepo repositories.ActivityRepositoryInterface
	logger       *zap.Logger
}

func NewActivityService(
	activityRepo repositories.ActivityRepositoryInterface,
	logger *zap.Logger,
) ActivityServiceInterface {
	return &ActivityService{activityRepo: activityRepo, logger: logger}
}

func (s *ActivityService) GetActivities(ctx context.Context, filter types.Filter) ([]dto.ActivityDTO, uint64, error) {
	return s.activityRepo.GetActivities(ctx, filter)
}

// Log records an activity entry. Logging is best-effort: a failed insert is
// reported to the logger but never fails the calling operation.
func (s *ActivityService) Log(ctx context.Context, userID *uint64, category, action, description string, metadata interface{}) {
	var raw json.RawMessage
	if metadata != nil {
		encoded, err := json.Marshal(metadata)
		if err != nil {
			s.logger.Warn("could not encode activity metadata",
				zap.String("action", action), zap.Error(err))
		} else {
			raw = encoded
		}
	}

	err := s.activityRepo.CreateActivity(ctx, entities.Activity{
		UserID:      userID,
		Category:    category,
		Action:      action,
		Description: description,
		Metadata:    raw,
	})
	if err != nil {
		s.logger.Error("could not record activity",
			zap.String("action", action), zap.Error(err))
	}
}
