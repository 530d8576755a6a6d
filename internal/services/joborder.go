package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"inventory-system/internal/repositories"
	apperrors "inventory-system/pkg/errors"
)

const maxJoSequence = 999

type JoNumberAllocatorInterface interface {
	Prefix(date time.Time) string
	Next(ctx context.Context, date time.Time) (string, error)
}

// JoNumberAllocator issues job order numbers of the form JO-YY-MM-SEQ, where
// the sequence restarts at 001 every calendar month of the entry date. The
// allocator only proposes candidates; the UNIQUE constraint on jo_number is
// the real arbiter under concurrency, and callers re-allocate on conflict.
type JoNumberAllocator struct {
	historyRepo repositories.EquipmentHistoryRepositoryInterface
	logger      *zap.Logger
}

func NewJoNumberAllocator(
	historyRepo repositories.EquipmentHistoryRepositoryInterface,
	logger *zap.Logger,
) JoNumberAllocatorInterface {
	return &JoNumberAllocator{historyRepo: historyRepo, logger: logger}
}

func (a *JoNumberAllocator) Prefix(date time.Time) string {
	return "JO-" + date.Format("06-01") + "-"
}

// Next finds the highest sequence already allocated for the month and probes
// forward until a free number is found. Probing covers client-supplied
// numbers that left gaps above the generated run.
func (a *JoNumberAllocator) Next(ctx context.Context, date time.Time) (string, error) {
	prefix := a.Prefix(date)

	latest, err := a.historyRepo.LatestJoNumber(ctx, prefix)
	if err != nil {
		return "", fmt.Errorf("query latest jo number: %w", err)
	}

	seq := 1
	if latest != "" {
		parsed, err := parseSequence(latest, prefix)
		if err != nil {
			a.logger.Warn("unparseable jo number in storage, restarting probe at 001",
				zap.String("jo_number", latest))
		} else {
			seq = parsed + 1
		}
	}

	for ; seq <= maxJoSequence; seq++ {
		candidate := fmt.Sprintf("%s%03d", prefix, seq)
		exists, err := a.historyRepo.JoNumberExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("probe jo number %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}

	return "", apperrors.ErrAllocationExhausted
}

func parseSequence(joNumber, prefix string) (int, error) {
	suffix := strings.TrimPrefix(joNumber, prefix)
	if suffix == joNumber {
		return 0, fmt.Errorf("jo number %q does not carry prefix %q", joNumber, prefix)
	}
	seq, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, fmt.Errorf("jo number %q has non-numeric sequence: %w", joNumber, err)
	}
	return seq, nil
}
