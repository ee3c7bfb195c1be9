package waste

import (
	"context"
	"errors"
	"fmt"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/logger"
)

// CloseDueAuctions закрывает и подводит итоги торгов, у которых прошло
// end_time. Возвращает число закрытых.
func (s *Service) CloseDueAuctions(ctx context.Context) (int, error) {
	due, err := s.repo.ListDueAuctions(ctx, s.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("close due auctions: %w", err)
	}

	closed, failed := 0, 0
	for _, auction := range due {
		if ctx.Err() != nil {
			break
		}
		_, err := s.Settle(ctx, auction.ID)
		switch {
		case err == nil:
			closed++
		case errors.Is(err, apperrors.ErrInvalidTransition), errors.Is(err, apperrors.ErrAlreadySettled):
			logger.Debug("auction already closed", map[string]any{"auction_id": auction.ID})
		default:
			failed++
			logger.Error("auto-close failed", map[string]any{
				"auction_id": auction.ID,
				"batch_id":   auction.BatchID,
				"error":      err.Error(),
			})
		}
	}

	if failed > 0 {
		return closed, fmt.Errorf("close due auctions: %d of %d failed", failed, len(due))
	}
	return closed, ctx.Err()
}
