package waste

import (
	"context"
	"errors"
	"fmt"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/lifecycle"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/logger"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/repository"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/validation"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

func (s *Service) CreateBatch(ctx context.Context, in models.NewBatch) (*models.WasteBatch, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, fmt.Errorf("create waste batch: %w", err)
	}
	if in.EstimatedWeight.IsNegative() {
		return nil, fmt.Errorf("create waste batch: %w", apperrors.Invalid("estimatedWeight", "must not be negative"))
	}

	batch := &models.WasteBatch{
		Title:           in.Title,
		Description:     in.Description,
		EstimatedWeight: in.EstimatedWeight,
		Location:        in.Location,
		WasteType:       in.WasteType,
		Category:        in.Category,
		Status:          models.BatchDraft,
		CreatedBy:       in.CreatedBy,
	}
	if err := s.repo.CreateBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("create waste batch: %w", err)
	}

	logger.Info("waste batch created", map[string]any{
		"batch_id":   batch.ID,
		"created_by": batch.CreatedBy,
	})
	return batch, nil
}

func (s *Service) GetBatch(ctx context.Context, id int64) (*models.WasteBatch, error) {
	batch, err := s.repo.GetBatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get waste batch: %w", err)
	}
	return batch, nil
}

func (s *Service) ListBatches(ctx context.Context, filter models.BatchFilter) ([]models.WasteBatch, error) {
	if filter.Status != nil && !lifecycle.Batch.Valid(*filter.Status) {
		return nil, apperrors.Invalid("status", fmt.Sprintf("unknown waste batch status %q", *filter.Status))
	}
	batches, err := s.repo.ListBatches(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list waste batches: %w", err)
	}
	return batches, nil
}

// BatchStats - число партий в каждом статусе, нулевые тоже
func (s *Service) BatchStats(ctx context.Context) (map[models.BatchStatus]int, error) {
	counts, err := s.repo.CountBatchesByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("waste batch stats: %w", err)
	}
	stats := make(map[models.BatchStatus]int, len(models.BatchStatuses))
	for _, st := range models.BatchStatuses {
		stats[st] = counts[st]
	}
	return stats, nil
}

// TransitionBatch переводит партию в requested.
// Партия с аукционом меняется под блокировкой аукциона, переход в
// auction_ended подводит итоги торгов в той же операции.
func (s *Service) TransitionBatch(ctx context.Context, id int64, requested models.BatchStatus) (*models.WasteBatch, error) {
	batch, err := s.repo.GetBatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("transition waste batch: %w", err)
	}
	if _, err := lifecycle.Batch.Transition(batch.Status, requested); err != nil {
		return nil, fmt.Errorf("transition waste batch %d: %w", id, err)
	}

	auction, err := s.repo.GetAuctionByBatch(ctx, id)
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		auction = nil
	case err != nil:
		return nil, fmt.Errorf("transition waste batch %d: %w", id, err)
	}

	if auction == nil {
		if requested == models.BatchAuctionInProgress {
			return nil, fmt.Errorf("transition waste batch %d: %w", id,
				apperrors.Invalid("status", "batch has no auction to start"))
		}
		ok, err := s.repo.UpdateBatchStatus(ctx, id, batch.Status, requested)
		if err != nil {
			return nil, fmt.Errorf("transition waste batch %d: %w", id, err)
		}
		if !ok {
			return nil, fmt.Errorf("transition waste batch %d: %w: status changed concurrently", id, apperrors.ErrInvalidTransition)
		}
	} else {
		err = s.repo.WithAuctionLock(ctx, auction.ID, func(tx repository.AuctionTx) error {
			from := tx.BatchStatus()
			next, err := lifecycle.Batch.Transition(from, requested)
			if err != nil {
				return err
			}
			ok, err := tx.SetBatchStatus(ctx, from, next)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: status changed concurrently", apperrors.ErrInvalidTransition)
			}
			if next == models.BatchAuctionEnded {
				_, err := s.settleLocked(ctx, tx)
				return err
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("transition waste batch %d: %w", id, err)
		}
	}

	logger.Info("waste batch transitioned", map[string]any{
		"batch_id": id,
		"from":     batch.Status,
		"to":       requested,
	})

	updated, err := s.repo.GetBatch(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("transition waste batch %d: %w", id, err)
	}
	return updated, nil
}
