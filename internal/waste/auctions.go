package waste

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/lifecycle"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/logger"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/repository"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/validation"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

func (s *Service) CreateAuction(ctx context.Context, in models.NewAuction) (*models.WasteAuction, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, fmt.Errorf("create waste auction: %w", err)
	}

	verr := &apperrors.ValidationError{Fields: map[string]string{}}
	if !in.StartTime.After(s.now()) {
		verr.Fields["startTime"] = "must be in the future"
	}
	if !in.EndTime.After(in.StartTime) {
		verr.Fields["endTime"] = "must be after startTime"
	}
	switch {
	case in.BasePrice.IsNegative():
		verr.Fields["basePrice"] = "must not be negative"
	case !hasMoneyPrecision(in.BasePrice):
		verr.Fields["basePrice"] = "must have at most 2 decimal places"
	}
	if in.ReservePrice.Valid {
		switch {
		case in.ReservePrice.Decimal.LessThan(in.BasePrice):
			verr.Fields["reservePrice"] = "must not be below basePrice"
		case !hasMoneyPrecision(in.ReservePrice.Decimal):
			verr.Fields["reservePrice"] = "must have at most 2 decimal places"
		}
	}
	if len(verr.Fields) > 0 {
		return nil, fmt.Errorf("create waste auction: %w", verr)
	}

	batch, err := s.repo.GetBatch(ctx, in.BatchID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("create waste auction: %w",
			apperrors.Invalid("batchId", fmt.Sprintf("waste batch %d does not exist", in.BatchID)))
	}
	if err != nil {
		return nil, fmt.Errorf("create waste auction: %w", err)
	}
	if batch.Status != models.BatchDraft && batch.Status != models.BatchPublished {
		return nil, fmt.Errorf("create waste auction: %w",
			apperrors.Invalid("batchId", fmt.Sprintf("waste batch %d is already %s", batch.ID, batch.Status)))
	}

	auction := &models.WasteAuction{
		BatchID:      in.BatchID,
		Title:        in.Title,
		Description:  in.Description,
		StartTime:    in.StartTime.UTC(),
		EndTime:      in.EndTime.UTC(),
		BasePrice:    in.BasePrice,
		ReservePrice: in.ReservePrice,
		CreatedBy:    in.CreatedBy,
	}
	if err := s.repo.CreateAuction(ctx, auction); err != nil {
		return nil, fmt.Errorf("create waste auction: %w", err)
	}

	logger.Info("waste auction created", map[string]any{
		"auction_id": auction.ID,
		"batch_id":   auction.BatchID,
		"base_price": auction.BasePrice.StringFixed(moneyPrecision),
	})
	return auction, nil
}

// GetAuction возвращает аукцион с текущей максимальной ставкой
func (s *Service) GetAuction(ctx context.Context, id int64) (*models.AuctionDetails, error) {
	auction, err := s.repo.GetAuction(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get waste auction: %w", err)
	}
	batch, err := s.repo.GetBatch(ctx, auction.BatchID)
	if err != nil {
		return nil, fmt.Errorf("get waste auction %d: %w", id, err)
	}
	bids, err := s.repo.ListBids(ctx, models.BidFilter{AuctionID: &auction.ID})
	if err != nil {
		return nil, fmt.Errorf("get waste auction %d: %w", id, err)
	}

	details := &models.AuctionDetails{
		WasteAuction: *auction,
		BatchStatus:  batch.Status,
		Active:       auctionActive(*auction, batch.Status, s.now()),
		BidCount:     len(RankBids(bids)),
	}
	if high, ok := CurrentHigh(bids); ok {
		details.CurrentHigh = &high
	}
	return details, nil
}

func (s *Service) ListAuctions(ctx context.Context, filter models.AuctionFilter) ([]models.WasteAuction, error) {
	auctions, err := s.repo.ListAuctions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list waste auctions: %w", err)
	}
	return auctions, nil
}

// Settle закрывает торги, у которых прошло end_time, и подводит итоги:
// партия из auction_in_progress переходит в auction_ended в той же операции.
// Партию, закрытую без подведения итогов, Settle только досчитывает.
func (s *Service) Settle(ctx context.Context, auctionID int64) (*models.WasteBid, error) {
	var (
		winner *models.WasteBid
		from   models.BatchStatus
		closed bool
	)
	err := s.repo.WithAuctionLock(ctx, auctionID, func(tx repository.AuctionTx) error {
		auction := tx.Auction()
		if auction.Settled() {
			return fmt.Errorf("%w: auction %d", apperrors.ErrAlreadySettled, auctionID)
		}

		from = tx.BatchStatus()
		switch from {
		case models.BatchAuctionEnded, models.BatchAllocated:
		case models.BatchAuctionInProgress:
			if s.now().Before(auction.EndTime) {
				return fmt.Errorf("%w: bidding on auction %d is open until %s",
					apperrors.ErrInvalidTransition, auctionID, auction.EndTime.Format(time.RFC3339))
			}
			next, err := lifecycle.Batch.Transition(from, models.BatchAuctionEnded)
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
			closed = true
		default:
			return fmt.Errorf("%w: bidding on auction %d is not closed (batch is %s)", apperrors.ErrInvalidTransition, auctionID, from)
		}

		var err error
		winner, err = s.settleLocked(ctx, tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("settle waste auction: %w", err)
	}

	if closed {
		logger.Info("waste batch transitioned", map[string]any{
			"auction_id": auctionID,
			"from":       from,
			"to":         models.BatchAuctionEnded,
		})
	}
	return winner, nil
}

// settleLocked: старшая ставка, прошедшая резерв, становится winning,
// остальные неотменённые - outbid. Без победителя winning_bid_id пустой.
func (s *Service) settleLocked(ctx context.Context, tx repository.AuctionTx) (*models.WasteBid, error) {
	auction := tx.Auction()
	if auction.Settled() {
		return nil, fmt.Errorf("%w: auction %d", apperrors.ErrAlreadySettled, auction.ID)
	}

	bids, err := tx.Bids(ctx)
	if err != nil {
		return nil, err
	}
	ranked := RankBids(bids)

	var winner *models.WasteBid
	if len(ranked) > 0 && MeetsReserve(auction, ranked[0].BidAmount) {
		winner = &ranked[0]
	}
	for i := range ranked {
		target := models.BidOutbid
		if winner != nil && ranked[i].ID == winner.ID {
			target = models.BidWinning
		}
		if err := setBidStatus(ctx, tx, &ranked[i], target); err != nil {
			return nil, err
		}
	}

	var winnerID *int64
	if winner != nil {
		winnerID = &winner.ID
	}
	if err := tx.MarkSettled(ctx, winnerID, s.now().UTC()); err != nil {
		return nil, err
	}

	fields := map[string]any{
		"auction_id": auction.ID,
		"bids":       len(ranked),
	}
	if winner != nil {
		fields["winning_bid_id"] = winner.ID
		fields["bidder_id"] = winner.BidderID
		fields["amount"] = winner.BidAmount.StringFixed(moneyPrecision)
		logger.Info("waste auction settled", fields)
	} else {
		logger.Info("waste auction settled without winner", fields)
	}
	return winner, nil
}
