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

// PlaceBid принимает ставку, если аукцион активен и сумма строго выше
// текущей максимальной (или стартовой цены, пока ставок нет).
// Прежняя активная ставка становится outbid в той же операции.
func (s *Service) PlaceBid(ctx context.Context, in models.PlaceBid) (*models.WasteBid, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}
	switch {
	case !in.BidAmount.IsPositive():
		return nil, fmt.Errorf("place bid: %w", apperrors.Invalid("bidAmount", "must be greater than 0"))
	case !hasMoneyPrecision(in.BidAmount):
		return nil, fmt.Errorf("place bid: %w", apperrors.Invalid("bidAmount", "must have at most 2 decimal places"))
	}

	var placed models.WasteBid
	err := s.repo.WithAuctionLock(ctx, in.AuctionID, func(tx repository.AuctionTx) error {
		auction := tx.Auction()
		now := s.now().UTC()
		if !auctionActive(auction, tx.BatchStatus(), now) {
			return fmt.Errorf("%w: auction %d", apperrors.ErrAuctionNotActive, auction.ID)
		}

		bids, err := tx.Bids(ctx)
		if err != nil {
			return err
		}
		floor := Floor(auction, bids)
		if in.BidAmount.LessThanOrEqual(floor) {
			return fmt.Errorf("%w: amount must exceed %s", apperrors.ErrBidTooLow, floor.StringFixed(moneyPrecision))
		}

		for i := range bids {
			if bids[i].Status == models.BidActive {
				if err := setBidStatus(ctx, tx, &bids[i], models.BidOutbid); err != nil {
					return err
				}
			}
		}

		placed = models.WasteBid{
			BidderID:  in.BidderID,
			BidAmount: in.BidAmount,
			BidTime:   now,
			Notes:     in.Notes,
			Status:    models.BidActive,
		}
		return tx.InsertBid(ctx, &placed)
	})
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("place bid: %w: auction %d does not exist", apperrors.ErrAuctionNotActive, in.AuctionID)
	}
	if err != nil {
		return nil, fmt.Errorf("place bid: %w", err)
	}

	logger.Info("bid accepted", map[string]any{
		"bid_id":     placed.ID,
		"auction_id": placed.AuctionID,
		"bidder_id":  placed.BidderID,
		"amount":     placed.BidAmount.StringFixed(moneyPrecision),
	})
	return &placed, nil
}

// CancelBid отменяет ставку владельца, пока аукцион активен.
// Если отменили лидирующую ставку, active получает старшая из оставшихся.
func (s *Service) CancelBid(ctx context.Context, bidID, bidderID int64) (*models.WasteBid, error) {
	stored, err := s.repo.GetBid(ctx, bidID)
	if err != nil {
		return nil, fmt.Errorf("cancel bid: %w", err)
	}

	var cancelled models.WasteBid
	err = s.repo.WithAuctionLock(ctx, stored.AuctionID, func(tx repository.AuctionTx) error {
		bids, err := tx.Bids(ctx)
		if err != nil {
			return err
		}
		idx := -1
		for i := range bids {
			if bids[i].ID == bidID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("waste bid %d: %w", bidID, apperrors.ErrNotFound)
		}
		bid := &bids[idx]

		if bid.BidderID != bidderID {
			return fmt.Errorf("%w: bid %d belongs to another bidder", apperrors.ErrForbidden, bidID)
		}
		if !auctionActive(tx.Auction(), tx.BatchStatus(), s.now()) {
			return fmt.Errorf("%w: auction %d", apperrors.ErrAuctionNotActive, bid.AuctionID)
		}

		wasLeader := bid.Status == models.BidActive
		next, err := lifecycle.Bid.Transition(bid.Status, models.BidCancelled)
		if err != nil {
			return err
		}
		if err := tx.SetBidStatus(ctx, bid.ID, next); err != nil {
			return err
		}
		bid.Status = next
		cancelled = *bid

		if wasLeader {
			return promoteLeader(ctx, tx, bids)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cancel bid: %w", err)
	}

	logger.Info("bid cancelled", map[string]any{
		"bid_id":     cancelled.ID,
		"auction_id": cancelled.AuctionID,
		"bidder_id":  cancelled.BidderID,
	})
	return &cancelled, nil
}

// promoteLeader делает active старшую неотменённую ставку
func promoteLeader(ctx context.Context, tx repository.AuctionTx, bids []models.WasteBid) error {
	ranked := RankBids(bids)
	for i := range ranked {
		target := models.BidOutbid
		if i == 0 {
			target = models.BidActive
		}
		if err := setBidStatus(ctx, tx, &ranked[i], target); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) ListBids(ctx context.Context, filter models.BidFilter) ([]models.WasteBid, error) {
	if filter.Status != nil && !lifecycle.Bid.Valid(*filter.Status) {
		return nil, apperrors.Invalid("status", fmt.Sprintf("unknown bid status %q", *filter.Status))
	}
	bids, err := s.repo.ListBids(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bids: %w", err)
	}
	return bids, nil
}
