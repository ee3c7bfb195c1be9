package waste

import (
	"context"
	"time"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/lifecycle"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/repository"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// Service - партии отходов, аукционы и ставки.
// Все изменения ставок аукциона идут через repo.WithAuctionLock.
type Service struct {
	repo repository.WasteRepository
	now  func() time.Time
}

type Option func(*Service)

// WithClock подменяет часы (для тестов)
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(repo repository.WasteRepository, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// auctionActive: время в окне торгов, партия в auction_in_progress, итоги не подведены
func auctionActive(a models.WasteAuction, batchStatus models.BatchStatus, now time.Time) bool {
	return !a.Settled() && batchStatus == models.BatchAuctionInProgress && a.OpenAt(now)
}

// setBidStatus пишет статус ставки через машину состояний; тот же статус пропускается
func setBidStatus(ctx context.Context, tx repository.AuctionTx, bid *models.WasteBid, status models.BidStatus) error {
	if bid.Status == status {
		return nil
	}
	next, err := lifecycle.Bid.Transition(bid.Status, status)
	if err != nil {
		return err
	}
	if err := tx.SetBidStatus(ctx, bid.ID, next); err != nil {
		return err
	}
	bid.Status = next
	return nil
}
