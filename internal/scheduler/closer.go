package scheduler

import (
	"context"
	"time"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/logger"
)

// AuctionSweeper закрывает аукционы с истёкшим временем
type AuctionSweeper interface {
	CloseDueAuctions(ctx context.Context) (int, error)
}

// AuctionCloser вызывает CloseDueAuctions раз в Interval
type AuctionCloser struct {
	Sweeper  AuctionSweeper
	Interval time.Duration
	// Timeout ограничивает один проход; 0 - без ограничения
	Timeout time.Duration
}

func NewAuctionCloser(sweeper AuctionSweeper, interval, timeout time.Duration) *AuctionCloser {
	return &AuctionCloser{Sweeper: sweeper, Interval: interval, Timeout: timeout}
}

// Run блокируется до отмены ctx
func (c *AuctionCloser) Run(ctx context.Context) {
	if c.Interval <= 0 {
		return
	}
	logger.Info("auction auto-close started", map[string]any{"interval": c.Interval.String()})

	ticker := time.NewTicker(c.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("auction auto-close stopped", nil)
			return
		case <-ticker.C:
			c.sweep(ctx)
		}
	}
}

func (c *AuctionCloser) sweep(ctx context.Context) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	closed, err := c.Sweeper.CloseDueAuctions(ctx)
	if err != nil {
		logger.Error("auction auto-close sweep failed", map[string]any{
			"closed": closed,
			"error":  err.Error(),
		})
		return
	}
	if closed > 0 {
		logger.Info("auctions closed", map[string]any{"closed": closed})
	}
}
