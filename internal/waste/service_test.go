package waste

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/logger"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/repository"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

func init() {
	logger.SetOutput(io.Discard)
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	svc   *Service
	repo  *repository.MemoryRepo
	clock *testClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clock := &testClock{now: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)}
	repo := repository.NewMemoryRepo()
	return &fixture{
		svc:   NewService(repo, WithClock(clock.Now)),
		repo:  repo,
		clock: clock,
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func (f *fixture) createBatch(t *testing.T) *models.WasteBatch {
	t.Helper()
	batch, err := f.svc.CreateBatch(context.Background(), models.NewBatch{
		Title:           "Scrap copper",
		EstimatedWeight: dec("120.5"),
		WasteType:       "metal",
		CreatedBy:       1,
	})
	require.NoError(t, err)
	return batch
}

// openAuction создает аукцион на час, запускает торги и переводит часы внутрь окна
func (f *fixture) openAuction(t *testing.T, base string, reserve *string) *models.WasteAuction {
	t.Helper()
	ctx := context.Background()
	batch := f.createBatch(t)

	in := models.NewAuction{
		BatchID:   batch.ID,
		Title:     "Copper lot",
		StartTime: f.clock.Now().Add(time.Hour),
		EndTime:   f.clock.Now().Add(2 * time.Hour),
		BasePrice: dec(base),
		CreatedBy: 1,
	}
	if reserve != nil {
		in.ReservePrice = decimal.NewNullDecimal(dec(*reserve))
	}
	auction, err := f.svc.CreateAuction(ctx, in)
	require.NoError(t, err)

	_, err = f.svc.TransitionBatch(ctx, batch.ID, models.BatchPublished)
	require.NoError(t, err)
	_, err = f.svc.TransitionBatch(ctx, batch.ID, models.BatchAuctionInProgress)
	require.NoError(t, err)

	f.clock.Advance(time.Hour + time.Minute)
	return auction
}

func (f *fixture) bid(auctionID, bidderID int64, amount string) (*models.WasteBid, error) {
	return f.svc.PlaceBid(context.Background(), models.PlaceBid{
		AuctionID: auctionID,
		BidderID:  bidderID,
		BidAmount: dec(amount),
	})
}

func (f *fixture) bidStatus(t *testing.T, id int64) models.BidStatus {
	t.Helper()
	b, err := f.repo.GetBid(context.Background(), id)
	require.NoError(t, err)
	return b.Status
}

func (f *fixture) bidStatuses(t *testing.T, auctionID int64) map[int64]models.BidStatus {
	t.Helper()
	bids, err := f.repo.ListBids(context.Background(), models.BidFilter{AuctionID: &auctionID})
	require.NoError(t, err)
	statuses := make(map[int64]models.BidStatus, len(bids))
	for _, b := range bids {
		statuses[b.ID] = b.Status
	}
	return statuses
}

func TestPlaceBid_OutbidsPreviousLeader(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	auction := f.openAuction(t, "100", nil)

	first, err := f.bid(auction.ID, 11, "150")
	require.NoError(t, err)
	require.Equal(t, models.BidActive, first.Status)
	require.Equal(t, auction.ID, first.AuctionID)

	_, err = f.bid(auction.ID, 12, "140")
	require.ErrorIs(t, err, apperrors.ErrBidTooLow)

	second, err := f.bid(auction.ID, 12, "200")
	require.NoError(t, err)
	require.Equal(t, models.BidActive, second.Status)
	require.Equal(t, models.BidOutbid, f.bidStatus(t, first.ID))

	bids, err := f.svc.ListBids(context.Background(), models.BidFilter{AuctionID: &auction.ID})
	require.NoError(t, err)
	require.Len(t, bids, 2)
}

func TestPlaceBid_MustExceedBasePrice(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	auction := f.openAuction(t, "100", nil)

	_, err := f.bid(auction.ID, 11, "100")
	require.ErrorIs(t, err, apperrors.ErrBidTooLow)

	_, err = f.bid(auction.ID, 11, "100.01")
	require.NoError(t, err)
}

func TestPlaceBid_RejectsBadAmounts(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	auction := f.openAuction(t, "100", nil)

	for _, amount := range []string{"0", "-5", "150.123"} {
		_, err := f.bid(auction.ID, 11, amount)
		require.ErrorIs(t, err, apperrors.ErrValidation, amount)
	}

	_, err := f.svc.PlaceBid(context.Background(), models.PlaceBid{AuctionID: auction.ID, BidAmount: dec("150")})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestPlaceBid_AuctionNotActive(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.bid(999, 11, "150")
	require.ErrorIs(t, err, apperrors.ErrAuctionNotActive)

	// торги ещё не начались
	batch := f.createBatch(t)
	pending, err := f.svc.CreateAuction(ctx, models.NewAuction{
		BatchID:   batch.ID,
		Title:     "Later",
		StartTime: f.clock.Now().Add(time.Hour),
		EndTime:   f.clock.Now().Add(2 * time.Hour),
		BasePrice: dec("10"),
		CreatedBy: 1,
	})
	require.NoError(t, err)
	_, err = f.bid(pending.ID, 11, "150")
	require.ErrorIs(t, err, apperrors.ErrAuctionNotActive)

	// окно открыто, но партия не в auction_in_progress
	f.clock.Advance(90 * time.Minute)
	_, err = f.bid(pending.ID, 11, "150")
	require.ErrorIs(t, err, apperrors.ErrAuctionNotActive)

	// время вышло
	auction := f.openAuction(t, "100", nil)
	f.clock.Advance(time.Hour)
	_, err = f.bid(auction.ID, 11, "150")
	require.ErrorIs(t, err, apperrors.ErrAuctionNotActive)
}

func TestTransitionBatch_SettlesWinner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	auction := f.openAuction(t, "100", nil)

	low, err := f.bid(auction.ID, 11, "150")
	require.NoError(t, err)
	high, err := f.bid(auction.ID, 12, "200")
	require.NoError(t, err)

	batch, err := f.svc.TransitionBatch(ctx, auction.BatchID, models.BatchAuctionEnded)
	require.NoError(t, err)
	require.Equal(t, models.BatchAuctionEnded, batch.Status)

	require.Equal(t, models.BidWinning, f.bidStatus(t, high.ID))
	require.Equal(t, models.BidOutbid, f.bidStatus(t, low.ID))

	settled, err := f.repo.GetAuction(ctx, auction.ID)
	require.NoError(t, err)
	require.True(t, settled.Settled())
	require.NotNil(t, settled.WinningBidID)
	require.Equal(t, high.ID, *settled.WinningBidID)

	_, err = f.svc.TransitionBatch(ctx, auction.BatchID, models.BatchAuctionEnded)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	before := f.bidStatuses(t, auction.ID)
	_, err = f.svc.Settle(ctx, auction.ID)
	require.ErrorIs(t, err, apperrors.ErrAlreadySettled)
	require.Equal(t, before, f.bidStatuses(t, auction.ID))

	_, err = f.bid(auction.ID, 13, "500")
	require.ErrorIs(t, err, apperrors.ErrAuctionNotActive)

	allocated, err := f.svc.TransitionBatch(ctx, auction.BatchID, models.BatchAllocated)
	require.NoError(t, err)
	require.Equal(t, models.BatchAllocated, allocated.Status)
}

func TestTransitionBatch_ReserveNotMet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	reserve := "500"
	auction := f.openAuction(t, "100", &reserve)

	b1, err := f.bid(auction.ID, 11, "200")
	require.NoError(t, err)
	b2, err := f.bid(auction.ID, 12, "300")
	require.NoError(t, err)

	_, err = f.svc.TransitionBatch(ctx, auction.BatchID, models.BatchAuctionEnded)
	require.NoError(t, err)

	require.Equal(t, models.BidOutbid, f.bidStatus(t, b1.ID))
	require.Equal(t, models.BidOutbid, f.bidStatus(t, b2.ID))

	settled, err := f.repo.GetAuction(ctx, auction.ID)
	require.NoError(t, err)
	require.True(t, settled.Settled())
	require.Nil(t, settled.WinningBidID)
}

func TestTransitionBatch_NoBids(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	auction := f.openAuction(t, "100", nil)

	_, err := f.svc.TransitionBatch(ctx, auction.BatchID, models.BatchAuctionEnded)
	require.NoError(t, err)

	settled, err := f.repo.GetAuction(ctx, auction.ID)
	require.NoError(t, err)
	require.True(t, settled.Settled())
	require.Nil(t, settled.WinningBidID)
}

func TestTransitionBatch_Rules(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	batch := f.createBatch(t)

	_, err := f.svc.TransitionBatch(ctx, batch.ID, models.BatchAuctionEnded)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = f.svc.TransitionBatch(ctx, batch.ID, models.BatchStatus("archived"))
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.TransitionBatch(ctx, batch.ID, models.BatchPublished)
	require.NoError(t, err)

	// без аукциона торги не начать
	_, err = f.svc.TransitionBatch(ctx, batch.ID, models.BatchAuctionInProgress)
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.TransitionBatch(ctx, batch.ID, models.BatchPublished)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = f.svc.TransitionBatch(ctx, 404, models.BatchPublished)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestTransitionBatch_ConcurrentCloseSettlesOnce(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	auction := f.openAuction(t, "100", nil)
	_, err := f.bid(auction.ID, 11, "150")
	require.NoError(t, err)

	const workers = 10
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.TransitionBatch(ctx, auction.BatchID, models.BatchAuctionEnded)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
			continue
		}
		require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	}
	require.Equal(t, 1, ok)
}

func TestCancelBid_PromotesNextHighest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	auction := f.openAuction(t, "100", nil)

	low, err := f.bid(auction.ID, 11, "150")
	require.NoError(t, err)
	high, err := f.bid(auction.ID, 12, "200")
	require.NoError(t, err)

	_, err = f.svc.CancelBid(ctx, high.ID, 11)
	require.ErrorIs(t, err, apperrors.ErrForbidden)

	cancelled, err := f.svc.CancelBid(ctx, high.ID, 12)
	require.NoError(t, err)
	require.Equal(t, models.BidCancelled, cancelled.Status)
	require.Equal(t, models.BidActive, f.bidStatus(t, low.ID))

	details, err := f.svc.GetAuction(ctx, auction.ID)
	require.NoError(t, err)
	require.NotNil(t, details.CurrentHigh)
	require.True(t, details.CurrentHigh.Equal(dec("150")))
	require.Equal(t, 1, details.BidCount)

	_, err = f.svc.CancelBid(ctx, high.ID, 12)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	// новая ставка сравнивается с оставшимся максимумом
	_, err = f.bid(auction.ID, 12, "160")
	require.NoError(t, err)
	require.Equal(t, models.BidOutbid, f.bidStatus(t, low.ID))

	_, err = f.svc.CancelBid(ctx, 9999, 12)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCancelBid_OutbidBidKeepsLeader(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	auction := f.openAuction(t, "100", nil)

	low, err := f.bid(auction.ID, 11, "150")
	require.NoError(t, err)
	high, err := f.bid(auction.ID, 12, "200")
	require.NoError(t, err)

	_, err = f.svc.CancelBid(ctx, low.ID, 11)
	require.NoError(t, err)
	require.Equal(t, models.BidActive, f.bidStatus(t, high.ID))
}

func TestCancelBid_AfterSettle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	auction := f.openAuction(t, "100", nil)

	b, err := f.bid(auction.ID, 11, "150")
	require.NoError(t, err)
	_, err = f.svc.TransitionBatch(ctx, auction.BatchID, models.BatchAuctionEnded)
	require.NoError(t, err)

	_, err = f.svc.CancelBid(ctx, b.ID, 11)
	require.ErrorIs(t, err, apperrors.ErrAuctionNotActive)
	require.Equal(t, models.BidWinning, f.bidStatus(t, b.ID))
}

func TestPlaceBid_ConcurrentBidders(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	auction := f.openAuction(t, "100", nil)

	const bidders = 40
	var wg sync.WaitGroup
	errs := make(chan error, bidders)
	for i := 1; i <= bidders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := f.svc.PlaceBid(ctx, models.PlaceBid{
				AuctionID: auction.ID,
				BidderID:  int64(i),
				BidAmount: decimal.NewFromInt(int64(100 + i)),
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil && !errors.Is(err, apperrors.ErrBidTooLow) {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	bids, err := f.svc.ListBids(ctx, models.BidFilter{AuctionID: &auction.ID})
	require.NoError(t, err)
	require.NotEmpty(t, bids)

	sort.Slice(bids, func(i, j int) bool { return bids[i].ID < bids[j].ID })
	active := 0
	for i, b := range bids {
		if b.Status == models.BidActive {
			active++
			require.True(t, b.BidAmount.Equal(decimal.NewFromInt(100+bidders)))
		}
		if i > 0 {
			require.True(t, b.BidAmount.GreaterThan(bids[i-1].BidAmount), "accepted amounts must increase")
		}
	}
	require.Equal(t, 1, active)
}

func TestCreateAuction_Validation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	batch := f.createBatch(t)
	now := f.clock.Now()

	valid := models.NewAuction{
		BatchID:   batch.ID,
		Title:     "Lot",
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
		BasePrice: dec("100"),
		CreatedBy: 1,
	}

	tests := []struct {
		name  string
		edit  func(in *models.NewAuction)
		field string
	}{
		{"start in past", func(in *models.NewAuction) { in.StartTime = now.Add(-time.Minute) }, "startTime"},
		{"end before start", func(in *models.NewAuction) { in.EndTime = in.StartTime }, "endTime"},
		{"negative base", func(in *models.NewAuction) { in.BasePrice = dec("-1") }, "basePrice"},
		{"reserve below base", func(in *models.NewAuction) { in.ReservePrice = decimal.NewNullDecimal(dec("50")) }, "reservePrice"},
		{"missing title", func(in *models.NewAuction) { in.Title = "" }, "title"},
		{"unknown batch", func(in *models.NewAuction) { in.BatchID = 999 }, "batchId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.edit(&in)
			_, err := f.svc.CreateAuction(ctx, in)
			var verr *apperrors.ValidationError
			require.ErrorAs(t, err, &verr)
			require.Contains(t, verr.Fields, tt.field)
		})
	}

	_, err := f.svc.CreateAuction(ctx, valid)
	require.NoError(t, err)
	_, err = f.svc.CreateAuction(ctx, valid)
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestCreateAuction_BatchAlreadyTrading(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	auction := f.openAuction(t, "100", nil)
	_, err := f.svc.TransitionBatch(ctx, auction.BatchID, models.BatchAuctionEnded)
	require.NoError(t, err)

	_, err = f.svc.CreateAuction(ctx, models.NewAuction{
		BatchID:   auction.BatchID,
		Title:     "Again",
		StartTime: f.clock.Now().Add(time.Hour),
		EndTime:   f.clock.Now().Add(2 * time.Hour),
		BasePrice: dec("100"),
		CreatedBy: 1,
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestGetAuction_Details(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	auction := f.openAuction(t, "100", nil)

	details, err := f.svc.GetAuction(ctx, auction.ID)
	require.NoError(t, err)
	require.True(t, details.Active)
	require.Nil(t, details.CurrentHigh)
	require.Equal(t, models.BatchAuctionInProgress, details.BatchStatus)

	_, err = f.bid(auction.ID, 11, "120")
	require.NoError(t, err)
	_, err = f.bid(auction.ID, 12, "130.50")
	require.NoError(t, err)

	details, err = f.svc.GetAuction(ctx, auction.ID)
	require.NoError(t, err)
	require.Equal(t, 2, details.BidCount)
	require.True(t, details.CurrentHigh.Equal(dec("130.5")))

	f.clock.Advance(time.Hour)
	details, err = f.svc.GetAuction(ctx, auction.ID)
	require.NoError(t, err)
	require.False(t, details.Active)

	_, err = f.svc.GetAuction(ctx, 404)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSettle_ClosesDueAuction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	auction := f.openAuction(t, "100", nil)

	low, err := f.bid(auction.ID, 11, "150")
	require.NoError(t, err)
	high, err := f.bid(auction.ID, 12, "200")
	require.NoError(t, err)

	// торги ещё идут
	before := f.bidStatuses(t, auction.ID)
	_, err = f.svc.Settle(ctx, auction.ID)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	require.Equal(t, before, f.bidStatuses(t, auction.ID))

	f.clock.Advance(time.Hour)
	winner, err := f.svc.Settle(ctx, auction.ID)
	require.NoError(t, err)
	require.NotNil(t, winner)
	require.Equal(t, high.ID, winner.ID)

	batch, err := f.svc.GetBatch(ctx, auction.BatchID)
	require.NoError(t, err)
	require.Equal(t, models.BatchAuctionEnded, batch.Status)

	settled := f.bidStatuses(t, auction.ID)
	require.Equal(t, models.BidWinning, settled[high.ID])
	require.Equal(t, models.BidOutbid, settled[low.ID])

	_, err = f.svc.Settle(ctx, auction.ID)
	require.ErrorIs(t, err, apperrors.ErrAlreadySettled)
	require.Equal(t, settled, f.bidStatuses(t, auction.ID))

	_, err = f.svc.TransitionBatch(ctx, auction.BatchID, models.BatchAuctionEnded)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)
}

func TestSettle_DraftBatch(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	batch := f.createBatch(t)
	auction, err := f.svc.CreateAuction(ctx, models.NewAuction{
		BatchID:   batch.ID,
		Title:     "Copper lot",
		StartTime: f.clock.Now().Add(time.Hour),
		EndTime:   f.clock.Now().Add(2 * time.Hour),
		BasePrice: dec("10"),
		CreatedBy: 1,
	})
	require.NoError(t, err)

	f.clock.Advance(3 * time.Hour)
	_, err = f.svc.Settle(ctx, auction.ID)
	require.ErrorIs(t, err, apperrors.ErrInvalidTransition)

	_, err = f.svc.Settle(ctx, 404)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCloseDueAuctions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)

	first := f.openAuction(t, "100", nil)
	b, err := f.bid(first.ID, 11, "150")
	require.NoError(t, err)

	// второй аукцион заканчивается на 30 минут позже
	f.clock.Advance(-30 * time.Minute)
	second := f.openAuction(t, "100", nil)

	closed, err := f.svc.CloseDueAuctions(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, closed)

	f.clock.Advance(30 * time.Minute)
	closed, err = f.svc.CloseDueAuctions(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, closed)
	require.Equal(t, models.BidWinning, f.bidStatus(t, b.ID))

	batch, err := f.svc.GetBatch(ctx, second.BatchID)
	require.NoError(t, err)
	require.Equal(t, models.BatchAuctionInProgress, batch.Status)

	f.clock.Advance(time.Hour)
	closed, err = f.svc.CloseDueAuctions(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, closed)

	closed, err = f.svc.CloseDueAuctions(ctx)
	require.NoError(t, err)
	require.Equal(t, 0, closed)
}

func TestBatchStats_AllStatusesPresent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newFixture(t)
	f.createBatch(t)
	f.createBatch(t)
	f.openAuction(t, "10", nil)

	stats, err := f.svc.BatchStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, len(models.BatchStatuses))
	require.Equal(t, 2, stats[models.BatchDraft])
	require.Equal(t, 1, stats[models.BatchAuctionInProgress])
	require.Equal(t, 0, stats[models.BatchAllocated])
}

func TestCreateBatch_Validation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	_, err := f.svc.CreateBatch(context.Background(), models.NewBatch{WasteType: "metal", CreatedBy: 1})
	require.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.CreateBatch(context.Background(), models.NewBatch{
		Title: "x", WasteType: "metal", CreatedBy: 1, EstimatedWeight: dec("-1"),
	})
	require.ErrorIs(t, err, apperrors.ErrValidation)
}
