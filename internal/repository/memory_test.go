package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// Helper to seed a batch with an auction
func seedAuction(t *testing.T, repo *MemoryRepo, status models.BatchStatus) (*models.WasteBatch, *models.WasteAuction) {
	t.Helper()
	ctx := context.Background()

	batch := &models.WasteBatch{Title: "Archive paper", WasteType: "paper", Status: status, CreatedBy: 1}
	require.NoError(t, repo.CreateBatch(ctx, batch))

	now := time.Now().UTC()
	auction := &models.WasteAuction{
		BatchID:   batch.ID,
		Title:     "Archive paper auction",
		StartTime: now.Add(-time.Hour),
		EndTime:   now.Add(time.Hour),
		BasePrice: decimal.NewFromInt(100),
		CreatedBy: 1,
	}
	require.NoError(t, repo.CreateAuction(ctx, auction))
	return batch, auction
}

func TestMemoryRepo_BatchStatusCompareAndSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMemoryRepo()

	batch := &models.WasteBatch{Title: "t", WasteType: "paper", Status: models.BatchDraft, CreatedBy: 1}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	require.Equal(t, 1, batch.Version)

	ok, err := repo.UpdateBatchStatus(ctx, batch.ID, models.BatchDraft, models.BatchPublished)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.UpdateBatchStatus(ctx, batch.ID, models.BatchDraft, models.BatchPublished)
	require.NoError(t, err)
	require.False(t, ok)

	got, err := repo.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.Equal(t, models.BatchPublished, got.Status)
	require.Equal(t, 2, got.Version)

	_, err = repo.UpdateBatchStatus(ctx, 999, models.BatchDraft, models.BatchPublished)
	require.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestMemoryRepo_ListBatchesFilterAndPage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMemoryRepo()

	for i := 0; i < 5; i++ {
		status := models.BatchDraft
		if i%2 == 0 {
			status = models.BatchPublished
		}
		require.NoError(t, repo.CreateBatch(ctx, &models.WasteBatch{
			Title: fmt.Sprintf("batch-%d", i), WasteType: "paper", Status: status, CreatedBy: int64(i%2 + 1),
		}))
	}

	published := models.BatchPublished
	got, err := repo.ListBatches(ctx, models.BatchFilter{Status: &published})
	require.NoError(t, err)
	require.Len(t, got, 3)

	creator := int64(2)
	got, err = repo.ListBatches(ctx, models.BatchFilter{CreatedBy: &creator})
	require.NoError(t, err)
	require.Len(t, got, 2)

	got, err = repo.ListBatches(ctx, models.BatchFilter{Page: models.Page{Limit: 2, Offset: 1}})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "batch-3", got[0].Title)

	got, err = repo.ListBatches(ctx, models.BatchFilter{Page: models.Page{Limit: 2, Offset: 10}})
	require.NoError(t, err)
	require.Empty(t, got)

	counts, err := repo.CountBatchesByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, counts[models.BatchPublished])
	require.Equal(t, 2, counts[models.BatchDraft])
}

func TestMemoryRepo_CreateAuction(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMemoryRepo()

	batch, auction := seedAuction(t, repo, models.BatchPublished)

	dup := &models.WasteAuction{BatchID: batch.ID, Title: "again", BasePrice: decimal.NewFromInt(1)}
	err := repo.CreateAuction(ctx, dup)
	require.True(t, errors.Is(err, apperrors.ErrDuplicate))

	err = repo.CreateAuction(ctx, &models.WasteAuction{BatchID: 404, Title: "orphan"})
	require.True(t, errors.Is(err, apperrors.ErrValidation))

	got, err := repo.GetAuctionByBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.Equal(t, auction.ID, got.ID)

	_, err = repo.GetAuctionByBatch(ctx, 404)
	require.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestMemoryRepo_WithAuctionLock_CommitsAndRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMemoryRepo()
	batch, auction := seedAuction(t, repo, models.BatchAuctionInProgress)

	// rollback: nothing from a failed unit is visible
	boom := errors.New("boom")
	err := repo.WithAuctionLock(ctx, auction.ID, func(tx AuctionTx) error {
		bid := &models.WasteBid{BidderID: 7, BidAmount: decimal.NewFromInt(150), Status: models.BidActive, BidTime: time.Now()}
		require.NoError(t, tx.InsertBid(ctx, bid))
		ok, err := tx.SetBatchStatus(ctx, models.BatchAuctionInProgress, models.BatchAuctionEnded)
		require.NoError(t, err)
		require.True(t, ok)
		return boom
	})
	require.ErrorIs(t, err, boom)

	bids, err := repo.ListBids(ctx, models.BidFilter{AuctionID: &auction.ID})
	require.NoError(t, err)
	require.Empty(t, bids)
	got, err := repo.GetBatch(ctx, batch.ID)
	require.NoError(t, err)
	require.Equal(t, models.BatchAuctionInProgress, got.Status)

	// commit
	var inserted models.WasteBid
	err = repo.WithAuctionLock(ctx, auction.ID, func(tx AuctionTx) error {
		require.Equal(t, models.BatchAuctionInProgress, tx.BatchStatus())
		inserted = models.WasteBid{BidderID: 7, BidAmount: decimal.NewFromInt(150), Status: models.BidActive, BidTime: time.Now()}
		if err := tx.InsertBid(ctx, &inserted); err != nil {
			return err
		}
		if err := tx.SetBidStatus(ctx, inserted.ID, models.BidWinning); err != nil {
			return err
		}
		return tx.MarkSettled(ctx, &inserted.ID, time.Now())
	})
	require.NoError(t, err)

	stored, err := repo.GetBid(ctx, inserted.ID)
	require.NoError(t, err)
	require.Equal(t, models.BidWinning, stored.Status)
	require.Equal(t, auction.ID, stored.AuctionID)

	settled, err := repo.GetAuction(ctx, auction.ID)
	require.NoError(t, err)
	require.True(t, settled.Settled())
	require.Equal(t, inserted.ID, *settled.WinningBidID)

	err = repo.WithAuctionLock(ctx, 999, func(tx AuctionTx) error { return nil })
	require.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestMemoryRepo_WithAuctionLock_Serializes(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMemoryRepo()
	_, auction := seedAuction(t, repo, models.BatchAuctionInProgress)

	// Каждый участник читает число ставок и вставляет ставку выше;
	// без эксклюзивности суммы бы совпадали
	const workers = 50
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(bidder int64) {
			defer wg.Done()
			err := repo.WithAuctionLock(ctx, auction.ID, func(tx AuctionTx) error {
				bids, err := tx.Bids(ctx)
				if err != nil {
					return err
				}
				return tx.InsertBid(ctx, &models.WasteBid{
					BidderID:  bidder,
					BidAmount: decimal.NewFromInt(int64(101 + len(bids))),
					Status:    models.BidActive,
					BidTime:   time.Now(),
				})
			})
			require.NoError(t, err)
		}(int64(i + 1))
	}
	wg.Wait()

	bids, err := repo.ListBids(ctx, models.BidFilter{AuctionID: &auction.ID})
	require.NoError(t, err)
	require.Len(t, bids, workers)

	seen := make(map[string]bool)
	for _, b := range bids {
		require.False(t, seen[b.BidAmount.String()], "duplicate amount %s", b.BidAmount)
		seen[b.BidAmount.String()] = true
	}
}

func TestMemoryRepo_WithAuctionLock_CancelledContext(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()
	_, auction := seedAuction(t, repo, models.BatchAuctionInProgress)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := repo.WithAuctionLock(ctx, auction.ID, func(tx AuctionTx) error {
		called = true
		return nil
	})
	require.True(t, errors.Is(err, apperrors.ErrStoreUnavailable))
	require.False(t, called)
}

func TestMemoryRepo_WithAuctionLock_WaitHonoursDeadline(t *testing.T) {
	t.Parallel()
	repo := NewMemoryRepo()
	_, auction := seedAuction(t, repo, models.BatchAuctionInProgress)

	held := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- repo.WithAuctionLock(context.Background(), auction.ID, func(tx AuctionTx) error {
			close(held)
			<-release
			return nil
		})
	}()
	<-held

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	called := false
	err := repo.WithAuctionLock(ctx, auction.ID, func(tx AuctionTx) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
	require.False(t, called)

	close(release)
	require.NoError(t, <-done)

	// после освобождения блокировка снова доступна
	require.NoError(t, repo.WithAuctionLock(context.Background(), auction.ID, func(tx AuctionTx) error { return nil }))
}

func TestMemoryRepo_ListDueAuctions(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMemoryRepo()

	_, running := seedAuction(t, repo, models.BatchAuctionInProgress)
	seedAuction(t, repo, models.BatchPublished)

	due, err := repo.ListDueAuctions(ctx, time.Now().Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, due, 1)
	require.Equal(t, running.ID, due[0].ID)

	due, err = repo.ListDueAuctions(ctx, time.Now())
	require.NoError(t, err)
	require.Empty(t, due)
}

func TestMemoryRepo_UpdateAppointmentVersion(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMemoryRepo()

	appt := &models.Appointment{CustomerName: "Acme", AppointmentTime: time.Now(), Status: models.AppointmentPending}
	require.NoError(t, repo.CreateAppointment(ctx, appt))

	first := *appt
	second := *appt

	first.Status = models.AppointmentConfirmed
	ok, err := repo.UpdateAppointment(ctx, &first)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, 2, first.Version)

	second.Status = models.AppointmentCancelled
	ok, err = repo.UpdateAppointment(ctx, &second)
	require.NoError(t, err)
	require.False(t, ok)

	got, err := repo.GetAppointment(ctx, appt.ID)
	require.NoError(t, err)
	require.Equal(t, models.AppointmentConfirmed, got.Status)

	missingStaff := int64(42)
	first.StaffID = &missingStaff
	_, err = repo.UpdateAppointment(ctx, &first)
	require.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestMemoryRepo_DeleteReferencedStaffAndVehicle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMemoryRepo()

	staff := &models.Staff{Name: "Ivan", IDCard: "ID-1"}
	require.NoError(t, repo.CreateStaff(ctx, staff))
	require.True(t, errors.Is(repo.CreateStaff(ctx, &models.Staff{Name: "Dup", IDCard: "ID-1"}), apperrors.ErrDuplicate))

	vehicle := &models.Vehicle{PlateNumber: "A123BC"}
	require.NoError(t, repo.CreateVehicle(ctx, vehicle))
	require.True(t, errors.Is(repo.CreateVehicle(ctx, &models.Vehicle{PlateNumber: "A123BC"}), apperrors.ErrDuplicate))

	appt := &models.Appointment{
		CustomerName:    "Acme",
		AppointmentTime: time.Now(),
		StaffID:         &staff.ID,
		VehicleID:       &vehicle.ID,
		Status:          models.AppointmentConfirmed,
	}
	require.NoError(t, repo.CreateAppointment(ctx, appt))

	require.True(t, errors.Is(repo.DeleteStaff(ctx, staff.ID), apperrors.ErrReferencedEntityInUse))
	require.True(t, errors.Is(repo.DeleteVehicle(ctx, vehicle.ID), apperrors.ErrReferencedEntityInUse))

	appt.Status = models.AppointmentCompleted
	ok, err := repo.UpdateAppointment(ctx, appt)
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, repo.DeleteStaff(ctx, staff.ID))
	require.NoError(t, repo.DeleteVehicle(ctx, vehicle.ID))

	got, err := repo.GetAppointment(ctx, appt.ID)
	require.NoError(t, err)
	require.Nil(t, got.StaffID)
	require.Nil(t, got.VehicleID)
	require.Equal(t, models.AppointmentCompleted, got.Status)

	require.True(t, errors.Is(repo.DeleteStaff(ctx, staff.ID), apperrors.ErrNotFound))
}

func TestMemoryRepo_ListAppointmentsFilters(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := NewMemoryRepo()

	staff := &models.Staff{Name: "Olga", IDCard: "ID-2"}
	require.NoError(t, repo.CreateStaff(ctx, staff))

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < 4; i++ {
		a := &models.Appointment{
			CustomerName:    fmt.Sprintf("customer-%d", i),
			AppointmentTime: base.Add(time.Duration(i) * 24 * time.Hour),
			Status:          models.AppointmentPending,
		}
		if i%2 == 1 {
			a.StaffID = &staff.ID
		}
		require.NoError(t, repo.CreateAppointment(ctx, a))
	}

	from := base.Add(24 * time.Hour)
	to := base.Add(3 * 24 * time.Hour)
	got, err := repo.ListAppointments(ctx, models.AppointmentFilter{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "customer-1", got[0].CustomerName)

	got, err = repo.ListAppointments(ctx, models.AppointmentFilter{StaffID: &staff.ID})
	require.NoError(t, err)
	require.Len(t, got, 2)

	counts, err := repo.CountAppointmentsByStatus(ctx)
	require.NoError(t, err)
	require.Equal(t, 4, counts[models.AppointmentPending])
}
