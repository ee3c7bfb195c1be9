package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/repository"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// WithAuctionLock держит строки аукциона и его партии под FOR UPDATE
// до конца транзакции. Ошибка fn откатывает транзакцию.
func (s *Storage) WithAuctionLock(ctx context.Context, auctionID int64, fn func(tx repository.AuctionTx) error) (err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrap("begin auction tx", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var row struct {
		models.WasteAuction
		BatchStatus models.BatchStatus `db:"batch_status"`
	}
	query := `
        SELECT a.*, b.status AS batch_status
        FROM waste_auction a
        JOIN waste_batch b ON b.id = a.batch_id
        WHERE a.id = $1
        FOR UPDATE OF a, b`
	if err = tx.GetContext(ctx, &row, query, auctionID); err != nil {
		return wrap(fmt.Sprintf("lock waste auction %d", auctionID), err)
	}

	atx := &auctionTx{tx: tx, auction: row.WasteAuction, batchStatus: row.BatchStatus}
	if err = fn(atx); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return wrap(fmt.Sprintf("commit waste auction %d", auctionID), err)
	}
	return nil
}

type auctionTx struct {
	tx          *sqlx.Tx
	auction     models.WasteAuction
	batchStatus models.BatchStatus
}

func (t *auctionTx) Auction() models.WasteAuction {
	return t.auction
}

func (t *auctionTx) BatchStatus() models.BatchStatus {
	return t.batchStatus
}

func (t *auctionTx) Bids(ctx context.Context) ([]models.WasteBid, error) {
	bids := []models.WasteBid{}
	query := `SELECT * FROM waste_bid WHERE auction_id = $1 ORDER BY bid_time, id`
	if err := t.tx.SelectContext(ctx, &bids, query, t.auction.ID); err != nil {
		return nil, wrap("auction bids", err)
	}
	return bids, nil
}

func (t *auctionTx) InsertBid(ctx context.Context, b *models.WasteBid) error {
	query := `
        INSERT INTO waste_bid (auction_id, bidder_id, bid_amount, bid_time, notes, status)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`
	err := t.tx.QueryRowContext(ctx, query, t.auction.ID, b.BidderID, b.BidAmount, b.BidTime, b.Notes, b.Status).
		Scan(&b.ID)
	if err != nil {
		return wrap("insert waste bid", err)
	}
	b.AuctionID = t.auction.ID
	return nil
}

func (t *auctionTx) SetBidStatus(ctx context.Context, bidID int64, status models.BidStatus) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE waste_bid SET status = $1 WHERE id = $2 AND auction_id = $3`,
		status, bidID, t.auction.ID)
	if err != nil {
		return wrap(fmt.Sprintf("update waste bid %d", bidID), err)
	}
	n, err := rowsAffected("update waste bid", res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("waste bid %d: %w", bidID, apperrors.ErrNotFound)
	}
	return nil
}

func (t *auctionTx) SetBatchStatus(ctx context.Context, from, to models.BatchStatus) (bool, error) {
	query := `
        UPDATE waste_batch
        SET status = $1, version = version + 1, updated_at = NOW()
        WHERE id = $2 AND status = $3`
	res, err := t.tx.ExecContext(ctx, query, to, t.auction.BatchID, from)
	if err != nil {
		return false, wrap(fmt.Sprintf("update waste batch %d", t.auction.BatchID), err)
	}
	n, err := rowsAffected("update waste batch", res)
	if err != nil {
		return false, err
	}
	if n == 0 {
		return false, nil
	}
	t.batchStatus = to
	return true, nil
}

func (t *auctionTx) MarkSettled(ctx context.Context, winningBidID *int64, settledAt time.Time) error {
	res, err := t.tx.ExecContext(ctx,
		`UPDATE waste_auction SET settled_at = $1, winning_bid_id = $2 WHERE id = $3 AND settled_at IS NULL`,
		settledAt, winningBidID, t.auction.ID)
	if err != nil {
		return wrap(fmt.Sprintf("settle waste auction %d", t.auction.ID), err)
	}
	n, err := rowsAffected("settle waste auction", res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("waste auction %d: %w", t.auction.ID, apperrors.ErrAlreadySettled)
	}
	t.auction.SettledAt = &settledAt
	t.auction.WinningBidID = winningBidID
	return nil
}
