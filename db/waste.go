package db

import (
	"context"
	"fmt"
	"time"

	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// Партии

func (s *Storage) CreateBatch(ctx context.Context, b *models.WasteBatch) error {
	query := `
        INSERT INTO waste_batch (title, description, estimated_weight, location, waste_type, category, status, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, version, created_at, updated_at`
	err := s.db.QueryRowContext(ctx, query,
		b.Title, b.Description, b.EstimatedWeight, b.Location, b.WasteType, b.Category, b.Status, b.CreatedBy).
		Scan(&b.ID, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	return wrap("create waste batch", err)
}

func (s *Storage) GetBatch(ctx context.Context, id int64) (*models.WasteBatch, error) {
	b := &models.WasteBatch{}
	err := s.db.GetContext(ctx, b, `SELECT * FROM waste_batch WHERE id = $1`, id)
	if err != nil {
		return nil, wrap(fmt.Sprintf("waste batch %d", id), err)
	}
	return b, nil
}

func (s *Storage) ListBatches(ctx context.Context, filter models.BatchFilter) ([]models.WasteBatch, error) {
	var w where
	if filter.Status != nil {
		w.add("status = $%d", *filter.Status)
	}
	if filter.CreatedBy != nil {
		w.add("created_by = $%d", *filter.CreatedBy)
	}
	query := "SELECT * FROM waste_batch" + w.String() + " ORDER BY id DESC" + pageClause(filter.Page)

	batches := []models.WasteBatch{}
	if err := s.db.SelectContext(ctx, &batches, query, w.args...); err != nil {
		return nil, wrap("list waste batches", err)
	}
	return batches, nil
}

func (s *Storage) CountBatchesByStatus(ctx context.Context) (map[models.BatchStatus]int, error) {
	var rows []struct {
		Status models.BatchStatus `db:"status"`
		N      int                `db:"n"`
	}
	err := s.db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS n FROM waste_batch GROUP BY status`)
	if err != nil {
		return nil, wrap("count waste batches", err)
	}
	counts := make(map[models.BatchStatus]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}

func (s *Storage) UpdateBatchStatus(ctx context.Context, id int64, from, to models.BatchStatus) (bool, error) {
	query := `
        UPDATE waste_batch
        SET status = $1, version = version + 1, updated_at = NOW()
        WHERE id = $2 AND status = $3`
	res, err := s.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return false, wrap(fmt.Sprintf("update waste batch %d", id), err)
	}
	n, err := rowsAffected("update waste batch", res)
	if err != nil {
		return false, err
	}
	if n == 0 {
		// партии нет или статус уже другой
		if _, err := s.GetBatch(ctx, id); err != nil {
			return false, err
		}
		return false, nil
	}
	return true, nil
}

// Аукционы

func (s *Storage) CreateAuction(ctx context.Context, a *models.WasteAuction) error {
	query := `
        INSERT INTO waste_auction (batch_id, title, description, start_time, end_time, base_price, reserve_price, created_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, query,
		a.BatchID, a.Title, a.Description, a.StartTime, a.EndTime, a.BasePrice, a.ReservePrice, a.CreatedBy).
		Scan(&a.ID, &a.CreatedAt)
	return wrap("create waste auction", err)
}

func (s *Storage) GetAuction(ctx context.Context, id int64) (*models.WasteAuction, error) {
	a := &models.WasteAuction{}
	err := s.db.GetContext(ctx, a, `SELECT * FROM waste_auction WHERE id = $1`, id)
	if err != nil {
		return nil, wrap(fmt.Sprintf("waste auction %d", id), err)
	}
	return a, nil
}

func (s *Storage) GetAuctionByBatch(ctx context.Context, batchID int64) (*models.WasteAuction, error) {
	a := &models.WasteAuction{}
	err := s.db.GetContext(ctx, a, `SELECT * FROM waste_auction WHERE batch_id = $1`, batchID)
	if err != nil {
		return nil, wrap(fmt.Sprintf("auction for waste batch %d", batchID), err)
	}
	return a, nil
}

func (s *Storage) ListAuctions(ctx context.Context, filter models.AuctionFilter) ([]models.WasteAuction, error) {
	var w where
	if filter.BatchID != nil {
		w.add("batch_id = $%d", *filter.BatchID)
	}
	if filter.CreatedBy != nil {
		w.add("created_by = $%d", *filter.CreatedBy)
	}
	query := "SELECT * FROM waste_auction" + w.String() + " ORDER BY id DESC" + pageClause(filter.Page)

	auctions := []models.WasteAuction{}
	if err := s.db.SelectContext(ctx, &auctions, query, w.args...); err != nil {
		return nil, wrap("list waste auctions", err)
	}
	return auctions, nil
}

func (s *Storage) ListDueAuctions(ctx context.Context, now time.Time) ([]models.WasteAuction, error) {
	query := `
        SELECT a.*
        FROM waste_auction a
        JOIN waste_batch b ON b.id = a.batch_id
        WHERE a.settled_at IS NULL
          AND a.end_time <= $1
          AND b.status = 'auction_in_progress'
        ORDER BY a.end_time, a.id`
	auctions := []models.WasteAuction{}
	if err := s.db.SelectContext(ctx, &auctions, query, now); err != nil {
		return nil, wrap("list due auctions", err)
	}
	return auctions, nil
}

// Ставки

func (s *Storage) GetBid(ctx context.Context, id int64) (*models.WasteBid, error) {
	b := &models.WasteBid{}
	err := s.db.GetContext(ctx, b, `SELECT * FROM waste_bid WHERE id = $1`, id)
	if err != nil {
		return nil, wrap(fmt.Sprintf("waste bid %d", id), err)
	}
	return b, nil
}

func (s *Storage) ListBids(ctx context.Context, filter models.BidFilter) ([]models.WasteBid, error) {
	var w where
	if filter.AuctionID != nil {
		w.add("auction_id = $%d", *filter.AuctionID)
	}
	if filter.BidderID != nil {
		w.add("bidder_id = $%d", *filter.BidderID)
	}
	if filter.Status != nil {
		w.add("status = $%d", *filter.Status)
	}
	query := "SELECT * FROM waste_bid" + w.String() + " ORDER BY bid_time DESC, id DESC" + pageClause(filter.Page)

	bids := []models.WasteBid{}
	if err := s.db.SelectContext(ctx, &bids, query, w.args...); err != nil {
		return nil, wrap("list waste bids", err)
	}
	return bids, nil
}
