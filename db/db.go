package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/repository"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

var (
	_ repository.WasteRepository       = (*Storage)(nil)
	_ repository.AppointmentRepository = (*Storage)(nil)
)

// Storage - хранилище в PostgreSQL
type Storage struct {
	db *sqlx.DB
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{db: db}
}

// Connect открывает пул соединений и проверяет доступность базы
func Connect(ctx context.Context, conn string, maxOpenConns int) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", conn)
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
		db.SetMaxIdleConns(maxOpenConns / 2)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// wrap переводит ошибки драйвера в ошибки apperrors
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, apperrors.ErrNotFound)
	}
	if unavailable(err) {
		return fmt.Errorf("%s: %w: %v", op, apperrors.ErrStoreUnavailable, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w: %s", op, apperrors.ErrDuplicate, pqErr.Constraint)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w", op, apperrors.Invalid(referenceField(pqErr.Constraint), "references a missing row"))
		case "23514", "22P02": // check_violation, invalid_text_representation
			return fmt.Errorf("%s: %w", op, apperrors.Invalid(pqErr.Column, pqErr.Message))
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

func unavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// 08 - connection exception, 53 - insufficient resources, 57 - operator intervention
		switch pqErr.Code.Class() {
		case "08", "53", "57":
			return true
		}
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

func referenceField(constraint string) string {
	switch {
	case strings.Contains(constraint, "staff_id"):
		return "staffId"
	case strings.Contains(constraint, "vehicle_id"):
		return "vehicleId"
	case strings.Contains(constraint, "batch_id"):
		return "batchId"
	case strings.Contains(constraint, "auction_id"):
		return "auctionId"
	}
	return "reference"
}

// where собирает условия с позиционными параметрами $n
type where struct {
	conds []string
	args  []any
}

// add: cond содержит один %d под номер параметра
func (w *where) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, fmt.Sprintf(cond, len(w.args)))
}

func (w *where) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

func pageClause(p models.Page) string {
	var sb strings.Builder
	if p.Limit > 0 {
		fmt.Fprintf(&sb, " LIMIT %d", p.Limit)
	}
	if p.Offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", p.Offset)
	}
	return sb.String()
}

func rowsAffected(op string, res sql.Result) (int64, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return 0, wrap(op, err)
	}
	return n, nil
}
