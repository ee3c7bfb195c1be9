package repository

import (
	"context"
	"time"

	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// Ошибки реализаций - из internal/apperrors:
// ErrNotFound, ErrDuplicate, ErrValidation (битая ссылка), ErrStoreUnavailable.

// WasteRepository хранит партии, аукционы и ставки
type WasteRepository interface {
	CreateBatch(ctx context.Context, batch *models.WasteBatch) error
	GetBatch(ctx context.Context, id int64) (*models.WasteBatch, error)
	ListBatches(ctx context.Context, filter models.BatchFilter) ([]models.WasteBatch, error)
	CountBatchesByStatus(ctx context.Context) (map[models.BatchStatus]int, error)
	// UpdateBatchStatus меняет статус только если текущий равен from.
	// false - статус уже изменил кто-то другой.
	UpdateBatchStatus(ctx context.Context, id int64, from, to models.BatchStatus) (bool, error)

	CreateAuction(ctx context.Context, auction *models.WasteAuction) error
	GetAuction(ctx context.Context, id int64) (*models.WasteAuction, error)
	GetAuctionByBatch(ctx context.Context, batchID int64) (*models.WasteAuction, error)
	ListAuctions(ctx context.Context, filter models.AuctionFilter) ([]models.WasteAuction, error)
	// ListDueAuctions - аукционы в auction_in_progress, у которых end_time <= now
	ListDueAuctions(ctx context.Context, now time.Time) ([]models.WasteAuction, error)

	GetBid(ctx context.Context, id int64) (*models.WasteBid, error)
	ListBids(ctx context.Context, filter models.BidFilter) ([]models.WasteBid, error)

	// WithAuctionLock выполняет fn атомарно и эксклюзивно для одного аукциона.
	// Ошибка fn откатывает все изменения.
	WithAuctionLock(ctx context.Context, auctionID int64, fn func(tx AuctionTx) error) error
}

// AuctionTx - операции внутри блокировки аукциона
type AuctionTx interface {
	Auction() models.WasteAuction
	BatchStatus() models.BatchStatus
	Bids(ctx context.Context) ([]models.WasteBid, error)
	InsertBid(ctx context.Context, bid *models.WasteBid) error
	SetBidStatus(ctx context.Context, bidID int64, status models.BidStatus) error
	SetBatchStatus(ctx context.Context, from, to models.BatchStatus) (bool, error)
	MarkSettled(ctx context.Context, winningBidID *int64, settledAt time.Time) error
}

// AppointmentRepository хранит записи, сотрудников и транспорт
type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, a *models.Appointment) error
	GetAppointment(ctx context.Context, id int64) (*models.Appointment, error)
	ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	CountAppointmentsByStatus(ctx context.Context) (map[models.AppointmentStatus]int, error)
	// UpdateAppointment пишет все поля, если version в базе равна a.Version,
	// и увеличивает версию. false - запись изменилась с момента чтения.
	UpdateAppointment(ctx context.Context, a *models.Appointment) (bool, error)
	DeleteAppointment(ctx context.Context, id int64) error

	CreateStaff(ctx context.Context, s *models.Staff) error
	GetStaff(ctx context.Context, id int64) (*models.Staff, error)
	ListStaff(ctx context.Context, page models.Page) ([]models.Staff, error)
	// DeleteStaff - ErrReferencedEntityInUse, пока на сотрудника ссылается открытая запись
	DeleteStaff(ctx context.Context, id int64) error

	CreateVehicle(ctx context.Context, v *models.Vehicle) error
	GetVehicle(ctx context.Context, id int64) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, page models.Page) ([]models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error
}
