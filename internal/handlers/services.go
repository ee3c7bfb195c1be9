package handlers

import (
	"context"

	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

//go:generate mockgen -destination=mocks/mock_services.go -package=mocks . WasteService

// WasteService - партии, аукционы и ставки
type WasteService interface {
	CreateBatch(ctx context.Context, in models.NewBatch) (*models.WasteBatch, error)
	GetBatch(ctx context.Context, id int64) (*models.WasteBatch, error)
	ListBatches(ctx context.Context, filter models.BatchFilter) ([]models.WasteBatch, error)
	BatchStats(ctx context.Context) (map[models.BatchStatus]int, error)
	TransitionBatch(ctx context.Context, id int64, requested models.BatchStatus) (*models.WasteBatch, error)

	CreateAuction(ctx context.Context, in models.NewAuction) (*models.WasteAuction, error)
	GetAuction(ctx context.Context, id int64) (*models.AuctionDetails, error)
	ListAuctions(ctx context.Context, filter models.AuctionFilter) ([]models.WasteAuction, error)

	PlaceBid(ctx context.Context, in models.PlaceBid) (*models.WasteBid, error)
	CancelBid(ctx context.Context, bidID, bidderID int64) (*models.WasteBid, error)
	ListBids(ctx context.Context, filter models.BidFilter) ([]models.WasteBid, error)
}

// AppointmentService - записи, сотрудники и транспорт
type AppointmentService interface {
	Create(ctx context.Context, in models.NewAppointment) (*models.Appointment, error)
	Get(ctx context.Context, id int64) (*models.Appointment, error)
	List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error)
	Stats(ctx context.Context) (map[models.AppointmentStatus]int, error)
	Update(ctx context.Context, id int64, in models.AppointmentUpdate) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status models.AppointmentStatus) (*models.Appointment, error)
	Delete(ctx context.Context, id int64) error

	CreateStaff(ctx context.Context, in models.NewStaff) (*models.Staff, error)
	GetStaff(ctx context.Context, id int64) (*models.Staff, error)
	ListStaff(ctx context.Context, page models.Page) ([]models.Staff, error)
	DeleteStaff(ctx context.Context, id int64) error

	CreateVehicle(ctx context.Context, in models.NewVehicle) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, id int64) (*models.Vehicle, error)
	ListVehicles(ctx context.Context, page models.Page) ([]models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id int64) error
}
