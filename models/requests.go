package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Запросы на создание и изменение сущностей.
// Теги validate проверяются пакетом internal/validation.

type NewBatch struct {
	Title           string          `json:"title" validate:"required,max=200"`
	Description     string          `json:"description" validate:"max=2000"`
	EstimatedWeight decimal.Decimal `json:"estimatedWeight"`
	Location        string          `json:"location" validate:"max=300"`
	WasteType       string          `json:"wasteType" validate:"required,max=100"`
	Category        string          `json:"category" validate:"max=100"`
	CreatedBy       int64           `json:"createdBy" validate:"required,gt=0"`
}

type BatchStatusChange struct {
	Status BatchStatus `json:"status" validate:"required"`
}

type NewAuction struct {
	BatchID      int64               `json:"batchId" validate:"required,gt=0"`
	Title        string              `json:"title" validate:"required,max=200"`
	Description  string              `json:"description" validate:"max=2000"`
	StartTime    time.Time           `json:"startTime" validate:"required"`
	EndTime      time.Time           `json:"endTime" validate:"required"`
	BasePrice    decimal.Decimal     `json:"basePrice"`
	ReservePrice decimal.NullDecimal `json:"reservePrice"`
	CreatedBy    int64               `json:"createdBy" validate:"required,gt=0"`
}

type PlaceBid struct {
	AuctionID int64           `json:"auctionId" validate:"required,gt=0"`
	BidderID  int64           `json:"bidderId" validate:"required,gt=0"`
	BidAmount decimal.Decimal `json:"bidAmount"`
	Notes     *string         `json:"notes" validate:"omitempty,max=1000"`
}

type NewAppointment struct {
	CustomerName    string    `json:"customerName" validate:"required,max=100"`
	CustomerPhone   *string   `json:"customerPhone" validate:"omitempty,max=30"`
	Address         *string   `json:"address" validate:"omitempty,max=300"`
	AppointmentTime time.Time `json:"appointmentTime" validate:"required"`
	ServiceType     *string   `json:"serviceType" validate:"omitempty,max=100"`
	StaffID         *int64    `json:"staffId" validate:"omitempty,gt=0"`
	VehicleID       *int64    `json:"vehicleId" validate:"omitempty,gt=0"`
	Notes           *string   `json:"notes" validate:"omitempty,max=1000"`
}

// AppointmentUpdate - полная замена полей записи (PUT)
type AppointmentUpdate struct {
	NewAppointment
	Status *AppointmentStatus `json:"status"`
}

type AppointmentStatusChange struct {
	Status AppointmentStatus `json:"status" validate:"required"`
}

type NewStaff struct {
	Name     string  `json:"name" validate:"required,max=100"`
	Phone    *string `json:"phone" validate:"omitempty,max=30"`
	IDCard   string  `json:"idCard" validate:"required,max=30"`
	Position *string `json:"position" validate:"omitempty,max=100"`
}

type NewVehicle struct {
	PlateNumber string              `json:"plateNumber" validate:"required,max=20"`
	Model       *string             `json:"model" validate:"omitempty,max=100"`
	VehicleType *string             `json:"vehicleType" validate:"omitempty,max=50"`
	Capacity    decimal.NullDecimal `json:"capacity"`
}
