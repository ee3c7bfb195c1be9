package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Партия отходов, выставляемая на аукцион
type WasteBatch struct {
	ID              int64           `db:"id" json:"id"`
	Title           string          `db:"title" json:"title"`
	Description     string          `db:"description" json:"description"`
	EstimatedWeight decimal.Decimal `db:"estimated_weight" json:"estimatedWeight"`
	Location        string          `db:"location" json:"location"`
	WasteType       string          `db:"waste_type" json:"wasteType"`
	Category        string          `db:"category" json:"category"`
	Status          BatchStatus     `db:"status" json:"status"`
	CreatedBy       int64           `db:"created_by" json:"createdBy"`
	Version         int             `db:"version" json:"version"`
	CreatedAt       time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time       `db:"updated_at" json:"-"`
}

// Аукцион по партии; у партии не больше одного аукциона
type WasteAuction struct {
	ID           int64               `db:"id" json:"id"`
	BatchID      int64               `db:"batch_id" json:"batchId"`
	Title        string              `db:"title" json:"title"`
	Description  string              `db:"description" json:"description"`
	StartTime    time.Time           `db:"start_time" json:"startTime"`
	EndTime      time.Time           `db:"end_time" json:"endTime"`
	BasePrice    decimal.Decimal     `db:"base_price" json:"basePrice"`
	ReservePrice decimal.NullDecimal `db:"reserve_price" json:"reservePrice"`
	CreatedBy    int64               `db:"created_by" json:"createdBy"`
	SettledAt    *time.Time          `db:"settled_at" json:"settledAt,omitempty"`
	WinningBidID *int64              `db:"winning_bid_id" json:"winningBidId,omitempty"`
	CreatedAt    time.Time           `db:"created_at" json:"createdAt"`
}

// Settled - победитель уже определён
func (a WasteAuction) Settled() bool {
	return a.SettledAt != nil
}

// OpenAt проверяет, что t попадает в [StartTime, EndTime)
func (a WasteAuction) OpenAt(t time.Time) bool {
	return !t.Before(a.StartTime) && t.Before(a.EndTime)
}

// Аукцион вместе с текущим состоянием торгов
type AuctionDetails struct {
	WasteAuction
	BatchStatus BatchStatus      `json:"batchStatus"`
	Active      bool             `json:"active"`
	CurrentHigh *decimal.Decimal `json:"currentHigh,omitempty"`
	BidCount    int              `json:"bidCount"`
}

// Ставка покупателя
type WasteBid struct {
	ID        int64           `db:"id" json:"id"`
	AuctionID int64           `db:"auction_id" json:"auctionId"`
	BidderID  int64           `db:"bidder_id" json:"bidderId"`
	BidAmount decimal.Decimal `db:"bid_amount" json:"bidAmount"`
	BidTime   time.Time       `db:"bid_time" json:"bidTime"`
	Notes     *string         `db:"notes" json:"notes,omitempty"`
	Status    BidStatus       `db:"status" json:"status"`
}

// Запись на вывоз
type Appointment struct {
	ID              int64             `db:"id" json:"id"`
	CustomerName    string            `db:"customer_name" json:"customerName"`
	CustomerPhone   *string           `db:"customer_phone" json:"customerPhone,omitempty"`
	Address         *string           `db:"address" json:"address,omitempty"`
	AppointmentTime time.Time         `db:"appointment_time" json:"appointmentTime"`
	ServiceType     *string           `db:"service_type" json:"serviceType,omitempty"`
	StaffID         *int64            `db:"staff_id" json:"staffId,omitempty"`
	VehicleID       *int64            `db:"vehicle_id" json:"vehicleId,omitempty"`
	Notes           *string           `db:"notes" json:"notes,omitempty"`
	Status          AppointmentStatus `db:"status" json:"status"`
	Version         int               `db:"version" json:"version"`
	CreatedAt       time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time         `db:"updated_at" json:"-"`
}

// Сотрудник
type Staff struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	IDCard    string    `db:"id_card" json:"idCard"`
	Position  *string   `db:"position" json:"position,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// Транспорт
type Vehicle struct {
	ID          int64               `db:"id" json:"id"`
	PlateNumber string              `db:"plate_number" json:"plateNumber"`
	Model       *string             `db:"model" json:"model,omitempty"`
	VehicleType *string             `db:"vehicle_type" json:"vehicleType,omitempty"`
	Capacity    decimal.NullDecimal `db:"capacity" json:"capacity"`
	CreatedAt   time.Time           `db:"created_at" json:"createdAt"`
}
