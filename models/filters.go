package models

import "time"

// Page - параметры пагинации
type Page struct {
	Limit  int
	Offset int
}

type BatchFilter struct {
	Status    *BatchStatus
	CreatedBy *int64
	Page
}

type AuctionFilter struct {
	BatchID   *int64
	CreatedBy *int64
	Page
}

type BidFilter struct {
	AuctionID *int64
	BidderID  *int64
	Status    *BidStatus
	Page
}

// AppointmentFilter: From включительно, To не включительно
type AppointmentFilter struct {
	Status    *AppointmentStatus
	StaffID   *int64
	VehicleID *int64
	From      *time.Time
	To        *time.Time
	Page
}
