package models

// Статус партии отходов
type BatchStatus string

const (
	BatchDraft             BatchStatus = "draft"
	BatchPublished         BatchStatus = "published"
	BatchAuctionInProgress BatchStatus = "auction_in_progress"
	BatchAuctionEnded      BatchStatus = "auction_ended"
	BatchAllocated         BatchStatus = "allocated"
)

// BatchStatuses перечисляет статусы партии в порядке жизненного цикла
var BatchStatuses = []BatchStatus{
	BatchDraft, BatchPublished, BatchAuctionInProgress, BatchAuctionEnded, BatchAllocated,
}

// Статус ставки внутри аукциона
type BidStatus string

const (
	BidActive    BidStatus = "active"
	BidOutbid    BidStatus = "outbid"
	BidWinning   BidStatus = "winning"
	BidCancelled BidStatus = "cancelled"
)

var BidStatuses = []BidStatus{BidActive, BidOutbid, BidWinning, BidCancelled}

// Статус записи
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

var AppointmentStatuses = []AppointmentStatus{
	AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled,
}

// OpenAppointmentStatuses - статусы, в которых запись держит сотрудника и транспорт
var OpenAppointmentStatuses = []AppointmentStatus{AppointmentPending, AppointmentConfirmed}

// Роль пользователя из cookie сессии фронтенда
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleUser     Role = "user"
	RoleMerchant Role = "waste_disposal_merchant"
)
