package lifecycle

import (
	"fmt"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// Machine описывает допустимые переходы статусов одной сущности.
// Состояние без исходящих переходов считается терминальным.
type Machine[S ~string] struct {
	entity string
	edges  map[S][]S
}

func newMachine[S ~string](entity string, edges map[S][]S) Machine[S] {
	return Machine[S]{entity: entity, edges: edges}
}

var Batch = newMachine("waste batch", map[models.BatchStatus][]models.BatchStatus{
	models.BatchDraft:             {models.BatchPublished},
	models.BatchPublished:         {models.BatchAuctionInProgress},
	models.BatchAuctionInProgress: {models.BatchAuctionEnded},
	models.BatchAuctionEnded:      {models.BatchAllocated},
	models.BatchAllocated:         nil,
})

var Appointment = newMachine("appointment", map[models.AppointmentStatus][]models.AppointmentStatus{
	models.AppointmentPending:   {models.AppointmentConfirmed, models.AppointmentCancelled},
	models.AppointmentConfirmed: {models.AppointmentCompleted, models.AppointmentCancelled},
	models.AppointmentCompleted: nil,
	models.AppointmentCancelled: nil,
})

// Bid: outbid -> active только при пересчёте лидера после отмены ставки
var Bid = newMachine("bid", map[models.BidStatus][]models.BidStatus{
	models.BidActive:    {models.BidOutbid, models.BidWinning, models.BidCancelled},
	models.BidOutbid:    {models.BidActive, models.BidWinning, models.BidCancelled},
	models.BidWinning:   nil,
	models.BidCancelled: nil,
})

// Valid - статус известен машине
func (m Machine[S]) Valid(s S) bool {
	_, ok := m.edges[s]
	return ok
}

func (m Machine[S]) Terminal(s S) bool {
	return m.Valid(s) && len(m.edges[s]) == 0
}

func (m Machine[S]) Successors(s S) []S {
	return append([]S(nil), m.edges[s]...)
}

// Transition возвращает новый статус, если requested - прямой преемник current.
// Неизвестный requested - ErrValidation, всё остальное - ErrInvalidTransition.
func (m Machine[S]) Transition(current, requested S) (S, error) {
	if !m.Valid(requested) {
		return current, apperrors.Invalid("status", fmt.Sprintf("unknown %s status %q", m.entity, requested))
	}
	if !m.Valid(current) {
		return current, fmt.Errorf("%w: %s is in unknown status %q", apperrors.ErrInvalidTransition, m.entity, current)
	}
	if m.Terminal(current) {
		return current, fmt.Errorf("%w: %s status %q is final", apperrors.ErrInvalidTransition, m.entity, current)
	}
	for _, next := range m.edges[current] {
		if next == requested {
			return requested, nil
		}
	}
	return current, fmt.Errorf("%w: %s cannot move from %q to %q", apperrors.ErrInvalidTransition, m.entity, current, requested)
}
