package lifecycle

import (
	"errors"
	"testing"

	"github.com/peterldowns/testy/check"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

func TestBatch_ForwardPath(t *testing.T) {
	status := models.BatchDraft
	for _, next := range models.BatchStatuses[1:] {
		got, err := Batch.Transition(status, next)
		check.NoError(t, err)
		check.Equal(t, next, got)
		status = got
	}
	check.True(t, Batch.Terminal(status))
}

func TestBatch_RejectsSkipsAndBackwards(t *testing.T) {
	cases := []struct {
		from, to models.BatchStatus
	}{
		{models.BatchDraft, models.BatchAuctionInProgress},
		{models.BatchDraft, models.BatchAllocated},
		{models.BatchPublished, models.BatchDraft},
		{models.BatchAuctionEnded, models.BatchAuctionInProgress},
		{models.BatchAllocated, models.BatchDraft},
		{models.BatchPublished, models.BatchPublished},
	}
	for _, c := range cases {
		got, err := Batch.Transition(c.from, c.to)
		check.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
		check.Equal(t, c.from, got)
	}
}

func TestBatch_RetryOfSameRequestFails(t *testing.T) {
	status, err := Batch.Transition(models.BatchDraft, models.BatchPublished)
	check.NoError(t, err)

	_, err = Batch.Transition(status, models.BatchPublished)
	check.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
}

func TestBatch_UnknownStatus(t *testing.T) {
	_, err := Batch.Transition(models.BatchDraft, "archived")
	check.True(t, errors.Is(err, apperrors.ErrValidation))
	check.False(t, errors.Is(err, apperrors.ErrInvalidTransition))

	_, err = Batch.Transition("archived", models.BatchPublished)
	check.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
}

func TestAppointment_Transitions(t *testing.T) {
	status, err := Appointment.Transition(models.AppointmentPending, models.AppointmentConfirmed)
	check.NoError(t, err)
	status, err = Appointment.Transition(status, models.AppointmentCompleted)
	check.NoError(t, err)
	check.Equal(t, models.AppointmentCompleted, status)

	_, err = Appointment.Transition(status, models.AppointmentCancelled)
	check.True(t, errors.Is(err, apperrors.ErrInvalidTransition))

	_, err = Appointment.Transition(models.AppointmentPending, models.AppointmentCompleted)
	check.True(t, errors.Is(err, apperrors.ErrInvalidTransition))

	_, err = Appointment.Transition(models.AppointmentPending, models.AppointmentCancelled)
	check.NoError(t, err)
}

func TestAppointment_Terminal(t *testing.T) {
	check.False(t, Appointment.Terminal(models.AppointmentPending))
	check.False(t, Appointment.Terminal(models.AppointmentConfirmed))
	check.True(t, Appointment.Terminal(models.AppointmentCompleted))
	check.True(t, Appointment.Terminal(models.AppointmentCancelled))
	check.False(t, Appointment.Terminal("unknown"))
}

func TestBid_Transitions(t *testing.T) {
	_, err := Bid.Transition(models.BidActive, models.BidOutbid)
	check.NoError(t, err)
	_, err = Bid.Transition(models.BidOutbid, models.BidActive)
	check.NoError(t, err)
	_, err = Bid.Transition(models.BidOutbid, models.BidWinning)
	check.NoError(t, err)

	_, err = Bid.Transition(models.BidWinning, models.BidOutbid)
	check.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
	_, err = Bid.Transition(models.BidCancelled, models.BidActive)
	check.True(t, errors.Is(err, apperrors.ErrInvalidTransition))
}

func TestSuccessors_ReturnsCopy(t *testing.T) {
	next := Appointment.Successors(models.AppointmentPending)
	check.Equal(t, 2, len(next))
	next[0] = models.AppointmentCompleted

	again := Appointment.Successors(models.AppointmentPending)
	check.Equal(t, models.AppointmentConfirmed, again[0])
	check.Equal(t, 0, len(Batch.Successors(models.BatchAllocated)))
}
