package appointments

import (
	"context"
	"fmt"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/lifecycle"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/logger"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/repository"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/validation"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// Service - записи на вывоз, сотрудники и транспорт
type Service struct {
	repo repository.AppointmentRepository
}

func NewService(repo repository.AppointmentRepository) *Service {
	return &Service{repo: repo}
}

// Create создает запись в статусе pending
func (s *Service) Create(ctx context.Context, in models.NewAppointment) (*models.Appointment, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	a := &models.Appointment{Status: models.AppointmentPending}
	apply(a, in)
	if err := s.repo.CreateAppointment(ctx, a); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	logger.Info("appointment created", map[string]any{
		"appointment_id": a.ID,
		"time":           a.AppointmentTime,
	})
	return a, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Appointment, error) {
	a, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	return a, nil
}

func (s *Service) List(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	if filter.Status != nil && !lifecycle.Appointment.Valid(*filter.Status) {
		return nil, apperrors.Invalid("status", fmt.Sprintf("unknown appointment status %q", *filter.Status))
	}
	if filter.From != nil && filter.To != nil && !filter.To.After(*filter.From) {
		return nil, apperrors.Invalid("to", "must be after from")
	}
	list, err := s.repo.ListAppointments(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return list, nil
}

// Stats - число записей в каждом статусе
func (s *Service) Stats(ctx context.Context) (map[models.AppointmentStatus]int, error) {
	counts, err := s.repo.CountAppointmentsByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("appointment stats: %w", err)
	}
	stats := make(map[models.AppointmentStatus]int, len(models.AppointmentStatuses))
	for _, st := range models.AppointmentStatuses {
		stats[st] = counts[st]
	}
	return stats, nil
}

// Update заменяет поля открытой записи. Смена статуса проверяется машиной состояний.
func (s *Service) Update(ctx context.Context, id int64, in models.AppointmentUpdate) (*models.Appointment, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}

	a, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update appointment: %w", err)
	}
	if lifecycle.Appointment.Terminal(a.Status) {
		return nil, fmt.Errorf("update appointment %d: %w: status %q is final", id, apperrors.ErrInvalidTransition, a.Status)
	}

	from := a.Status
	if in.Status != nil && *in.Status != a.Status {
		next, err := lifecycle.Appointment.Transition(a.Status, *in.Status)
		if err != nil {
			return nil, fmt.Errorf("update appointment %d: %w", id, err)
		}
		a.Status = next
	}
	apply(a, in.NewAppointment)

	if err := s.save(ctx, a); err != nil {
		return nil, fmt.Errorf("update appointment %d: %w", id, err)
	}
	if from != a.Status {
		logStatusChange(a, from)
	}
	return a, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, requested models.AppointmentStatus) (*models.Appointment, error) {
	a, err := s.repo.GetAppointment(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update appointment status: %w", err)
	}

	from := a.Status
	next, err := lifecycle.Appointment.Transition(from, requested)
	if err != nil {
		return nil, fmt.Errorf("update appointment %d status: %w", id, err)
	}
	a.Status = next
	if err := s.save(ctx, a); err != nil {
		return nil, fmt.Errorf("update appointment %d status: %w", id, err)
	}

	logStatusChange(a, from)
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteAppointment(ctx, id); err != nil {
		return fmt.Errorf("delete appointment: %w", err)
	}
	logger.Info("appointment deleted", map[string]any{"appointment_id": id})
	return nil
}

// save - запись с проверкой версии; проигранная гонка даёт ErrInvalidTransition
func (s *Service) save(ctx context.Context, a *models.Appointment) error {
	ok, err := s.repo.UpdateAppointment(ctx, a)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: appointment changed concurrently", apperrors.ErrInvalidTransition)
	}
	return nil
}

func apply(a *models.Appointment, in models.NewAppointment) {
	a.CustomerName = in.CustomerName
	a.CustomerPhone = in.CustomerPhone
	a.Address = in.Address
	a.AppointmentTime = in.AppointmentTime.UTC()
	a.ServiceType = in.ServiceType
	a.StaffID = in.StaffID
	a.VehicleID = in.VehicleID
	a.Notes = in.Notes
}

func logStatusChange(a *models.Appointment, from models.AppointmentStatus) {
	logger.Info("appointment status changed", map[string]any{
		"appointment_id": a.ID,
		"from":           from,
		"to":             a.Status,
	})
}
