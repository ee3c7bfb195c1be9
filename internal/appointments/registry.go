package appointments

import (
	"context"
	"fmt"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/logger"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/validation"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// Сотрудники

func (s *Service) CreateStaff(ctx context.Context, in models.NewStaff) (*models.Staff, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, fmt.Errorf("create staff: %w", err)
	}
	st := &models.Staff{
		Name:     in.Name,
		Phone:    in.Phone,
		IDCard:   in.IDCard,
		Position: in.Position,
	}
	if err := s.repo.CreateStaff(ctx, st); err != nil {
		return nil, fmt.Errorf("create staff: %w", err)
	}
	logger.Info("staff created", map[string]any{"staff_id": st.ID})
	return st, nil
}

func (s *Service) GetStaff(ctx context.Context, id int64) (*models.Staff, error) {
	st, err := s.repo.GetStaff(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get staff: %w", err)
	}
	return st, nil
}

func (s *Service) ListStaff(ctx context.Context, page models.Page) ([]models.Staff, error) {
	list, err := s.repo.ListStaff(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list staff: %w", err)
	}
	return list, nil
}

// DeleteStaff отказывает с ErrReferencedEntityInUse, пока сотрудник назначен на открытую запись
func (s *Service) DeleteStaff(ctx context.Context, id int64) error {
	if err := s.repo.DeleteStaff(ctx, id); err != nil {
		return fmt.Errorf("delete staff: %w", err)
	}
	logger.Info("staff deleted", map[string]any{"staff_id": id})
	return nil
}

// Транспорт

func (s *Service) CreateVehicle(ctx context.Context, in models.NewVehicle) (*models.Vehicle, error) {
	if err := validation.Struct(&in); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	if in.Capacity.Valid && !in.Capacity.Decimal.IsPositive() {
		return nil, fmt.Errorf("create vehicle: %w", apperrors.Invalid("capacity", "must be greater than 0"))
	}
	v := &models.Vehicle{
		PlateNumber: in.PlateNumber,
		Model:       in.Model,
		VehicleType: in.VehicleType,
		Capacity:    in.Capacity,
	}
	if err := s.repo.CreateVehicle(ctx, v); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	logger.Info("vehicle created", map[string]any{"vehicle_id": v.ID})
	return v, nil
}

func (s *Service) GetVehicle(ctx context.Context, id int64) (*models.Vehicle, error) {
	v, err := s.repo.GetVehicle(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return v, nil
}

func (s *Service) ListVehicles(ctx context.Context, page models.Page) ([]models.Vehicle, error) {
	list, err := s.repo.ListVehicles(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return list, nil
}

func (s *Service) DeleteVehicle(ctx context.Context, id int64) error {
	if err := s.repo.DeleteVehicle(ctx, id); err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	logger.Info("vehicle deleted", map[string]any{"vehicle_id": id})
	return nil
}
