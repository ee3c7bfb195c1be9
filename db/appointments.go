package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// Записи

func (s *Storage) CreateAppointment(ctx context.Context, a *models.Appointment) error {
	query := `
        INSERT INTO appointment (customer_name, customer_phone, address, appointment_time, service_type,
                                 staff_id, vehicle_id, notes, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, version, created_at, updated_at`
	err := s.db.QueryRowContext(ctx, query,
		a.CustomerName, a.CustomerPhone, a.Address, a.AppointmentTime, a.ServiceType,
		a.StaffID, a.VehicleID, a.Notes, a.Status).
		Scan(&a.ID, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	return wrap("create appointment", err)
}

func (s *Storage) GetAppointment(ctx context.Context, id int64) (*models.Appointment, error) {
	a := &models.Appointment{}
	if err := s.db.GetContext(ctx, a, `SELECT * FROM appointment WHERE id = $1`, id); err != nil {
		return nil, wrap(fmt.Sprintf("appointment %d", id), err)
	}
	return a, nil
}

func (s *Storage) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	var w where
	if filter.Status != nil {
		w.add("status = $%d", *filter.Status)
	}
	if filter.StaffID != nil {
		w.add("staff_id = $%d", *filter.StaffID)
	}
	if filter.VehicleID != nil {
		w.add("vehicle_id = $%d", *filter.VehicleID)
	}
	if filter.From != nil {
		w.add("appointment_time >= $%d", *filter.From)
	}
	if filter.To != nil {
		w.add("appointment_time < $%d", *filter.To)
	}
	query := "SELECT * FROM appointment" + w.String() + " ORDER BY appointment_time, id" + pageClause(filter.Page)

	list := []models.Appointment{}
	if err := s.db.SelectContext(ctx, &list, query, w.args...); err != nil {
		return nil, wrap("list appointments", err)
	}
	return list, nil
}

func (s *Storage) CountAppointmentsByStatus(ctx context.Context) (map[models.AppointmentStatus]int, error) {
	var rows []struct {
		Status models.AppointmentStatus `db:"status"`
		N      int                      `db:"n"`
	}
	if err := s.db.SelectContext(ctx, &rows, `SELECT status, COUNT(*) AS n FROM appointment GROUP BY status`); err != nil {
		return nil, wrap("count appointments", err)
	}
	counts := make(map[models.AppointmentStatus]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.N
	}
	return counts, nil
}

func (s *Storage) UpdateAppointment(ctx context.Context, a *models.Appointment) (bool, error) {
	query := `
        UPDATE appointment
        SET customer_name = $1, customer_phone = $2, address = $3, appointment_time = $4,
            service_type = $5, staff_id = $6, vehicle_id = $7, notes = $8, status = $9,
            version = version + 1, updated_at = NOW()
        WHERE id = $10 AND version = $11
        RETURNING version, updated_at`
	err := s.db.QueryRowContext(ctx, query,
		a.CustomerName, a.CustomerPhone, a.Address, a.AppointmentTime,
		a.ServiceType, a.StaffID, a.VehicleID, a.Notes, a.Status,
		a.ID, a.Version).
		Scan(&a.Version, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		// записи нет или версия устарела
		if _, err := s.GetAppointment(ctx, a.ID); err != nil {
			return false, err
		}
		return false, nil
	}
	if err != nil {
		return false, wrap(fmt.Sprintf("update appointment %d", a.ID), err)
	}
	return true, nil
}

func (s *Storage) DeleteAppointment(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM appointment WHERE id = $1`, id)
	if err != nil {
		return wrap(fmt.Sprintf("delete appointment %d", id), err)
	}
	n, err := rowsAffected("delete appointment", res)
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("appointment %d: %w", id, apperrors.ErrNotFound)
	}
	return nil
}

// Сотрудники

func (s *Storage) CreateStaff(ctx context.Context, st *models.Staff) error {
	query := `
        INSERT INTO staff (name, phone, id_card, position)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, query, st.Name, st.Phone, st.IDCard, st.Position).
		Scan(&st.ID, &st.CreatedAt)
	return wrap("create staff", err)
}

func (s *Storage) GetStaff(ctx context.Context, id int64) (*models.Staff, error) {
	st := &models.Staff{}
	if err := s.db.GetContext(ctx, st, `SELECT * FROM staff WHERE id = $1`, id); err != nil {
		return nil, wrap(fmt.Sprintf("staff %d", id), err)
	}
	return st, nil
}

func (s *Storage) ListStaff(ctx context.Context, page models.Page) ([]models.Staff, error) {
	list := []models.Staff{}
	if err := s.db.SelectContext(ctx, &list, "SELECT * FROM staff ORDER BY id"+pageClause(page)); err != nil {
		return nil, wrap("list staff", err)
	}
	return list, nil
}

func (s *Storage) DeleteStaff(ctx context.Context, id int64) error {
	return s.deleteReferenced(ctx, "staff", "staff_id", id)
}

// Транспорт

func (s *Storage) CreateVehicle(ctx context.Context, v *models.Vehicle) error {
	query := `
        INSERT INTO vehicle (plate_number, model, vehicle_type, capacity)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`
	err := s.db.QueryRowContext(ctx, query, v.PlateNumber, v.Model, v.VehicleType, v.Capacity).
		Scan(&v.ID, &v.CreatedAt)
	return wrap("create vehicle", err)
}

func (s *Storage) GetVehicle(ctx context.Context, id int64) (*models.Vehicle, error) {
	v := &models.Vehicle{}
	if err := s.db.GetContext(ctx, v, `SELECT * FROM vehicle WHERE id = $1`, id); err != nil {
		return nil, wrap(fmt.Sprintf("vehicle %d", id), err)
	}
	return v, nil
}

func (s *Storage) ListVehicles(ctx context.Context, page models.Page) ([]models.Vehicle, error) {
	list := []models.Vehicle{}
	if err := s.db.SelectContext(ctx, &list, "SELECT * FROM vehicle ORDER BY id"+pageClause(page)); err != nil {
		return nil, wrap("list vehicles", err)
	}
	return list, nil
}

func (s *Storage) DeleteVehicle(ctx context.Context, id int64) error {
	return s.deleteReferenced(ctx, "vehicle", "vehicle_id", id)
}

// deleteReferenced удаляет строку table, если на неё не ссылается открытая запись.
// FOR UPDATE конфликтует с FOR KEY SHARE, который берёт вставка ссылки,
// так что новая ссылка не появится между проверкой и удалением.
func (s *Storage) deleteReferenced(ctx context.Context, table, column string, id int64) (err error) {
	op := fmt.Sprintf("delete %s %d", table, id)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return wrap(op, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var locked int64
	if err = tx.GetContext(ctx, &locked, fmt.Sprintf(`SELECT id FROM %s WHERE id = $1 FOR UPDATE`, table), id); err != nil {
		return wrap(op, err)
	}

	var open int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM appointment WHERE %s = $1 AND status IN ('pending', 'confirmed')`, column)
	if err = tx.GetContext(ctx, &open, query, id); err != nil {
		return wrap(op, err)
	}
	if open > 0 {
		err = fmt.Errorf("%s: %w: %d open appointments", op, apperrors.ErrReferencedEntityInUse, open)
		return err
	}

	if _, err = tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id); err != nil {
		return wrap(op, err)
	}
	if err = tx.Commit(); err != nil {
		return wrap(op, err)
	}
	return nil
}
