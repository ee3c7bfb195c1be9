package handlers

import (
	"net/http"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// ListAppointmentsHandler обрабатывает GET /api/appointments
func (h *Handler) ListAppointmentsHandler(w http.ResponseWriter, r *http.Request) {
	filter := models.AppointmentFilter{
		Status: queryStatus[models.AppointmentStatus](r),
		Page:   parsePaginationParams(r),
	}
	var err error
	if filter.StaffID, err = queryID(r, "staffId"); err != nil {
		writeError(w, r, err)
		return
	}
	if filter.VehicleID, err = queryID(r, "vehicleId"); err != nil {
		writeError(w, r, err)
		return
	}
	if filter.From, err = queryTime(r, "from"); err != nil {
		writeError(w, r, err)
		return
	}
	if filter.To, err = queryTime(r, "to"); err != nil {
		writeError(w, r, err)
		return
	}

	list, err := h.Appointments.List(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) AppointmentStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Appointments.Stats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.Appointments.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) CreateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	var in models.NewAppointment
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.Appointments.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

// UpdateAppointmentHandler обрабатывает PUT /api/appointments/{id}
func (h *Handler) UpdateAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in models.AppointmentUpdate
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	a, err := h.Appointments.Update(r.Context(), id, in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

// UpdateAppointmentStatusHandler обрабатывает PATCH /api/appointments/{id}/status
func (h *Handler) UpdateAppointmentStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in models.AppointmentStatusChange
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if in.Status == "" {
		writeError(w, r, apperrors.Invalid("status", "is required"))
		return
	}
	a, err := h.Appointments.UpdateStatus(r.Context(), id, in.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteAppointmentHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Appointments.Delete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Сотрудники

func (h *Handler) ListStaffHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.Appointments.ListStaff(r.Context(), parsePaginationParams(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetStaffHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	st, err := h.Appointments.GetStaff(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func (h *Handler) CreateStaffHandler(w http.ResponseWriter, r *http.Request) {
	var in models.NewStaff
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	st, err := h.Appointments.CreateStaff(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, st)
}

func (h *Handler) DeleteStaffHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Appointments.DeleteStaff(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Транспорт

func (h *Handler) ListVehiclesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := h.Appointments.ListVehicles(r.Context(), parsePaginationParams(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) GetVehicleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.Appointments.GetVehicle(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) CreateVehicleHandler(w http.ResponseWriter, r *http.Request) {
	var in models.NewVehicle
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	v, err := h.Appointments.CreateVehicle(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) DeleteVehicleHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Appointments.DeleteVehicle(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
