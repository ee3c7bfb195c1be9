package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// maxBodyBytes ограничивает размер тела запроса
const maxBodyBytes = 1 << 20

// Handler - HTTP-обработчики поверх сервисов
type Handler struct {
	Waste        WasteService
	Appointments AppointmentService
}

func NewHandler(waste WasteService, appointments AppointmentService) *Handler {
	return &Handler{Waste: waste, Appointments: appointments}
}

// PingHandler отвечает "ok" для проверки сервера
func (h *Handler) PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// decodeJSON читает тело запроса в dst; неизвестные поля игнорируются
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.Invalid("body", fmt.Sprintf("must not exceed %d bytes", maxErr.Limit))
		}
		return apperrors.Invalid("body", "invalid JSON: "+err.Error())
	}
	return nil
}

// parsePaginationParams парсит limit и offset из query, с дефолтами и ограничениями
func parsePaginationParams(r *http.Request) models.Page {
	page := models.Page{Limit: 20}

	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		page.Limit = l
	}
	if o, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && o >= 0 {
		page.Offset = o
	}
	return page
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Invalid(name, "must be a positive integer")
	}
	return id, nil
}

// queryID - необязательный числовой параметр; nil, если параметра нет
func queryID(r *http.Request, name string) (*int64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperrors.Invalid(name, "must be a positive integer")
	}
	return &id, nil
}

// queryTime принимает RFC3339 или дату YYYY-MM-DD
func queryTime(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, apperrors.Invalid(name, "must be RFC3339 or YYYY-MM-DD")
}

// queryStatus - необязательный статус из query
func queryStatus[S ~string](r *http.Request) *S {
	raw := r.URL.Query().Get("status")
	if raw == "" {
		return nil
	}
	s := S(raw)
	return &s
}
