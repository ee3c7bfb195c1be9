package handlers

import (
	"errors"
	"net/http"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/logger"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/middleware"
)

type errorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

var errorKinds = []struct {
	err    error
	status int
	kind   string
}{
	{apperrors.ErrValidation, http.StatusBadRequest, "ValidationError"},
	{apperrors.ErrInvalidTransition, http.StatusBadRequest, "InvalidTransition"},
	{apperrors.ErrAuctionNotActive, http.StatusBadRequest, "AuctionNotActive"},
	{apperrors.ErrBidTooLow, http.StatusBadRequest, "BidTooLow"},
	{apperrors.ErrNotFound, http.StatusNotFound, "NotFound"},
	{apperrors.ErrAlreadySettled, http.StatusConflict, "AlreadySettled"},
	{apperrors.ErrReferencedEntityInUse, http.StatusConflict, "ReferencedEntityInUse"},
	{apperrors.ErrDuplicate, http.StatusConflict, "Duplicate"},
	{apperrors.ErrStoreUnavailable, http.StatusServiceUnavailable, "StoreUnavailable"},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, "Unauthorized"},
	{apperrors.ErrForbidden, http.StatusForbidden, "Forbidden"},
}

// MapErrorToHTTP возвращает HTTP-статус и вид ошибки
func MapErrorToHTTP(err error) (int, string) {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k.status, k.kind
		}
	}
	return http.StatusInternalServerError, "InternalError"
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, kind := MapErrorToHTTP(err)
	resp := errorResponse{Error: kind, Message: err.Error()}

	var verr *apperrors.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", map[string]any{
			"request_id": middleware.RequestID(r.Context()),
			"path":       r.URL.Path,
			"error":      err.Error(),
		})
		if status == http.StatusInternalServerError {
			resp.Message = "internal server error"
		}
	}
	writeJSON(w, status, resp)
}
