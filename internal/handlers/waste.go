package handlers

import (
	"fmt"
	"net/http"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/apperrors"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/middleware"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// Партии

// ListBatchesHandler обрабатывает GET /api/waste-batches
func (h *Handler) ListBatchesHandler(w http.ResponseWriter, r *http.Request) {
	createdBy, err := queryID(r, "createdBy")
	if err != nil {
		writeError(w, r, err)
		return
	}
	filter := models.BatchFilter{
		Status:    queryStatus[models.BatchStatus](r),
		CreatedBy: createdBy,
		Page:      parsePaginationParams(r),
	}

	batches, err := h.Waste.ListBatches(r.Context(), filter)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, batches)
}

// BatchStatsHandler обрабатывает GET /api/waste-batches/stats
func (h *Handler) BatchStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Waste.BatchStats(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) GetBatchHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	batch, err := h.Waste.GetBatch(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// CreateBatchHandler обрабатывает POST /api/waste-batches
func (h *Handler) CreateBatchHandler(w http.ResponseWriter, r *http.Request) {
	var in models.NewBatch
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	// автор по умолчанию - текущий пользователь
	if s := middleware.SessionFrom(r.Context()); s != nil && in.CreatedBy == 0 {
		in.CreatedBy = s.UserID
	}

	batch, err := h.Waste.CreateBatch(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, batch)
}

// TransitionBatchHandler обрабатывает PATCH /api/waste-batches/{id} {status}
func (h *Handler) TransitionBatchHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var in models.BatchStatusChange
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if in.Status == "" {
		writeError(w, r, apperrors.Invalid("status", "is required"))
		return
	}

	batch, err := h.Waste.TransitionBatch(r.Context(), id, in.Status)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, batch)
}

// Аукционы

func (h *Handler) ListAuctionsHandler(w http.ResponseWriter, r *http.Request) {
	batchID, err := queryID(r, "batchId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	createdBy, err := queryID(r, "createdBy")
	if err != nil {
		writeError(w, r, err)
		return
	}

	auctions, err := h.Waste.ListAuctions(r.Context(), models.AuctionFilter{
		BatchID:   batchID,
		CreatedBy: createdBy,
		Page:      parsePaginationParams(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, auctions)
}

func (h *Handler) GetAuctionHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	auction, err := h.Waste.GetAuction(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, auction)
}

func (h *Handler) CreateAuctionHandler(w http.ResponseWriter, r *http.Request) {
	var in models.NewAuction
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if s := middleware.SessionFrom(r.Context()); s != nil && in.CreatedBy == 0 {
		in.CreatedBy = s.UserID
	}

	auction, err := h.Waste.CreateAuction(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, auction)
}

// Ставки

// ListBidsHandler обрабатывает GET /api/waste-bids?userId= | ?auctionId=
func (h *Handler) ListBidsHandler(w http.ResponseWriter, r *http.Request) {
	userID, err := queryID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	auctionID, err := queryID(r, "auctionId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	if userID == nil && auctionID == nil {
		writeError(w, r, apperrors.Invalid("userId", "userId or auctionId is required"))
		return
	}

	bids, err := h.Waste.ListBids(r.Context(), models.BidFilter{
		AuctionID: auctionID,
		BidderID:  userID,
		Status:    queryStatus[models.BidStatus](r),
		Page:      parsePaginationParams(r),
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bids)
}

// PlaceBidHandler обрабатывает POST /api/waste-bids
func (h *Handler) PlaceBidHandler(w http.ResponseWriter, r *http.Request) {
	var in models.PlaceBid
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, err)
		return
	}
	if s := middleware.SessionFrom(r.Context()); s != nil {
		if in.BidderID == 0 {
			in.BidderID = s.UserID
		}
		if err := checkOwner(s, in.BidderID); err != nil {
			writeError(w, r, err)
			return
		}
	}

	bid, err := h.Waste.PlaceBid(r.Context(), in)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bid)
}

// CancelBidHandler обрабатывает DELETE /api/waste-bids/{id}?userId=
func (h *Handler) CancelBidHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	userID, err := queryID(r, "userId")
	if err != nil {
		writeError(w, r, err)
		return
	}
	s := middleware.SessionFrom(r.Context())
	if userID == nil {
		if s == nil || s.UserID == 0 {
			writeError(w, r, apperrors.Invalid("userId", "is required"))
			return
		}
		userID = &s.UserID
	}
	if s != nil {
		if err := checkOwner(s, *userID); err != nil {
			writeError(w, r, err)
			return
		}
	}

	bid, err := h.Waste.CancelBid(r.Context(), id, *userID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, bid)
}

// checkOwner: не-админ действует только от своего имени.
// Сессия без id пользователя не проверяется: сравнивать не с чем.
func checkOwner(s *middleware.Session, userID int64) error {
	if s.IsAdmin() || s.UserID == 0 || s.UserID == userID {
		return nil
	}
	return fmt.Errorf("%w: cannot act on behalf of user %d", apperrors.ErrForbidden, userID)
}
