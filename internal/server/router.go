package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/handlers"
	"github.com/SinoAHpx/appointment-dashboard-sub001/internal/middleware"
	"github.com/SinoAHpx/appointment-dashboard-sub001/models"
)

// NewRouter собирает маршруты /api. requestTimeout - дедлайн на запрос, 0 - без дедлайна.
func NewRouter(h *handlers.Handler, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	if requestTimeout > 0 {
		r.Use(chimw.Timeout(requestTimeout))
	}
	r.Use(middleware.LoadSession)

	adminOnly := middleware.RequireRole(models.RoleAdmin)
	merchantOnly := middleware.RequireRole(models.RoleMerchant)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			// партии
			r.Route("/waste-batches", func(r chi.Router) {
				r.Get("/", h.ListBatchesHandler)
				r.Get("/stats", h.BatchStatsHandler)
				r.Get("/{id}", h.GetBatchHandler)
				r.With(adminOnly).Post("/", h.CreateBatchHandler)
				r.With(adminOnly).Patch("/{id}", h.TransitionBatchHandler)
			})

			// аукционы
			r.Route("/waste-auctions", func(r chi.Router) {
				r.Get("/", h.ListAuctionsHandler)
				r.Get("/{id}", h.GetAuctionHandler)
				r.With(adminOnly).Post("/", h.CreateAuctionHandler)
			})

			// ставки
			r.Route("/waste-bids", func(r chi.Router) {
				r.Get("/", h.ListBidsHandler)
				r.With(merchantOnly).Post("/", h.PlaceBidHandler)
				r.With(merchantOnly).Delete("/{id}", h.CancelBidHandler)
			})

			// записи
			r.Route("/appointments", func(r chi.Router) {
				r.Get("/", h.ListAppointmentsHandler)
				r.Get("/stats", h.AppointmentStatsHandler)
				r.Get("/{id}", h.GetAppointmentHandler)
				r.Post("/", h.CreateAppointmentHandler)
				r.Put("/{id}", h.UpdateAppointmentHandler)
				r.Patch("/{id}/status", h.UpdateAppointmentStatusHandler)
				r.With(adminOnly).Delete("/{id}", h.DeleteAppointmentHandler)
			})

			r.Route("/staff", func(r chi.Router) {
				r.Get("/", h.ListStaffHandler)
				r.Get("/{id}", h.GetStaffHandler)
				r.With(adminOnly).Post("/", h.CreateStaffHandler)
				r.With(adminOnly).Delete("/{id}", h.DeleteStaffHandler)
			})

			r.Route("/vehicles", func(r chi.Router) {
				r.Get("/", h.ListVehiclesHandler)
				r.Get("/{id}", h.GetVehicleHandler)
				r.With(adminOnly).Post("/", h.CreateVehicleHandler)
				r.With(adminOnly).Delete("/{id}", h.DeleteVehicleHandler)
			})
		})
	})

	return r
}
