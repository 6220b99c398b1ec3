package server

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/settlement-service/internal/middleware"
	"github.com/settlement-service/internal/review"
	"github.com/settlement-service/internal/service"
)

func NewRouter(serv service.ServiceInterface) chi.Router {
	r := chi.NewRouter()
	h := NewHandler(serv)
	r.Use(middleware.LoggerMiddleware)

	r.Group(func(r chi.Router) {
		r.Post("/api/user/register", h.Register)
		r.Post("/api/user/login", h.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware)
		r.Use(middleware.GzipMiddleware)

		r.Get("/api/orders", h.GetOrders)
		r.Get("/api/orders/{id}", h.GetOrder)
		r.Post("/api/orders/{id}/verify", h.VerifyPayment)

		r.Get("/api/balance", h.GetBalance)
		r.Post("/api/withdrawals/preview", h.PreviewWithdrawal)
		r.Post("/api/withdrawals", h.Withdraw)
		r.Get("/api/withdrawals", h.GetUserWithdrawals)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminOnly)

			r.Get("/api/admin/withdrawals", h.GetWithdrawals)
			r.Post("/api/admin/withdrawals/{id}/approve", h.adjudicateWithdrawal(review.ActionApprove))
			r.Post("/api/admin/withdrawals/{id}/reject", h.adjudicateWithdrawal(review.ActionReject))
			r.Post("/api/admin/withdrawals/{id}/complete", h.adjudicateWithdrawal(review.ActionComplete))

			r.Get("/api/admin/tickets", h.GetTickets)
			r.Post("/api/admin/tickets/{id}/resolve", h.ResolveTicket)
		})
	})

	return r
}

func Init(address string, serv service.ServiceInterface) error {
	return http.ListenAndServe(address, NewRouter(serv))
}
