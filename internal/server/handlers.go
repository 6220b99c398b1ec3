package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/settlement-service/internal/auth"
	"github.com/settlement-service/internal/middleware"
	"github.com/settlement-service/internal/projection"
	"github.com/settlement-service/internal/review"
	"github.com/settlement-service/internal/service"
	"github.com/settlement-service/pkg/logger"
	"github.com/settlement-service/pkg/models"
)

type handler struct {
	serv service.ServiceInterface
}

func NewHandler(serv service.ServiceInterface) *handler {
	return &handler{serv: serv}
}

func (h *handler) Register(w http.ResponseWriter, r *http.Request) {
	var newUser models.User
	if err := json.NewDecoder(r.Body).Decode(&newUser); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}
	if newUser.Password == "" || newUser.Login == "" {
		http.Error(w, "login and password are required", http.StatusBadRequest)
		return
	}

	alreadyExist, err := h.serv.UserExist(r.Context(), newUser.Login)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if alreadyExist {
		http.Error(w, "login already taken", http.StatusConflict)
		return
	}

	newUser.Role = models.RoleCustomer
	if err := h.serv.RegisterUser(r.Context(), &newUser); err != nil {
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	token, err := auth.GenerateJWT(&newUser)
	if err != nil {
		http.Error(w, "token generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token))
	w.WriteHeader(http.StatusOK)
}

func (h *handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.User
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}
	if req.Password == "" || req.Login == "" {
		http.Error(w, "login and password are required", http.StatusBadRequest)
		return
	}
	if err := h.serv.AuthorizeUser(r.Context(), &req); err != nil {
		http.Error(w, "invalid login/password pair", http.StatusUnauthorized)
		return
	}

	token, err := auth.GenerateJWT(&req)
	if err != nil {
		http.Error(w, "token generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token))
	w.WriteHeader(http.StatusOK)
}

func (h *handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	tab, ok := projection.ParseTab(r.URL.Query().Get("tab"))
	if !ok {
		http.Error(w, "unknown tab", http.StatusBadRequest)
		return
	}

	orders, err := h.serv.GetOrders(ctx, userID, tab)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}

func (h *handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	view, status := h.serv.GetOrder(ctx, userID, chi.URLParam(r, "id"))
	switch status {
	case service.StatusOK:
		writeJSON(w, http.StatusOK, view)
	case service.StatusNotFound:
		http.Error(w, "order not found", http.StatusNotFound)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	result, status := h.serv.VerifyOrderPayment(ctx, userID, chi.URLParam(r, "id"))
	switch status {
	case service.StatusOK:
		writeJSON(w, http.StatusOK, result)
	case service.StatusNotFound:
		http.Error(w, "order not found", http.StatusNotFound)
	case service.StatusInvalid:
		http.Error(w, "payment cannot be checked for this order", http.StatusUnprocessableEntity)
	case service.StatusBusy:
		http.Error(w, "verification already in progress", http.StatusConflict)
	default:
		// the order is untouched and the action stays retriable
		http.Error(w, "payment verification failed, try again", http.StatusBadGateway)
	}
}

func (h *handler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	balance, err := h.serv.GetBalance(ctx, userID)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, balance)
}

func (h *handler) PreviewWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, h.serv.PreviewWithdrawal(req.Amount))
}

func (h *handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.Withdraw
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}

	status, vErr := h.serv.CreateWithdrawal(ctx, userID, req)
	switch status {
	case service.StatusOK:
		w.WriteHeader(http.StatusOK)
	case service.StatusInvalid:
		msg := "invalid withdrawal request"
		if vErr != nil {
			msg = vErr.Error()
		}
		http.Error(w, msg, http.StatusUnprocessableEntity)
	case service.StatusConflict:
		http.Error(w, "insufficient funds", http.StatusPaymentRequired)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *handler) GetUserWithdrawals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := middleware.GetUserIDFromContext(ctx)
	if err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	withdrawals, err := h.serv.GetUserWithdrawals(ctx, userID)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if len(withdrawals) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	writeJSON(w, http.StatusOK, withdrawals)
}

func (h *handler) GetWithdrawals(w http.ResponseWriter, r *http.Request) {
	withdrawals, err := h.serv.GetWithdrawals(r.Context())
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, withdrawals)
}

type commentBody struct {
	Comment string `json:"comment"`
}

func (h *handler) adjudicateWithdrawal(action review.WithdrawalAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body commentBody
		if r.ContentLength > 0 {
			if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
				http.Error(w, "invalid request format", http.StatusBadRequest)
				return
			}
		}

		fresh, status := h.serv.AdjudicateWithdrawal(r.Context(), chi.URLParam(r, "id"), action, body.Comment)
		switch status {
		case service.StatusOK:
			writeJSON(w, http.StatusOK, fresh)
		case service.StatusNotFound:
			http.Error(w, "withdrawal not found", http.StatusNotFound)
		case service.StatusConflict:
			http.Error(w, "action not allowed in current status", http.StatusConflict)
		case service.StatusBusy:
			http.Error(w, "action already in progress", http.StatusConflict)
		default:
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}
}

func (h *handler) GetTickets(w http.ResponseWriter, r *http.Request) {
	tickets, err := h.serv.GetTickets(r.Context())
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, tickets)
}

func (h *handler) ResolveTicket(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Approve bool   `json:"approve"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid request format", http.StatusBadRequest)
		return
	}

	fresh, status := h.serv.ResolveTicket(r.Context(), chi.URLParam(r, "id"), body.Approve, body.Comment)
	switch status {
	case service.StatusOK:
		writeJSON(w, http.StatusOK, fresh)
	case service.StatusNotFound:
		http.Error(w, "ticket not found", http.StatusNotFound)
	case service.StatusConflict:
		http.Error(w, "ticket already resolved", http.StatusConflict)
	case service.StatusBusy:
		http.Error(w, "action already in progress", http.StatusConflict)
	default:
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error(err.Error())
	}
}
