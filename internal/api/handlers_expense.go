package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tripledger/tripledger/internal/middleware"
	"github.com/tripledger/tripledger/internal/service"
)

type createExpenseRequest struct {
	PayerID        string          `json:"payerId"`
	Amount         decimal.Decimal `json:"amount"`
	Description    string          `json:"description"`
	Date           int64           `json:"date"`
	ParticipantIDs []string        `json:"participantIds"`
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	expense, err := s.expenses.Create(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()),
		service.CreateExpenseInput{
			PayerID:        req.PayerID,
			Amount:         req.Amount,
			Description:    req.Description,
			Date:           req.Date,
			ParticipantIDs: req.ParticipantIDs,
		})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toExpenseJSON(expense))
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.List(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]expenseJSON, len(expenses))
	for i, e := range expenses {
		out[i] = toExpenseJSON(e)
	}
	writeJSON(w, http.StatusOK, out)
}
