package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tripledger/tripledger/internal/middleware"
)

type createTransferRequest struct {
	FromMemberID string          `json:"fromMemberId"`
	ToMemberID   string          `json:"toMemberId"`
	Amount       decimal.Decimal `json:"amount"`
}

func (s *Server) handleCreateTransfer(w http.ResponseWriter, r *http.Request) {
	var req createTransferRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	transfer, err := s.transfers.Create(r.Context(), chi.URLParam(r, "id"),
		middleware.GetUserID(r.Context()), req.FromMemberID, req.ToMemberID, req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransferJSON(transfer))
}

func (s *Server) handleListTransfers(w http.ResponseWriter, r *http.Request) {
	transfers, err := s.transfers.List(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]transferJSON, len(transfers))
	for i, t := range transfers {
		out[i] = toTransferJSON(t)
	}
	writeJSON(w, http.StatusOK, out)
}
