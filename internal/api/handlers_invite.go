package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tripledger/tripledger/internal/middleware"
)

type createInviteRequest struct {
	Email string `json:"email"`
}

type createInviteResponse struct {
	Invite           inviteJSON `json:"invite"`
	NotificationSent bool       `json:"notificationSent"`
	UserExists       bool       `json:"userExists"`
}

func (s *Server) handleCreateInvite(w http.ResponseWriter, r *http.Request) {
	var req createInviteRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := s.invites.Create(r.Context(), chi.URLParam(r, "id"),
		middleware.GetUserID(r.Context()), req.Email)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, createInviteResponse{
		Invite:           toInviteJSON(result.Invite),
		NotificationSent: result.UserExists,
		UserExists:       result.UserExists,
	})
}

func (s *Server) handleListInvites(w http.ResponseWriter, r *http.Request) {
	invites, err := s.invites.ListPending(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]inviteJSON, len(invites))
	for i, inv := range invites {
		out[i] = toInviteJSON(inv)
	}
	writeJSON(w, http.StatusOK, out)
}

type inviteLookupResponse struct {
	Invite *inviteJSON `json:"invite,omitempty"`
	Trip   struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Location string `json:"location,omitempty"`
	} `json:"trip"`
}

func (s *Server) handleGetInvite(w http.ResponseWriter, r *http.Request) {
	lookup, err := s.invites.Get(r.Context(), chi.URLParam(r, "token"))
	if err != nil {
		writeError(w, err)
		return
	}

	var resp inviteLookupResponse
	if lookup.Invite != nil {
		inv := toInviteJSON(lookup.Invite)
		resp.Invite = &inv
	}
	resp.Trip.ID = lookup.Trip.ID
	resp.Trip.Name = lookup.Trip.Name
	resp.Trip.Location = lookup.Trip.Location

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAcceptInvite(w http.ResponseWriter, r *http.Request) {
	trip, err := s.invites.Accept(r.Context(), chi.URLParam(r, "token"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTripJSON(trip))
}

func (s *Server) handleRevokeInvite(w http.ResponseWriter, r *http.Request) {
	if err := s.invites.Revoke(r.Context(), chi.URLParam(r, "token"), middleware.GetUserID(r.Context())); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.invites.Notifications(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]notificationJSON, len(notifications))
	for i, n := range notifications {
		out[i] = toNotificationJSON(n)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleAcceptNotification(w http.ResponseWriter, r *http.Request) {
	trip, err := s.invites.AcceptNotification(r.Context(), chi.URLParam(r, "id"), middleware.GetUserID(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTripJSON(trip))
}
