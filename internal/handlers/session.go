package handlers

import (
	"errors"
	"net/http"
	"scamshield/internal/core/domain"
	"scamshield/internal/session"
)

type StateResponse struct {
	Success bool           `json:"success"`
	View    domain.AppView `json:"view"`
	User    *domain.User   `json:"user"`
	Screen  session.Screen `json:"screen"`
}

type NavigateRequest struct {
	View domain.AppView `json:"view"`
}

func (h *Handler) state() StateResponse {
	st := h.Session.Snapshot()
	return StateResponse{
		Success: true,
		View:    st.View,
		User:    st.User,
		Screen:  session.ScreenFor(st.View),
	}
}

func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.state())
}

func (h *Handler) Navigate(w http.ResponseWriter, r *http.Request) {
	var req NavigateRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.Session.Navigate(req.View); err != nil {
		if errors.Is(err, session.ErrUnknownView) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.state())
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Session.Logout()
	writeJSON(w, http.StatusOK, h.state())
}
