package handlers

import (
	"net/http"
	"scamshield/internal/core/domain"
	"scamshield/internal/login"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message,omitempty"`
	Form    login.Snapshot `json:"form"`
	View    domain.AppView `json:"view"`
	User    *domain.User   `json:"user"`
}

func (h *Handler) loginResponse(snap login.Snapshot) LoginResponse {
	st := h.Session.Snapshot()
	res := LoginResponse{
		Success: snap.Error == "",
		Message: snap.Success,
		Form:    snap,
		View:    st.View,
		User:    st.User,
	}
	if snap.Error != "" {
		res.Message = snap.Error
	}
	return res
}

func (h *Handler) GetLoginForm(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.loginResponse(h.Form.Snapshot()))
}

func (h *Handler) ToggleLoginMode(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.loginResponse(h.Form.ToggleMode()))
}

// SubmitLogin runs the form with the posted credentials. Credential failures are
// reported in the body with 200, like the form shows them.
func (h *Handler) SubmitLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.Form.SetCredentials(req.Username, req.Password)
	snap := h.Form.Submit(r.Context())
	writeJSON(w, http.StatusOK, h.loginResponse(snap))
}
