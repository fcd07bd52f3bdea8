package handlers

import (
	"errors"
	"net/http"
	"scamshield/internal/core/domain"
	"scamshield/internal/scanner"
	"strings"
)

type ScanRequest struct {
	Kind  domain.ScanKind `json:"kind,omitempty"`
	Input string          `json:"input"`
}

type ScanResponse struct {
	Success bool                  `json:"success"`
	Kind    domain.ScanKind       `json:"kind"`
	Result  domain.AnalysisResult `json:"result"`
}

// Scan analyzes input. Without an explicit kind the current screen's scanner is used.
func (h *Handler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	kind := domain.ScanKind(strings.ToUpper(strings.TrimSpace(string(req.Kind))))
	if kind == "" {
		screen := h.Session.Screen()
		if !screen.IsScanner() {
			writeError(w, http.StatusBadRequest, "Current view has no scanner; pass a kind")
			return
		}
		kind = screen.ScanKind
	}

	res, err := h.Scanner.Scan(r.Context(), kind, req.Input)
	if err != nil {
		if errors.Is(err, scanner.ErrEmptyInput) || errors.Is(err, scanner.ErrUnknownKind) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ScanResponse{Success: true, Kind: kind, Result: res})
}
