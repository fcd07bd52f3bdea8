package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"scamshield/internal/community"
	"scamshield/internal/login"
	"scamshield/internal/scanner"
	"scamshield/internal/session"
)

// Handler exposes the session's state objects over HTTP.
type Handler struct {
	Session *session.Router
	Form    *login.Form
	Feed    *community.Feed
	Scanner *scanner.Service
}

func New(router *session.Router, form *login.Form, feed *community.Feed, scan *scanner.Service) *Handler {
	return &Handler{Session: router, Form: form, Feed: feed, Scanner: scan}
}

// MessageResponse is the body of every response that carries no payload.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("⚠️  failed to write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Success: false, Message: message})
}

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func decode(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
