package http

import (
	"encoding/json"
	"net/http"
)

// Envelope is the uniform response shape for every API endpoint.
// Error carries a user-facing message in Portuguese; Data the payload.
type Envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(env)
}

func respondData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, Envelope{Success: true, Data: data})
}

func respondOK(w http.ResponseWriter) {
	writeJSON(w, http.StatusOK, Envelope{Success: true})
}

func respondError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, Envelope{Success: false, Error: message})
}
