package handlers

import (
	"database/sql"
	"net/http"
	"time"
)

// SystemHandler serves the public info, health and test routes.
type SystemHandler struct {
	db *sql.DB
}

// NewSystemHandler creates a new SystemHandler.
func NewSystemHandler(db *sql.DB) *SystemHandler {
	return &SystemHandler{db: db}
}

func (h *SystemHandler) dbStatus(r *http.Request) string {
	if err := h.db.PingContext(r.Context()); err != nil {
		return "Disconnected"
	}
	return "Connected"
}

// Root describes the API surface.
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "VoiceAI Backend API",
		"status":  "running",
		"version": "1.0.0",
		"endpoints": map[string]interface{}{
			"public":    []string{"/", "/api/health", "/api/test", "/api/auth/register", "/api/auth/login"},
			"protected": "Requires Authorization header",
		},
	})
}

// Health reports service and database status.
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "VoiceAI Backend API",
		"database":  h.dbStatus(r),
		"version":   "1.0.0",
	})
}

// Test is a diagnostic route kept for the mobile client's connectivity check.
func (h *SystemHandler) Test(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message":   "Server is working!",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"database":  h.dbStatus(r),
	})
}
