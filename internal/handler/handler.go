// Package handler contains chi HTTP handlers that translate HTTP
// requests/responses to and from the service layer.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/Shivanand-hulikatti/activity-signup/internal/model"
	"github.com/Shivanand-hulikatti/activity-signup/internal/repository"
	"github.com/Shivanand-hulikatti/activity-signup/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ActivityHandler holds all HTTP handlers for the activity signup API.
type ActivityHandler struct {
	svc *service.ActivityService
	log *zap.Logger
}

// NewActivityHandler constructs an ActivityHandler.
func NewActivityHandler(svc *service.ActivityService, log *zap.Logger) *ActivityHandler {
	return &ActivityHandler{svc: svc, log: log}
}

// ─── Helper utilities ─────────────────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, model.ErrorResponse{Detail: msg})
}

// activityName returns the decoded {activity_name} path segment.
func activityName(r *http.Request) (string, error) {
	name := chi.URLParam(r, "activity_name")
	// chi matches against RawPath when the path carries escapes that
	// Path cannot represent (e.g. %2F), leaving the parameter encoded.
	if r.URL.RawPath == "" {
		return name, nil
	}
	return url.PathUnescape(name)
}

// emailParam returns the required email query parameter. An empty value is
// accepted; only a missing parameter is rejected.
func emailParam(r *http.Request) (string, bool) {
	q := r.URL.Query()
	if !q.Has("email") {
		return "", false
	}
	return q.Get("email"), true
}

// fail maps service errors to status codes and error messages.
func (h *ActivityHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, repository.ErrParticipantNotFound):
		writeError(w, http.StatusNotFound, "Student not registered for this activity")
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "Activity not found")
	case errors.Is(err, repository.ErrAlreadyRegistered):
		writeError(w, http.StatusBadRequest, "Student already signed up for this activity")
	case errors.Is(err, repository.ErrActivityFull):
		writeError(w, http.StatusBadRequest, "Activity is full")
	default:
		h.log.Error("request failed",
			zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// ─── Handlers ─────────────────────────────────────────────────────────────────

// ListActivities handles GET /activities
// Returns a JSON object keyed by activity name.
func (h *ActivityHandler) ListActivities(w http.ResponseWriter, r *http.Request) {
	activities, err := h.svc.ListActivities(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := make(map[string]model.Activity, len(activities))
	for _, a := range activities {
		if a.Participants == nil {
			a.Participants = []string{}
		}
		out[a.Name] = a
	}

	writeJSON(w, http.StatusOK, out)
}

// Signup handles POST /activities/{activity_name}/signup?email=
func (h *ActivityHandler) Signup(w http.ResponseWriter, r *http.Request) {
	name, err := activityName(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity name")
		return
	}
	email, ok := emailParam(r)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "email query parameter is required")
		return
	}

	msg, err := h.svc.Signup(r.Context(), name, email)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: msg})
}

// Unregister handles DELETE /activities/{activity_name}/participants?email=
func (h *ActivityHandler) Unregister(w http.ResponseWriter, r *http.Request) {
	name, err := activityName(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid activity name")
		return
	}
	email, ok := emailParam(r)
	if !ok {
		writeError(w, http.StatusUnprocessableEntity, "email query parameter is required")
		return
	}

	msg, err := h.svc.Unregister(r.Context(), name, email)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, model.MessageResponse{Message: msg})
}

// ─── Health check ─────────────────────────────────────────────────────────────

// HealthCheck handles GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
