package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/ltomic/threadline/internal/service"
	"github.com/ltomic/threadline/internal/transport/http/middleware"
)

type ThreadHandler struct {
	threadService *service.ThreadService
}

func NewThreadHandler(threadService *service.ThreadService) *ThreadHandler {
	return &ThreadHandler{threadService: threadService}
}

func (h *ThreadHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var input struct {
		Participant2 uuid.UUID `json:"participant2"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.Participant2 == uuid.Nil {
		writeError(w, http.StatusBadRequest, "MISSING_PARTICIPANT", "participant2 is required")
		return
	}

	thread, err := h.threadService.Create(r.Context(), userID, input.Participant2)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSelfThread):
			writeError(w, http.StatusBadRequest, "SELF_THREAD", "Cannot start a thread with yourself")
		case errors.Is(err, service.ErrUserNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "User not found")
		case errors.Is(err, service.ErrThreadExists):
			writeError(w, http.StatusConflict, "THREAD_EXISTS", "Thread between these users already exists")
		default:
			log.Printf("ERROR create thread: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, thread)
}

func (h *ThreadHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	limit, offset, err := parsePage(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_PAGINATION", "limit and offset must be non-negative integers")
		return
	}

	resp, err := h.threadService.List(r.Context(), userID, limit, offset)
	if err != nil {
		log.Printf("ERROR list threads: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *ThreadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	threadID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid thread ID")
		return
	}

	if err := h.threadService.Delete(r.Context(), userID, threadID); err != nil {
		switch {
		case errors.Is(err, service.ErrThreadNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Thread not found")
		case errors.Is(err, service.ErrNotParticipant):
			writeError(w, http.StatusForbidden, "FORBIDDEN", "You are not a participant of this thread")
		default:
			log.Printf("ERROR delete thread: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
