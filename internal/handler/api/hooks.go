package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/streamhive/streams-ms-go/internal/port"
	"github.com/streamhive/streams-ms-go/internal/usecase/session"
	"github.com/streamhive/streams-ms-go/internal/validation"
)

// HookRequest is the callback body posted by the media server. Only Name is
// always present; the other fields depend on the event.
type HookRequest struct {
	Name     string  `json:"name" validate:"required"`
	Viewers  *string `json:"viewers"`
	File     string  `json:"file"`
	Filename string  `json:"filename"`
}

// HookResponse follows the media server convention: code 0 accepts the event,
// any non-zero HTTP status rejects it.
type HookResponse struct {
	Code int `json:"code"`
}

func decodeHook(w http.ResponseWriter, r *http.Request) (HookRequest, bool) {
	var req HookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid hook payload", err)
		return HookRequest{}, false
	}
	if errs := validation.ValidateStruct(req); errs != nil {
		WriteError(w, http.StatusBadRequest, "stream name is required", nil)
		return HookRequest{}, false
	}
	return req, true
}

// PublishHookHandler handles the "stream started" callback. A rejected
// response makes the media server drop the connection.
func PublishHookHandler(svc port.SessionStarter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeHook(w, r)
		if !ok {
			return
		}

		sess, err := svc.GoLive(r.Context(), req.Name)
		if err != nil {
			switch {
			case errors.Is(err, session.ErrSessionNotFound):
				WriteError(w, http.StatusNotFound, "unknown stream key", nil)
			case errors.Is(err, session.ErrStreamKeyRetired):
				WriteError(w, http.StatusConflict, "stream key is retired", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not start session", err)
			}
			return
		}

		RespondJSON(w, http.StatusOK, HookResponse{Code: 0})
		log.Printf("✅  Session #%s is now live", sess.ID)
	}
}

// DoneHookHandler handles the "stream stopped" callback.
func DoneHookHandler(svc port.SessionEnder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeHook(w, r)
		if !ok {
			return
		}

		sess, err := svc.MarkEnded(r.Context(), req.Name, req.Viewers)
		if err != nil {
			switch {
			case errors.Is(err, session.ErrSessionNotFound):
				WriteError(w, http.StatusNotFound, "unknown stream key", nil)
			case errors.Is(err, session.ErrStreamKeyRetired):
				WriteError(w, http.StatusConflict, "stream key is retired", nil)
			default:
				WriteError(w, http.StatusInternalServerError, "could not end session", err)
			}
			return
		}

		RespondJSON(w, http.StatusOK, HookResponse{Code: 0})
		log.Printf("✅  Session #%s ended with %d viewers", sess.ID, sess.ViewerCount)
	}
}

// RecordingHookHandler handles the "recording finished" callback: it only
// enqueues the ingestion job, the worker does the heavy lifting.
func RecordingHookHandler(dispatcher port.TaskDispatcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeHook(w, r)
		if !ok {
			return
		}
		if req.File == "" || req.Filename == "" {
			WriteError(w, http.StatusBadRequest, "recording file and filename are required", nil)
			return
		}

		if err := dispatcher.EnqueueIngestRecording(r.Context(), req.Name, req.File, req.Filename); err != nil {
			WriteError(w, http.StatusInternalServerError, "could not enqueue recording ingestion", err)
			return
		}

		RespondJSON(w, http.StatusOK, HookResponse{Code: 0})
		log.Printf("✅  Queued ingestion of recording %q for stream %q", req.Filename, req.Name)
	}
}

// ViewerJoinHookHandler bumps the live viewer count for a stream.
func ViewerJoinHookHandler(counter port.ViewerCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeHook(w, r)
		if !ok {
			return
		}

		counter.Increment(r.Context(), req.Name)
		RespondJSON(w, http.StatusOK, HookResponse{Code: 0})
	}
}

// ViewerLeaveHookHandler drops the live viewer count for a stream.
func ViewerLeaveHookHandler(counter port.ViewerCounter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, ok := decodeHook(w, r)
		if !ok {
			return
		}

		counter.Decrement(r.Context(), req.Name)
		RespondJSON(w, http.StatusOK, HookResponse{Code: 0})
	}
}
