package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/streamhive/streams-ms-go/internal/api_context"
	"github.com/streamhive/streams-ms-go/internal/port"
	"github.com/streamhive/streams-ms-go/internal/usecase/session"
)

func GetSessionHandler(svc port.SessionGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		sess, err := svc.GetSession(r.Context(), id)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				WriteError(w, http.StatusNotFound, "Session not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not get session details", err)
			return
		}

		RespondJSON(w, http.StatusOK, sess)
		log.Printf("✅  Successfully returned details for session #%s", id)
	}
}
