package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/streamhive/streams-ms-go/internal/api_context"
	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/port"
	"github.com/streamhive/streams-ms-go/internal/usecase/session"
	"github.com/streamhive/streams-ms-go/internal/validation"
)

type UpdateSessionRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid"`
	Status      *string `json:"status" validate:"omitempty,oneof=live ended"`
}

func UpdateSessionHandler(svc port.SessionUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		var req UpdateSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request payload", err)
			return
		}

		if errs := validation.ValidateStruct(req); errs != nil {
			errsJSON, err := validation.ErrorsToJson(errs)
			if err != nil {
				WriteError(w, http.StatusInternalServerError, "failed to encode validation errors", err)
				return
			}
			RespondRawJSON(w, http.StatusBadRequest, []byte(errsJSON))
			log.Printf("❌  Validation failed: %s", errsJSON)
			return
		}

		input := port.UpdateSessionInput{
			ID:          id,
			Title:       req.Title,
			Description: req.Description,
			Status:      req.Status,
		}
		if actorID, ok := api_context.AuthUserIDFromContext(r.Context()); ok {
			input.ActorID = actorID
		}
		if req.CategoryID != nil {
			catID, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid category UUID: %w", err))
				return
			}
			cid := db.UUID(catID)
			input.CategoryID = &cid
		}

		sess, err := svc.UpdateSession(r.Context(), input)
		if err != nil {
			switch {
			case errors.Is(err, session.ErrSessionNotFound):
				WriteError(w, http.StatusNotFound, "Session not found", nil)
			case errors.Is(err, session.ErrNotOwner):
				WriteError(w, http.StatusForbidden, "session belongs to another user", nil)
			case errors.Is(err, session.ErrStreamKeyRetired):
				WriteError(w, http.StatusConflict, "stream key is retired", nil)
			case errors.Is(err, session.ErrInvalidTransition):
				WriteError(w, http.StatusConflict, "status transition is not allowed", nil)
			default:
				WriteError(w, http.StatusInternalServerError, fmt.Sprintf("could not update session #%s", id), err)
			}
			return
		}

		RespondJSON(w, http.StatusOK, sess)
		log.Printf("✅  Successfully updated session #%s", sess.ID)
	}
}
