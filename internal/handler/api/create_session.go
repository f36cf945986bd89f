package api

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/streamhive/streams-ms-go/internal/api_context"
	"github.com/streamhive/streams-ms-go/internal/db"
	"github.com/streamhive/streams-ms-go/internal/port"
	"github.com/streamhive/streams-ms-go/internal/validation"
)

type CreateSessionRequest struct {
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	CategoryID  *string `json:"category_id" validate:"omitempty,uuid"`
}

func CreateSessionHandler(svc port.SessionCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ownerID, ok := api_context.AuthUserIDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusUnauthorized, "authentication is required", nil)
			return
		}

		var req CreateSessionRequest
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

		input := port.CreateSessionInput{
			OwnerID:     ownerID,
			Title:       req.Title,
			Description: req.Description,
		}
		if req.CategoryID != nil {
			catID, err := uuid.Parse(*req.CategoryID)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "Invalid request", fmt.Errorf("invalid category UUID: %w", err))
				return
			}
			id := db.UUID(catID)
			input.CategoryID = &id
		}

		sess, err := svc.CreateSession(r.Context(), input)
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "could not create stream session", err)
			return
		}

		RespondJSON(w, http.StatusCreated, sess)
		log.Printf("✅  Successfully created session #%s", sess.ID)
	}
}
