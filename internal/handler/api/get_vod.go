package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/streamhive/streams-ms-go/internal/api_context"
	"github.com/streamhive/streams-ms-go/internal/port"
	"github.com/streamhive/streams-ms-go/internal/usecase/vod"
)

func GetVODHandler(svc port.VODGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := api_context.IDFromContext(r.Context())
		if !ok {
			WriteError(w, http.StatusBadRequest, "ID is required", nil)
			return
		}

		v, err := svc.GetVOD(r.Context(), id)
		if err != nil {
			if errors.Is(err, vod.ErrVODNotFound) {
				WriteError(w, http.StatusNotFound, "VOD not found", nil)
				return
			}
			WriteError(w, http.StatusInternalServerError, "Could not get VOD details", err)
			return
		}

		RespondJSON(w, http.StatusOK, v)
		log.Printf("✅  Successfully returned details for VOD #%s", id)
	}
}
