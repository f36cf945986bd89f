package api

import (
	"net/http"
)

func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusNotFound, ErrorResponse{Error: "this endpoint does not exist"})
	}
}
