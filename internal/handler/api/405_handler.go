package api

import (
	"net/http"
)

func MethodNotAllowedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Error: "this method is not allowed"})
	}
}
