package handler

import (
	"net/http"

	"github.com/swaggo/swag"

	_ "reviewdesk/docs"
)

// OpenAPI handles GET /v1/docs/openapi.json
func OpenAPI(w http.ResponseWriter, r *http.Request) {
	doc, err := swag.ReadDoc()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "api documentation unavailable")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(doc))
}
