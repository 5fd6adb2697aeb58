package handler

import (
	_ "embed"
	"encoding/json"
	"net/http"
)

//go:embed endpoints.json
var endpointsDoc []byte

// APIHandler serves the endpoint catalogue at GET /api.
type APIHandler struct {
	endpoints json.RawMessage
}

func NewAPIHandler() *APIHandler {
	return &APIHandler{endpoints: json.RawMessage(endpointsDoc)}
}

// HandleEndpoints returns {"endpoints": {...}}. The document is embedded at
// build time and passed through as raw JSON.
func (h *APIHandler) HandleEndpoints(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]json.RawMessage{"endpoints": h.endpoints})
}
