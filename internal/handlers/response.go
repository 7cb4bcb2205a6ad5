package handlers

import (
	"encoding/json"
	"net/http"

	"showrunner/internal/logging"
)

// respond writes v as JSON with the given status code. Bodies describe live
// playback, so they are never cached. A nil v writes headers only.
func respond(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(code)

	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("Failed to encode %T response: %v", v, err)
	}
}

func respondError(w http.ResponseWriter, code int, message string) {
	respond(w, code, map[string]string{"error": message})
}
