package common

import (
	"encoding/json"
	"net/http"
)

// RespondJSON sends a JSON response with the given status. The payload is
// encoded as-is; success bodies on this API carry no envelope.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// ExtractRequestID extracts the request ID from the request headers
func ExtractRequestID(r *http.Request) string {
	if id := r.Header.Get("X-Request-ID"); id != "" {
		return id
	}
	if id := r.Header.Get("X-Request-Id"); id != "" {
		return id
	}
	if id := r.Header.Get("X-Amzn-Trace-Id"); id != "" {
		return id
	}
	return ""
}

// ParseJSONBody parses a JSON request body with a size limit. Unknown fields
// are tolerated: clients may attach extra metadata the service ignores.
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	return json.NewDecoder(r.Body).Decode(v)
}
