package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// MaxRequestBodySize caps JSON request bodies.
const MaxRequestBodySize = 1 << 20 // 1MB

type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func RespondError(w http.ResponseWriter, status int, message string, fields ...string) {
	RespondJSON(w, status, ErrorResponse{
		Error:  message,
		Fields: fields,
	})
}

// DecodeJSON reads a JSON body into dst.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	return json.NewDecoder(r.Body).Decode(dst)
}

// FormValue is a form field that may arrive as a JSON string or a bare
// JSON number. Either way the raw text is kept for the caller to parse.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = ""
		return nil
	}
	if strings.HasPrefix(string(data), `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	*v = FormValue(data)
	return nil
}

// PathParam returns a route parameter set either by chi or by the
// standard library mux.
func PathParam(r *http.Request, name string) string {
	if v := r.PathValue(name); v != "" {
		return v
	}
	return chi.URLParam(r, name)
}
