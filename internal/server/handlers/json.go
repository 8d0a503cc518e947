package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/iudanet/usersvc/pkg/api"
)

// sendJSON writes data as a JSON response with the given status code.
func sendJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// sendSuccess writes a message-only success envelope.
func sendSuccess(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(w, api.Response{
		Status:  api.StatusSuccess,
		Message: message,
	}, statusCode)
}

// sendFail writes the uniform fail envelope.
func sendFail(w http.ResponseWriter, message string, statusCode int) {
	sendJSON(w, api.Response{
		Status:  api.StatusFail,
		Message: message,
	}, statusCode)
}
