package handlers

import "net/http"

// Ping handles GET /users/ping
// Liveness probe used by deploy checks.
func Ping(w http.ResponseWriter, r *http.Request) {
	sendSuccess(w, "pong!", http.StatusOK)
}
