package handlers

import (
	"net/http"
	"time"

	"github.com/cooooin/harmony/internal/api/httpx"
)

// Ping answers with the server clock so clients can stamp occurrence times
// against it.
func Ping(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]int64{"timestamp": time.Now().UnixMilli()})
}
