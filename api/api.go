package api

import (
	"io"
	"net/http"

	"github.com/gorilla/mux"
)

// New creates the base mux router carrying the health route. The full route
// table is layered on top of it by handlers.App.
func New() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", healthCheckHandler)

	return r
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, `{"alive": true}`)
}
