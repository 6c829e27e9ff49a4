package handlers

import (
	"net/http"

	"github.com/ilya-burinskiy/webapis/internal/app/middlewares"
)

type whoamiResponse struct {
	IPAddress string `json:"ipaddress"`
	Language  string `json:"language"`
	Software  string `json:"software"`
}

// Echo client identity
func (h Handlers) Whoami(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, whoamiResponse{
		IPAddress: middlewares.RemoteHost(r),
		Language:  r.Header.Get("Accept-Language"),
		Software:  r.Header.Get("User-Agent"),
	})
}
