package handlers

import (
	"errors"
	"net/http"

	"github.com/ilya-burinskiy/webapis/internal/app/services"
)

// Resolve timestamp. Unknown formats are reported in a 200 response
func (h Handlers) Timestamp(resolver services.TimestampResolver) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		timestamp, err := resolver.Resolve(pathParam(r, "date"))
		if err != nil {
			if errors.Is(err, services.ErrInvalidDate) {
				writeError(w, http.StatusOK, services.ErrInvalidDate.Error())
				return
			}
			handleError(w, r, err, "")
			return
		}

		writeJSON(w, http.StatusOK, timestamp)
	}
}
