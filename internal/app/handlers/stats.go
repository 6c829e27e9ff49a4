package handlers

import "net/http"

// Storage stats
func (h Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats(r.Context())
	if err != nil {
		handleError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, stats)
}
