package httpapi

import (
	"database/sql"
	"net/http"
	"strconv"

	"jobtrack-engine/internal/store"
)

type StatusHandler struct {
	DB *sql.DB
}

// Recent lists the newest status changes, default 10.
func (h StatusHandler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if s := r.URL.Query().Get("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			limit = n
		}
	}

	changes, err := store.RecentStatusChanges(r.Context(), h.DB, limit)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, changes)
}
