package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/store"
)

type PrefsHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func (h PrefsHandler) Get(w http.ResponseWriter, r *http.Request) {
	prefs, err := store.LoadPreferences(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, prefs)
}

func (h PrefsHandler) Put(w http.ResponseWriter, r *http.Request) {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	incoming := domain.DefaultPreferences()
	if err := dec.Decode(&incoming); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if incoming.MinMatchScore < 0 || incoming.MinMatchScore > 100 {
		WriteError(w, r, http.StatusBadRequest, "invalid_threshold", "minMatchScore must be 0..100")
		return
	}
	if incoming.PreferredLocations == nil {
		incoming.PreferredLocations = []string{}
	}
	if incoming.PreferredMode == nil {
		incoming.PreferredMode = []string{}
	}

	if err := store.SavePreferences(r.Context(), h.DB, incoming); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypePreferencesUpdated, map[string]any{
		"hasCriteria": incoming.HasCriteria(),
	}))
	writeJSON(w, incoming)
}
