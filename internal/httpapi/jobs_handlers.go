package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jobtrack-engine/internal/catalog"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/match"
	"jobtrack-engine/internal/store"
)

type JobsHandler struct {
	DB      *sql.DB
	Hub     *events.Hub
	Catalog []domain.JobPosting
	Now     func() time.Time
}

func (h JobsHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// List serves the filtered, annotated catalog.
func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	jobs := catalog.Apply(h.Catalog, catalog.Filters{
		Keyword:    q.Get("q"),
		Location:   q.Get("location"),
		Mode:       q.Get("mode"),
		Experience: q.Get("experience"),
		Source:     q.Get("source"),
		Sort:       q.Get("sort"),
	})

	views, prefs, err := h.annotate(r, jobs)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	if q.Get("matches_only") == "true" {
		kept := views[:0]
		for _, v := range views {
			if v.MatchScore >= prefs.MinMatchScore {
				kept = append(kept, v)
			}
		}
		views = kept
	}
	if q.Get("saved") == "true" {
		kept := views[:0]
		for _, v := range views {
			if v.Saved {
				kept = append(kept, v)
			}
		}
		views = kept
	}

	writeJSON(w, views)
}

func (h JobsHandler) Facets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, Facets{
		Locations: catalog.Locations(h.Catalog),
		Sources:   catalog.Sources(h.Catalog),
	})
}

// ByPath dispatches /jobs/{id}, /jobs/{id}/save and /jobs/{id}/status.
func (h JobsHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/jobs/")
	parts := strings.SplitN(rest, "/", 2)

	id, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "invalid_id", "invalid job id")
		return
	}
	job, ok := catalog.ByID(h.Catalog, id)
	if !ok {
		WriteError(w, r, http.StatusNotFound, "job_not_found", "no such job")
		return
	}

	sub := ""
	if len(parts) == 2 {
		sub = parts[1]
	}

	switch {
	case sub == "" && r.Method == http.MethodGet:
		h.detail(w, r, job)
	case sub == "save" && r.Method == http.MethodPost:
		h.save(w, r, job)
	case sub == "save" && r.Method == http.MethodDelete:
		h.unsave(w, r, job)
	case sub == "status" && r.Method == http.MethodGet:
		h.status(w, r, job)
	case sub == "status" && r.Method == http.MethodPut:
		h.setStatus(w, r, job)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h JobsHandler) detail(w http.ResponseWriter, r *http.Request, job domain.JobPosting) {
	views, _, err := h.annotate(r, []domain.JobPosting{job})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, views[0])
}

func (h JobsHandler) save(w http.ResponseWriter, r *http.Request, job domain.JobPosting) {
	if err := store.SaveJob(r.Context(), h.DB, job.ID, h.now()); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobSaved, map[string]any{"id": job.ID}))
	writeJSON(w, map[string]any{"ok": true, "id": job.ID, "saved": true})
}

func (h JobsHandler) unsave(w http.ResponseWriter, r *http.Request, job domain.JobPosting) {
	if err := store.UnsaveJob(r.Context(), h.DB, job.ID); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeJobUnsaved, map[string]any{"id": job.ID}))
	writeJSON(w, map[string]any{"ok": true, "id": job.ID, "saved": false})
}

func (h JobsHandler) status(w http.ResponseWriter, r *http.Request, job domain.JobPosting) {
	st, err := store.GetStatus(r.Context(), h.DB, job.ID)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"id": job.ID, "status": st})
}

func (h JobsHandler) setStatus(w http.ResponseWriter, r *http.Request, job domain.JobPosting) {
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", err.Error())
		return
	}
	if !domain.ValidStatus(body.Status) {
		WriteError(w, r, http.StatusBadRequest, "invalid_status", "unknown application status")
		return
	}

	changed, err := store.SetStatus(r.Context(), h.DB, job.ID, body.Status, h.now())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if changed {
		reqID := RequestIDFrom(r.Context())
		h.Hub.Publish(events.MakeEvent(reqID, events.TypeStatusChanged, map[string]any{
			"id": job.ID, "status": body.Status,
		}))
	}
	writeJSON(w, map[string]any{"id": job.ID, "status": body.Status, "changed": changed})
}

// annotate attaches score, badge, saved and status to each posting.
func (h JobsHandler) annotate(r *http.Request, jobs []domain.JobPosting) ([]JobView, domain.MatchPreferences, error) {
	ctx := r.Context()

	prefs, err := store.LoadPreferences(ctx, h.DB)
	if err != nil {
		return nil, prefs, err
	}
	saved, err := store.SavedJobIDs(ctx, h.DB)
	if err != nil {
		return nil, prefs, err
	}
	statuses, err := store.AllStatuses(ctx, h.DB)
	if err != nil {
		return nil, prefs, err
	}

	views := make([]JobView, 0, len(jobs))
	for _, j := range jobs {
		score := match.Score(j, prefs)
		st, ok := statuses[j.ID]
		if !ok {
			st = domain.StatusNotApplied
		}
		views = append(views, JobView{
			JobPosting: j,
			MatchScore: score,
			Badge:      match.Badge(score),
			Saved:      saved[j.ID],
			Status:     st,
		})
	}
	return views, prefs, nil
}
