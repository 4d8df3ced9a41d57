package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"jobtrack-engine/internal/digest"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/store"
)

type DigestHandler struct {
	DB      *sql.DB
	Hub     *events.Hub
	Catalog []domain.JobPosting
	Digests digest.Store
	Now     func() time.Time
}

func (h DigestHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

// Get returns today's digest if one has been generated.
func (h DigestHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.Digests.GetDigest(r.Context(), digest.DateKey(h.now()))
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if d == nil {
		WriteError(w, r, http.StatusNotFound, "digest_not_found", "no digest generated today")
		return
	}
	writeJSON(w, d)
}

// Generate cuts today's digest, or returns the existing one unchanged.
func (h DigestHandler) Generate(w http.ResponseWriter, r *http.Request) {
	prefs, err := store.LoadPreferences(r.Context(), h.DB)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	gen := digest.Generator{Store: h.Digests, Now: h.Now}
	d, err := gen.Generate(r.Context(), h.Catalog, prefs)
	if errors.Is(err, digest.ErrNoPreferences) {
		WriteError(w, r, http.StatusConflict, "preferences_required", "set matching preferences before generating a digest")
		return
	}
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "digest_error", err.Error())
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeDigestGenerated, map[string]any{
		"date": d.Date, "jobs": len(d.Jobs),
	}))
	writeJSON(w, d)
}

// Text renders today's digest as the plain-text block.
func (h DigestHandler) Text(w http.ResponseWriter, r *http.Request) {
	d, err := h.Digests.GetDigest(r.Context(), digest.DateKey(h.now()))
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if d == nil {
		WriteError(w, r, http.StatusNotFound, "digest_not_found", "no digest generated today")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(digest.FormatText(d)))
}

// Email returns the mail-client handoff: fixed subject, text body and
// a composed mailto URL. Nothing is sent.
func (h DigestHandler) Email(w http.ResponseWriter, r *http.Request) {
	d, err := h.Digests.GetDigest(r.Context(), digest.DateKey(h.now()))
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}
	if d == nil {
		WriteError(w, r, http.StatusNotFound, "digest_not_found", "no digest generated today")
		return
	}

	body := digest.FormatText(d)
	writeJSON(w, map[string]any{
		"subject": digest.EmailSubject,
		"body":    body,
		"mailto":  digest.MailtoURL(digest.EmailSubject, body),
	})
}
