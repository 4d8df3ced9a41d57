package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"jobtrack-engine/internal/digest"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/store"
)

func testCatalog() []domain.JobPosting {
	return []domain.JobPosting{
		{ID: 1, Title: "Backend Engineer", Company: "Acme", Location: "Pune",
			Mode: domain.ModeHybrid, Experience: "1-3", Source: "LinkedIn",
			Skills: []string{"Go"}, ApplyURL: "https://acme.example/1", PostedDaysAgo: 1},
		{ID: 2, Title: "Frontend Developer", Company: "Beta Corp", Location: "Mumbai",
			Mode: domain.ModeOnsite, Experience: "0-1", Source: "Naukri",
			Skills: []string{"React"}, ApplyURL: "https://beta.example/2", PostedDaysAgo: 4},
	}
}

func testMux(t *testing.T) (*http.ServeMux, Deps) {
	t.Helper()

	db, err := store.Open(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))

	d := Deps{
		DB:      db.Pool,
		Hub:     events.NewHub(),
		Catalog: testCatalog(),
		Digests: store.DigestStore{DB: db.Pool},
		Now: func() time.Time {
			return time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)
		},
	}
	return NewMux(d), d
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	mux, _ := testMux(t)
	rec := doJSON(t, mux, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok":true`)
}

func TestMethodNotAllowed(t *testing.T) {
	mux, _ := testMux(t)
	rec := doJSON(t, mux, http.MethodDelete, "/preferences", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPreferences_GetDefaults(t *testing.T) {
	mux, _ := testMux(t)
	rec := doJSON(t, mux, http.MethodGet, "/preferences", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var prefs domain.MatchPreferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prefs))
	assert.Equal(t, 40, prefs.MinMatchScore)
	assert.False(t, prefs.HasCriteria())
}

func TestPreferences_PutRoundTrip(t *testing.T) {
	mux, _ := testMux(t)

	body := map[string]any{
		"roleKeywords":       "engineer",
		"preferredLocations": []string{"Pune"},
		"preferredMode":      []string{domain.ModeHybrid},
		"experienceLevel":    "1-3",
		"skills":             "go",
		"minMatchScore":      50,
	}
	rec := doJSON(t, mux, http.MethodPut, "/preferences", body)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/preferences", nil)
	var prefs domain.MatchPreferences
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &prefs))
	assert.Equal(t, "engineer", prefs.RoleKeywords)
	assert.Equal(t, 50, prefs.MinMatchScore)
	assert.True(t, prefs.HasCriteria())
}

func TestPreferences_PutRejectsBadInput(t *testing.T) {
	mux, _ := testMux(t)

	rec := doJSON(t, mux, http.MethodPut, "/preferences", map[string]any{"minMatchScore": 150})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodPut, "/preferences", map[string]any{"unknownField": true})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJobs_ListAnnotated(t *testing.T) {
	mux, _ := testMux(t)

	// scoring inactive: everything scores 0
	rec := doJSON(t, mux, http.MethodGet, "/jobs", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var views []JobView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	for _, v := range views {
		assert.Zero(t, v.MatchScore)
		assert.Equal(t, domain.StatusNotApplied, v.Status)
		assert.False(t, v.Saved)
	}

	// set prefs, scores appear
	doJSON(t, mux, http.MethodPut, "/preferences", map[string]any{"roleKeywords": "engineer"})
	rec = doJSON(t, mux, http.MethodGet, "/jobs?sort=latest", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 2)
	assert.Equal(t, int64(1), views[0].ID, "latest first")
	// title keyword + freshness + LinkedIn
	assert.Equal(t, 35, views[0].MatchScore)
	assert.Zero(t, views[1].MatchScore)
}

func TestJobs_MatchesOnlyFilter(t *testing.T) {
	mux, _ := testMux(t)

	doJSON(t, mux, http.MethodPut, "/preferences", map[string]any{
		"roleKeywords":  "engineer",
		"minMatchScore": 30,
	})

	rec := doJSON(t, mux, http.MethodGet, "/jobs?matches_only=true", nil)
	var views []JobView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.Equal(t, int64(1), views[0].ID)
}

func TestJobs_Facets(t *testing.T) {
	mux, _ := testMux(t)
	rec := doJSON(t, mux, http.MethodGet, "/jobs/facets", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var f Facets
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &f))
	assert.Equal(t, []string{"Mumbai", "Pune"}, f.Locations)
	assert.Equal(t, []string{"LinkedIn", "Naukri"}, f.Sources)
}

func TestJobs_Detail(t *testing.T) {
	mux, _ := testMux(t)

	rec := doJSON(t, mux, http.MethodGet, "/jobs/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var v JobView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	assert.Equal(t, "Frontend Developer", v.Title)

	rec = doJSON(t, mux, http.MethodGet, "/jobs/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/jobs/zero", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestJobs_SaveUnsave(t *testing.T) {
	mux, d := testMux(t)
	ch := d.Hub.Subscribe()
	defer d.Hub.Unsubscribe(ch)

	rec := doJSON(t, mux, http.MethodPost, "/jobs/1/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, <-ch, events.TypeJobSaved)

	rec = doJSON(t, mux, http.MethodGet, "/jobs?saved=true", nil)
	var views []JobView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	require.Len(t, views, 1)
	assert.True(t, views[0].Saved)

	rec = doJSON(t, mux, http.MethodDelete, "/jobs/1/save", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, <-ch, events.TypeJobUnsaved)

	rec = doJSON(t, mux, http.MethodGet, "/jobs?saved=true", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &views))
	assert.Empty(t, views)
}

func TestJobs_StatusFlow(t *testing.T) {
	mux, d := testMux(t)
	ch := d.Hub.Subscribe()
	defer d.Hub.Unsubscribe(ch)

	rec := doJSON(t, mux, http.MethodGet, "/jobs/1/status", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), domain.StatusNotApplied)

	rec = doJSON(t, mux, http.MethodPut, "/jobs/1/status", map[string]any{"status": domain.StatusApplied})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, <-ch, events.TypeStatusChanged)

	rec = doJSON(t, mux, http.MethodPut, "/jobs/1/status", map[string]any{"status": "Ghosted"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/status/recent", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var changes []domain.StatusChange
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &changes))
	require.Len(t, changes, 1)
	assert.Equal(t, int64(1), changes[0].JobID)
}

func TestDigest_RequiresPreferences(t *testing.T) {
	mux, _ := testMux(t)

	rec := doJSON(t, mux, http.MethodPost, "/digest/generate", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/digest", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/digest/text", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDigest_GenerateAndFetch(t *testing.T) {
	mux, d := testMux(t)
	ch := d.Hub.Subscribe()
	defer d.Hub.Unsubscribe(ch)

	doJSON(t, mux, http.MethodPut, "/preferences", map[string]any{"roleKeywords": "engineer"})
	<-ch // preferences_updated

	rec := doJSON(t, mux, http.MethodPost, "/digest/generate", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, <-ch, events.TypeDigestGenerated)

	var got digest.Digest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2026-08-31", got.Date)
	require.Len(t, got.Jobs, 1)
	assert.Equal(t, int64(1), got.Jobs[0].ID)

	// regenerating returns the same snapshot
	rec = doJSON(t, mux, http.MethodPost, "/digest/generate", nil)
	var again digest.Digest
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &again))
	assert.Equal(t, got, again)

	rec = doJSON(t, mux, http.MethodGet, "/digest", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, mux, http.MethodGet, "/digest/text", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Backend Engineer")
	assert.Contains(t, rec.Body.String(), "Monday, August 31, 2026")

	rec = doJSON(t, mux, http.MethodGet, "/digest/email", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mail struct {
		Subject string `json:"subject"`
		Body    string `json:"body"`
		Mailto  string `json:"mailto"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mail))
	assert.Equal(t, digest.EmailSubject, mail.Subject)
	assert.Contains(t, mail.Body, "Backend Engineer")
	assert.Contains(t, mail.Mailto, "mailto:?subject=")
}

func TestRequestIDMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFrom(r.Context()))
		w.WriteHeader(http.StatusNoContent)
	})
	h := Chain(inner, RequestID)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	// a provided id is kept
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "given-id")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "given-id", rec.Header().Get("X-Request-ID"))
}

func TestRateLimitMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := Chain(inner, RateLimit(rate.NewLimiter(0, 1)))

	// reads always pass
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	// one write allowed by the burst, then throttled
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}

func TestRecoverMiddleware(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	h := Chain(inner, Recover)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal_error")
}
