package httpapi

import "net/http"

// NewMux returns the raw mux so main() can still attach /shutdown
// (needs srv+token).
func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	hh := HealthHandler{}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: hh.Health,
	}))

	// Jobs: listing, facets, per-job detail/save/status
	jh := JobsHandler{DB: d.DB, Hub: d.Hub, Catalog: d.Catalog, Now: d.Now}
	mux.HandleFunc("/jobs", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.List,
	}))
	mux.HandleFunc("/jobs/facets", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: jh.Facets,
	}))
	mux.HandleFunc("/jobs/", jh.ByPath) // methods dispatched inside

	// Preferences
	ph := PrefsHandler{DB: d.DB, Hub: d.Hub}
	mux.HandleFunc("/preferences", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ph.Get,
		http.MethodPut: ph.Put,
	}))

	// Digest
	dh := DigestHandler{DB: d.DB, Hub: d.Hub, Catalog: d.Catalog, Digests: d.Digests, Now: d.Now}
	mux.HandleFunc("/digest", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Get,
	}))
	mux.HandleFunc("/digest/generate", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: dh.Generate,
	}))
	mux.HandleFunc("/digest/text", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Text,
	}))
	mux.HandleFunc("/digest/email", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: dh.Email,
	}))

	// Status history
	sh := StatusHandler{DB: d.DB}
	mux.HandleFunc("/status/recent", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: sh.Recent,
	}))

	// Config
	ch := ConfigHandler{
		CfgVal:      d.CfgVal,
		UserCfgPath: d.UserCfgPath,
		LoadCfg:     d.LoadCfg,
	}
	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Get,
		http.MethodPut: ch.Put,
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: ch.Path,
	}))

	// SSE events
	eh := EventsHandler{Hub: d.Hub}
	mux.HandleFunc("/events", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: eh.ServeSSE,
	}))

	return mux
}
