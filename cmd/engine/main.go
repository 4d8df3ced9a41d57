package main

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"golang.org/x/time/rate"

	"jobtrack-engine/internal/catalog"
	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/events"
	"jobtrack-engine/internal/httpapi"
	"jobtrack-engine/internal/store"
)

func main() {
	// Engine data dir: use env if provided (the UI shell can pass one),
	// else local folder.
	dataDir := os.Getenv("JOBTRACK_DATA_DIR")
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatal(err)
	}

	// One engine per data dir; persisted records are last-write-wins,
	// so a second instance would silently clobber the first.
	lock := flock.New(filepath.Join(dataDir, "engine.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("lock data dir: %v", err)
	}
	if !locked {
		log.Fatalf("another engine instance is already using %s", dataDir)
	}
	defer func() { _ = lock.Unlock() }()

	defaultCfgPath := filepath.Join("config", "config.yml")
	userCfgPath, err := config.EnsureUserConfig(dataDir, defaultCfgPath)
	if err != nil {
		log.Fatalf("config bootstrap failed: %v", err)
	}

	// Load config and keep it reloadable
	var cfgVal atomic.Value // stores config.Config
	loadCfg := func() (config.Config, error) {
		c, err := config.Load(userCfgPath)
		if err != nil {
			return c, err
		}
		normalized, vr := config.NormalizeAndValidate(c)
		if !vr.OK() {
			return c, fmt.Errorf("config invalid: %v", vr.Errors)
		}
		for _, warn := range vr.Warnings {
			log.Printf("[config] warning: %s", warn)
		}
		return normalized, nil
	}
	cfg, err := loadCfg()
	if err != nil {
		log.Fatalf("config load failed (%s): %v", userCfgPath, err)
	}
	cfgVal.Store(cfg)

	dbPath := filepath.Join(dataDir, "jobtrack.db")
	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := store.Migrate(db.Pool); err != nil {
		log.Fatal(err)
	}

	jobs, err := catalog.Load(cfg.Catalog.Paths)
	if err != nil {
		log.Fatalf("catalog load failed: %v", err)
	}
	log.Printf("[catalog] loaded %d postings from %d file(s)", len(jobs), len(cfg.Catalog.Paths))

	hub := events.NewHub()

	mux := httpapi.NewMux(httpapi.Deps{
		DB:          db.Pool,
		Hub:         hub,
		Catalog:     jobs,
		Digests:     store.DigestStore{DB: db.Pool},
		CfgVal:      &cfgVal,
		UserCfgPath: userCfgPath,
		LoadCfg:     loadCfg,
	})

	srv := &http.Server{
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Shutdown needs srv and a token, so it hangs off the raw mux here.
	token, err := randomToken(16)
	if err != nil {
		log.Fatal(err)
	}
	tokenPath := filepath.Join(dataDir, "shutdown.token")
	if err := os.WriteFile(tokenPath, []byte(token), 0o600); err != nil {
		log.Fatalf("write shutdown token: %v", err)
	}
	mux.HandleFunc("/shutdown", shutdownHandler(&token, srv))

	srv.Handler = httpapi.Chain(mux,
		httpapi.RequestID,
		httpapi.AccessLog,
		httpapi.Recover,
		httpapi.RateLimit(rate.NewLimiter(5, 10)),
		httpapi.Cors,
	)

	addr := fmt.Sprintf("127.0.0.1:%d", cfg.App.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("engine listening on http://%s (db=%s)", addr, dbPath)
	log.Fatal(srv.Serve(ln))
}
