package httpapi

import (
	"database/sql"
	"sync/atomic"
	"time"

	"jobtrack-engine/internal/config"
	"jobtrack-engine/internal/digest"
	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/events"
)

type Deps struct {
	DB *sql.DB

	Hub *events.Hub

	// Catalog is loaded once at startup and read-only after.
	Catalog []domain.JobPosting

	// Digest persistence (sqlite in production, fakes in tests).
	Digests digest.Store

	// Injected clock for digest date keying; nil means time.Now.
	Now func() time.Time

	// Atomic config snapshot plus persistence hooks.
	CfgVal      *atomic.Value // stores config.Config
	UserCfgPath string
	LoadCfg     func() (config.Config, error)
}
