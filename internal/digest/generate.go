package digest

import (
	"context"
	"errors"
	"sort"
	"time"

	"jobtrack-engine/internal/domain"
	"jobtrack-engine/internal/match"
)

// ErrNoPreferences means scoring is inactive: no digest is produced or
// persisted. Distinct from a generated-but-empty digest.
var ErrNoPreferences = errors.New("digest: preferences have no criteria")

// Store persists at most one digest per calendar date.
type Store interface {
	// GetDigest returns nil, nil when no digest exists for date.
	GetDigest(ctx context.Context, date string) (*Digest, error)
	PutDigest(ctx context.Context, d *Digest) error
}

// Generator cuts the daily digest. Now is injectable so day-boundary
// behavior is testable; nil means time.Now.
type Generator struct {
	Store Store
	Now   func() time.Time
}

func (g Generator) clock() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Generate returns today's digest, cutting and persisting a new one
// only if none exists yet. An existing record for today always wins,
// even when the catalog or preferences changed since it was cut.
func (g Generator) Generate(ctx context.Context, catalog []domain.JobPosting, prefs domain.MatchPreferences) (*Digest, error) {
	now := g.clock()
	today := DateKey(now)

	existing, err := g.Store.GetDigest(ctx, today)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.Date == today {
		return existing, nil
	}

	if !prefs.HasCriteria() {
		return nil, ErrNoPreferences
	}

	type scored struct {
		job   domain.JobPosting
		score int
	}
	var matching []scored
	for _, job := range catalog {
		if s := match.Score(job, prefs); s > 0 {
			matching = append(matching, scored{job: job, score: s})
		}
	}

	d := &Digest{
		Date:        today,
		GeneratedAt: now.UTC().Format(time.RFC3339),
		Jobs:        []Entry{},
	}

	if len(matching) == 0 {
		// Persisted anyway: repeat triggers stay no-ops for the rest
		// of the day.
		d.IsEmpty = true
		if err := g.Store.PutDigest(ctx, d); err != nil {
			return nil, err
		}
		return d, nil
	}

	// Highest score first, fresher postings break ties, catalog order
	// breaks whatever is left (stable sort).
	sort.SliceStable(matching, func(i, j int) bool {
		if matching[i].score != matching[j].score {
			return matching[i].score > matching[j].score
		}
		return matching[i].job.PostedDaysAgo < matching[j].job.PostedDaysAgo
	})

	if len(matching) > TopN {
		matching = matching[:TopN]
	}

	for _, m := range matching {
		d.Jobs = append(d.Jobs, Entry{
			ID:            m.job.ID,
			Title:         m.job.Title,
			Company:       m.job.Company,
			Location:      m.job.Location,
			Mode:          m.job.Mode,
			Experience:    m.job.Experience,
			MatchScore:    m.score,
			SalaryRange:   m.job.SalaryRange,
			ApplyURL:      m.job.ApplyURL,
			PostedDaysAgo: m.job.PostedDaysAgo,
		})
	}

	if err := g.Store.PutDigest(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}
