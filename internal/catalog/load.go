package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"jobtrack-engine/internal/domain"
)

// Load reads every catalog file concurrently and merges them in the
// declared order, so catalog order (and the tie-breaks built on it)
// stays deterministic. Postings are read-only after this.
func Load(paths []string) ([]domain.JobPosting, error) {
	results := make([][]domain.JobPosting, len(paths))

	var g errgroup.Group
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			jobs, err := loadFile(p)
			if err != nil {
				return fmt.Errorf("catalog %s: %w", p, err)
			}
			results[i] = jobs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []domain.JobPosting
	for _, r := range results {
		out = append(out, r...)
	}
	for i := range out {
		out[i].Description = StripHTML(out[i].Description)
		if out[i].Skills == nil {
			out[i].Skills = []string{}
		}
	}
	return out, nil
}

func loadFile(path string) ([]domain.JobPosting, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var jobs []domain.JobPosting
	if err := json.Unmarshal(b, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// StripHTML flattens HTML-bearing feed descriptions to plain text so
// keyword matching sees words, not markup.
func StripHTML(s string) string {
	if !strings.Contains(s, "<") {
		return cleanText(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return cleanText(s)
	}
	return cleanText(doc.Text())
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	return strings.Join(strings.Fields(s), " ")
}
