package digest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatText_Empty(t *testing.T) {
	assert.Equal(t, EmptyMessage, FormatText(nil))
	assert.Equal(t, EmptyMessage, FormatText(&Digest{Date: "2026-08-31", IsEmpty: true, Jobs: []Entry{}}))
}

func TestFormatText_RendersEntriesInRankOrder(t *testing.T) {
	d := &Digest{
		Date:        "2026-01-05",
		GeneratedAt: "2026-01-05T09:00:00Z",
		Jobs: []Entry{
			{
				ID: 1, Title: "Platform Engineer", Company: "Stackmint",
				Location: "Remote", Mode: "Remote", Experience: "3-5",
				MatchScore: 75, SalaryRange: "24-32 LPA",
				ApplyURL: "https://stackmint.example/jobs/platform-14", PostedDaysAgo: 0,
			},
			{
				ID: 2, Title: "Data Engineer", Company: "Meridian Analytics",
				Location: "Hyderabad", Mode: "Remote", Experience: "1-3",
				MatchScore: 50, SalaryRange: "14-20 LPA",
				ApplyURL: "https://meridian.example/jobs/data-eng-3", PostedDaysAgo: 2,
			},
		},
	}

	text := FormatText(d)

	lines := strings.Split(text, "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "Top 10 Jobs For You — 9AM Digest", lines[0])
	// 2026-01-05 is a Monday; rendered from calendar ints, no tz shift
	assert.Equal(t, "Monday, January 5, 2026", lines[1])

	// each job appears exactly once, in rank order
	assert.Equal(t, 1, strings.Count(text, "Platform Engineer"))
	assert.Equal(t, 1, strings.Count(text, "Data Engineer"))
	assert.Equal(t, 1, strings.Count(text, "https://stackmint.example/jobs/platform-14"))
	assert.Equal(t, 1, strings.Count(text, "https://meridian.example/jobs/data-eng-3"))
	assert.Less(t,
		strings.Index(text, "1. Platform Engineer"),
		strings.Index(text, "2. Data Engineer"))

	assert.Contains(t, text, "   Company: Stackmint")
	assert.Contains(t, text, "   Location: Hyderabad (Remote)")
	assert.Contains(t, text, "   Experience: 3-5")
	assert.Contains(t, text, "   Match Score: 75")
	assert.Contains(t, text, "   Salary: 24-32 LPA")
	assert.True(t, strings.HasSuffix(text, "This digest was generated based on your preferences."))
}

func TestMailtoURL(t *testing.T) {
	u := MailtoURL("Your 9AM Job Digest", "hello world\nsecond line")
	assert.True(t, strings.HasPrefix(u, "mailto:?subject="))
	assert.Contains(t, u, "Your%209AM%20Job%20Digest")
	assert.Contains(t, u, "hello%20world%0Asecond%20line")
	assert.NotContains(t, u, "+")
}
