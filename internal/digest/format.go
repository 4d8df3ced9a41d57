package digest

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	// EmptyMessage is the fixed text for a digest with no jobs.
	EmptyMessage = "No jobs in digest."

	// EmailSubject is the fixed subject for the mail-client handoff.
	EmailSubject = "Your 9AM Job Digest"

	titleLine   = "Top 10 Jobs For You — 9AM Digest"
	closingLine = "This digest was generated based on your preferences."
)

// FormatText renders a digest as the plain-text block handed to the
// clipboard and mail composer. The email body is this same text.
func FormatText(d *Digest) string {
	if d == nil || len(d.Jobs) == 0 {
		return EmptyMessage
	}

	var b strings.Builder
	b.WriteString(titleLine + "\n")
	b.WriteString(longDate(d.Date) + "\n\n")

	for i, j := range d.Jobs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, j.Title)
		fmt.Fprintf(&b, "   Company: %s\n", j.Company)
		fmt.Fprintf(&b, "   Location: %s (%s)\n", j.Location, j.Mode)
		fmt.Fprintf(&b, "   Experience: %s\n", j.Experience)
		fmt.Fprintf(&b, "   Match Score: %d\n", j.MatchScore)
		fmt.Fprintf(&b, "   Salary: %s\n", j.SalaryRange)
		fmt.Fprintf(&b, "   Apply: %s\n\n", j.ApplyURL)
	}

	b.WriteString(closingLine)
	return b.String()
}

// longDate renders a YYYY-MM-DD key as "Monday, January 2, 2006". The
// key is parsed as plain calendar ints so the rendered day never shifts
// with the machine's time zone.
func longDate(key string) string {
	var y, m, d int
	if _, err := fmt.Sscanf(key, "%d-%d-%d", &y, &m, &d); err != nil {
		return key
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.Local)
	return t.Format("Monday, January 2, 2006")
}

// MailtoURL composes the mail-client handoff link. Nothing is sent;
// the UI just opens it.
func MailtoURL(subject, body string) string {
	return "mailto:?subject=" + escape(subject) + "&body=" + escape(body)
}

// escape percent-encodes for a mailto URL; QueryEscape's "+" for space
// is not understood by mail clients, so spaces become %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
