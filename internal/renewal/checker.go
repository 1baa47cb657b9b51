package renewal

import (
	"log/slog"
	"sort"
	"time"

	"scoutsie/internal/config"
	"scoutsie/internal/roster"
)

// Credential is a completed safeguarding or vetting requirement with its
// computed expiry.
type Credential struct {
	Completed time.Time
	Expires   time.Time
	DaysUntil int
}

// Record groups the credentials of one person due for renewal.
// Identity is the printed name only; two members sharing a name collide.
type Record struct {
	Name         string
	Email        string
	Safeguarding *Credential
	Vetting      *Credential
}

// ExpiredItem is a single lapsed credential.
type ExpiredItem struct {
	Name        string
	Email       string
	Kind        string // "Safeguarding" or "Vetting"
	Completed   time.Time
	Expires     time.Time
	DaysExpired int
}

// Report is the result of a compliance check.
type Report struct {
	Now       time.Time
	WindowEnd time.Time
	DueSoon   []*Record
	Expired   []*ExpiredItem
}

// Checker classifies member credentials against the renewal window.
type Checker struct {
	cfg    config.RenewalsConfig
	logger *slog.Logger
}

// NewChecker creates a compliance checker.
func NewChecker(cfg config.RenewalsConfig, logger *slog.Logger) *Checker {
	return &Checker{
		cfg:    cfg,
		logger: logger.With("component", "renewal_checker"),
	}
}

// Check walks the training and vetting rows and builds the renewal report.
// Rows with missing or unparseable dates are skipped, not reported.
func (c *Checker) Check(training []roster.TrainingRow, vetting []roster.VettingRow, now time.Time) *Report {
	windowEnd := now.AddDate(0, 0, c.cfg.WindowDays)
	report := &Report{Now: now, WindowEnd: windowEnd}
	dueByName := make(map[string]*Record)

	for _, row := range training {
		completed := latestSafeguarding(row.Courses)
		if completed.IsZero() {
			continue
		}
		cred := c.credential(completed, now)

		switch {
		case c.inWindow(cred.Expires, now, windowEnd):
			rec := dueByName[row.Name()]
			if rec == nil {
				rec = &Record{Name: row.Name(), Email: row.Email}
				dueByName[row.Name()] = rec
			}
			rec.Safeguarding = cred
		case cred.Expires.Before(now):
			report.Expired = append(report.Expired, expiredItem(row.Name(), row.Email, "Safeguarding", cred, now))
		}
	}

	for _, row := range vetting {
		completed := ParseVettingDate(row.LatestCompletion)
		if completed.IsZero() {
			continue
		}
		cred := c.credential(completed, now)

		switch {
		case c.inWindow(cred.Expires, now, windowEnd):
			rec := dueByName[row.Name()]
			if rec == nil {
				rec = &Record{Name: row.Name(), Email: row.Email}
				dueByName[row.Name()] = rec
			}
			rec.Vetting = cred
		case cred.Expires.Before(now):
			report.Expired = append(report.Expired, expiredItem(row.Name(), row.Email, "Vetting", cred, now))
		}
	}

	report.DueSoon = make([]*Record, 0, len(dueByName))
	for _, rec := range dueByName {
		report.DueSoon = append(report.DueSoon, rec)
	}
	sort.SliceStable(report.DueSoon, func(i, j int) bool {
		return minDaysUntil(report.DueSoon[i]) < minDaysUntil(report.DueSoon[j])
	})
	sort.SliceStable(report.Expired, func(i, j int) bool {
		return report.Expired[i].DaysExpired < report.Expired[j].DaysExpired
	})

	c.logger.Info("compliance check complete",
		"training_rows", len(training),
		"vetting_rows", len(vetting),
		"due_soon", len(report.DueSoon),
		"expired", len(report.Expired),
	)

	return report
}

// credential computes the expiry for a completion date.
func (c *Checker) credential(completed, now time.Time) *Credential {
	expires := completed.AddDate(0, 0, c.cfg.ValidityDays)
	return &Credential{
		Completed: completed,
		Expires:   expires,
		DaysUntil: daysBetween(now, expires),
	}
}

// inWindow reports whether an expiry needs renewal: inclusive at both ends.
func (c *Checker) inWindow(expires, now, windowEnd time.Time) bool {
	return !expires.Before(now) && !expires.After(windowEnd)
}

// latestSafeguarding returns the most recent safeguarding completion across
// all training-course cells, or the zero time when none qualify.
func latestSafeguarding(courses []string) time.Time {
	var latest time.Time
	for _, text := range courses {
		if d := SafeguardingDate(text); d.After(latest) {
			latest = d
		}
	}
	return latest
}

func expiredItem(name, email, kind string, cred *Credential, now time.Time) *ExpiredItem {
	return &ExpiredItem{
		Name:        name,
		Email:       email,
		Kind:        kind,
		Completed:   cred.Completed,
		Expires:     cred.Expires,
		DaysExpired: daysBetween(cred.Expires, now),
	}
}

// minDaysUntil sorts people by their most urgent credential.
func minDaysUntil(rec *Record) int {
	days := 999
	if rec.Safeguarding != nil && rec.Safeguarding.DaysUntil < days {
		days = rec.Safeguarding.DaysUntil
	}
	if rec.Vetting != nil && rec.Vetting.DaysUntil < days {
		days = rec.Vetting.DaysUntil
	}
	return days
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
