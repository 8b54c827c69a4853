// Package gate decides whether a composed post may be published: duplicate
// check first, then daily and monthly quota. The decision is advisory — it is
// recomputed from the posts table on every call and holds no lock.
package gate

import (
	"fmt"
	"time"

	"github.com/adivyas/khabri/internal/store"
)

// Verdict is the outcome of one gate check.
type Verdict string

const (
	Allowed            Verdict = "allowed"
	DeniedDuplicate    Verdict = "denied_duplicate"
	DeniedDailyQuota   Verdict = "denied_daily_quota"
	DeniedMonthlyQuota Verdict = "denied_monthly_quota"
)

// Denied reports whether the verdict blocks publishing.
func (v Verdict) Denied() bool { return v != Allowed }

// Gate combines the history store with the configured caps.
type Gate struct {
	store   *store.Store
	daily   int
	monthly int
	now     func() time.Time
}

// New builds a Gate with the given caps.
func New(s *store.Store, dailyCap, monthlyCap int) *Gate {
	return &Gate{store: s, daily: dailyCap, monthly: monthlyCap, now: time.Now}
}

// WithClock overrides the time source. Calendar boundary behavior is only
// testable with an injected clock.
func (g *Gate) WithClock(now func() time.Time) *Gate {
	g.now = now
	return g
}

// Check runs the duplicate check and then the quota checks for the given
// fingerprint. Quota counters are derived fresh from the posts table; there
// is no separate counter state to drift.
func (g *Gate) Check(hash string) (Verdict, error) {
	seen, err := g.store.HasPosted(hash)
	if err != nil {
		return "", fmt.Errorf("duplicate check: %w", err)
	}
	if seen {
		return DeniedDuplicate, nil
	}

	now := g.now().UTC()

	dayStart, dayEnd := DayBounds(now)
	daily, err := g.store.CountPostedBetween(dayStart, dayEnd)
	if err != nil {
		return "", fmt.Errorf("daily count: %w", err)
	}
	if daily >= g.daily {
		return DeniedDailyQuota, nil
	}

	monthStart, monthEnd := MonthBounds(now)
	monthly, err := g.store.CountPostedBetween(monthStart, monthEnd)
	if err != nil {
		return "", fmt.Errorf("monthly count: %w", err)
	}
	if monthly >= g.monthly {
		return DeniedMonthlyQuota, nil
	}

	return Allowed, nil
}

// Counts returns the current daily and monthly post counts.
func (g *Gate) Counts() (daily, monthly int, err error) {
	now := g.now().UTC()
	dayStart, dayEnd := DayBounds(now)
	daily, err = g.store.CountPostedBetween(dayStart, dayEnd)
	if err != nil {
		return 0, 0, fmt.Errorf("daily count: %w", err)
	}
	monthStart, monthEnd := MonthBounds(now)
	monthly, err = g.store.CountPostedBetween(monthStart, monthEnd)
	if err != nil {
		return 0, 0, fmt.Errorf("monthly count: %w", err)
	}
	return daily, monthly, nil
}

// DayBounds returns [start of the UTC calendar day, start of the next day).
func DayBounds(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// MonthBounds returns [start of the UTC calendar month, start of the next
// month). December rolls over to January of the next year.
func MonthBounds(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}
