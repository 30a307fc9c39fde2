package engine

import (
	"math"
	"strings"
	"time"

	"wellness/internal/domain"
)

// Ranges a week must fall in, per bucket, to count as balanced.
const (
	minRestDays     = 1
	maxRestDays     = 3
	minActiveDays   = 2
	maxActiveDays   = 4
	minModerateDays = 2
	maxModerateDays = 4
)

const daysPerWeek = 7

// DayBalance is the classification of one day in the window. Impact is
// ImpactNone for unplanned days.
type DayBalance struct {
	Date   string               `json:"date"`
	Impact domain.BalanceImpact `json:"impact"`
	Events int                  `json:"events"`
}

// WeeklyBalance is the activity mix of a 7-day window.
type WeeklyBalance struct {
	WeekStart      string       `json:"weekStart"`
	RestDays       int          `json:"restDays"`
	ActiveDays     int          `json:"activeDays"`
	ModerateDays   int          `json:"moderateDays"`
	Balanced       bool         `json:"balanced"`
	Recommendation string       `json:"recommendation"`
	Score          int          `json:"score"`
	Days           []DayBalance `json:"days"`
}

// ComputeWeeklyBalance classifies the 7 days starting at weekStart's calendar
// day. Each day counts toward the highest-intensity impact among its events;
// days with no events, or only "none" events, count toward no bucket. Events
// outside the window are ignored. Event dates are compared by their own
// calendar day.
func ComputeWeeklyBalance(events []domain.CalendarEvent, weekStart time.Time) WeeklyBalance {
	start := truncateDay(weekStart)

	days := make([]DayBalance, daysPerWeek)
	index := make(map[string]int, daysPerWeek)
	for i := range days {
		d := start.AddDate(0, 0, i).Format(dayLayout)
		days[i] = DayBalance{Date: d, Impact: domain.ImpactNone}
		index[d] = i
	}

	for _, ev := range events {
		d := ev.EventDate.Format(dayLayout)
		i, ok := index[d]
		if !ok {
			continue
		}
		days[i].Events++
		if ev.BalanceImpact.Rank() > days[i].Impact.Rank() {
			days[i].Impact = ev.BalanceImpact
		}
	}

	b := WeeklyBalance{WeekStart: start.Format(dayLayout), Days: days}
	for _, d := range days {
		switch d.Impact {
		case domain.ImpactRest:
			b.RestDays++
		case domain.ImpactModerate:
			b.ModerateDays++
		case domain.ImpactActive:
			b.ActiveDays++
		}
	}
	b.Balanced, b.Recommendation = recommend(b.RestDays, b.ActiveDays, b.ModerateDays)
	b.Score = BalanceScore(b)
	return b
}

// BalanceScore is the share of the week with any classified plan, 0-100. It
// says nothing about whether the plan is balanced.
func BalanceScore(b WeeklyBalance) int {
	planned := b.RestDays + b.ActiveDays + b.ModerateDays
	score := int(math.Round(float64(planned) / daysPerWeek * 100))
	return min(score, 100)
}

func recommend(rest, active, moderate int) (bool, string) {
	var tips []string
	switch {
	case rest < minRestDays:
		tips = append(tips, "Not enough rest: schedule at least one rest day so your body can recover.")
	case rest > maxRestDays:
		tips = append(tips, "Too many rest days: swap one for a moderate session like a walk or yoga.")
	}
	switch {
	case active < minActiveDays:
		tips = append(tips, "Too few active days: add a higher-intensity workout to reach at least two.")
	case active > maxActiveDays:
		tips = append(tips, "Too many active days: trade one intense session for rest or moderate work.")
	}
	switch {
	case moderate < minModerateDays:
		tips = append(tips, "Too few moderate days: mix in lighter movement between hard sessions.")
	case moderate > maxModerateDays:
		tips = append(tips, "Too many moderate days: turn one into a harder workout or a full rest day.")
	}
	if len(tips) == 0 {
		return true, "Well balanced week: a healthy mix of rest, moderate and active days."
	}
	return false, strings.Join(tips, " ")
}
