package engine

import (
	"math"
	"time"

	"wellness/internal/domain"
)

// activityMultipliers maps activity levels to their TDEE multiplier. It is
// also the set of accepted activity levels.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// kcalPerLbWeek is the daily surplus or deficit for one pound per week
// (3500 kcal per pound spread over seven days).
const kcalPerLbWeek = 500

const (
	defaultWeeklyPace = 1.0
	maxWeeklyPace     = 2.0
)

// ValidActivityLevel reports whether level has a TDEE multiplier.
func ValidActivityLevel(level string) bool {
	_, ok := activityMultipliers[level]
	return ok
}

// BaseTarget is the derived daily calorie budget before adherence feedback.
type BaseTarget struct {
	BMR    int `json:"bmr"`
	TDEE   int `json:"tdee"`
	Budget int `json:"budget"`
}

// ComputeBaseTarget derives BMR (Mifflin-St Jeor), TDEE and a goal-adjusted
// daily budget from the profile. ok is false when a profile field is missing
// or implausible. A nil goal is treated as maintaining.
func ComputeBaseTarget(p *domain.MetabolicProfile, goal *domain.UserGoal, now time.Time) (BaseTarget, bool) {
	if p == nil || p.Sex == nil || p.BirthDate == nil || p.HeightCM == nil ||
		p.WeightLbs == nil || p.ActivityLevel == nil {
		return BaseTarget{}, false
	}

	age := now.Year() - p.BirthDate.Year()
	if now.Before(p.BirthDate.AddDate(age, 0, 0)) {
		age--
	}
	if age < 0 || age > 130 {
		return BaseTarget{}, false
	}

	mult, ok := activityMultipliers[*p.ActivityLevel]
	if !ok {
		return BaseTarget{}, false
	}

	weightKG := domain.ConvertWeight(*p.WeightLbs, domain.UnitLbs, domain.UnitKG)
	bmr := 10*weightKG + 6.25**p.HeightCM - 5*float64(age)
	if *p.Sex == "male" {
		bmr += 5
	} else {
		bmr -= 161
	}
	tdee := bmr * mult

	budget := tdee
	if goal != nil {
		pace := defaultWeeklyPace
		if goal.WeeklyGoal != nil && *goal.WeeklyGoal != 0 {
			pace = math.Min(math.Abs(*goal.WeeklyGoal), maxWeeklyPace)
		}
		switch goal.GoalType {
		case domain.GoalCutting:
			budget = tdee - pace*kcalPerLbWeek
		case domain.GoalBulking:
			budget = tdee + pace*kcalPerLbWeek
		}
	}
	budget = math.Max(budget, MinDailyTarget)

	return BaseTarget{
		BMR:    int(math.Round(bmr)),
		TDEE:   int(math.Round(tdee)),
		Budget: int(math.Round(budget)),
	}, true
}
