package app

import (
	"context"
	"fmt"
	"time"

	"wellness/internal/domain"
)

const maxChartDays = 366

// ChartsService encapsulates chart data retrieval use cases.
type ChartsService struct {
	weightRepo  domain.WeightRepository
	calorieRepo domain.CalorieRepository
	Now         Clock
}

// NewChartsService creates a ChartsService backed by the given repositories.
func NewChartsService(wr domain.WeightRepository, cr domain.CalorieRepository) *ChartsService {
	return &ChartsService{weightRepo: wr, calorieRepo: cr, Now: time.Now}
}

// DayPoint is a single data point returned by GetDaily.
type DayPoint struct {
	Day      string        `json:"day"`
	Weight   *WeightPoint  `json:"weight"`
	Calories *CaloriePoint `json:"calories"`
}

// WeightPoint is the optional weight value within a DayPoint.
type WeightPoint struct {
	Value float64           `json:"value"`
	Unit  domain.WeightUnit `json:"unit"`
}

// CaloriePoint is the optional calorie ledger within a DayPoint.
type CaloriePoint struct {
	Target   int `json:"target"`
	Consumed int `json:"consumed"`
}

// GetDaily returns per-day chart data for the last days days, oldest first,
// with weights converted to the requested unit.
func (s *ChartsService) GetDaily(ctx context.Context, userID int64, days int, unit string) ([]DayPoint, error) {
	u, err := domain.ParseWeightUnit(unit)
	if err != nil {
		return nil, invalid("%v", err)
	}
	if days <= 0 {
		return nil, invalid("days must be > 0")
	}
	if days > maxChartDays {
		days = maxChartDays
	}

	today := s.Now()
	first := today.AddDate(0, 0, -(days - 1)).Format(dayLayout)
	tracking, err := s.calorieRepo.ListDailyTrackingRange(ctx, userID, first, today.Format(dayLayout))
	if err != nil {
		return nil, fmt.Errorf("load calorie range: %w", err)
	}
	byDay := make(map[string]domain.DailyCalorieTracking, len(tracking))
	for _, t := range tracking {
		byDay[t.Day] = t
	}

	points := make([]DayPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		dayStr := today.AddDate(0, 0, -i).Format(dayLayout)

		entry, err := s.weightRepo.LatestWeightForLocalDay(ctx, userID, dayStr)
		if err != nil {
			return nil, err
		}

		p := DayPoint{Day: dayStr}
		if entry != nil {
			p.Weight = &WeightPoint{Value: entry.WeightIn(u), Unit: u}
		}
		if t, ok := byDay[dayStr]; ok {
			p.Calories = &CaloriePoint{Target: t.TargetCalories, Consumed: t.ConsumedCalories}
		}
		points = append(points, p)
	}
	return points, nil
}
