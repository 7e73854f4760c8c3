package history

import (
	"context"
	"time"
)

const lowImpactThresholdKg = 20.0

// Badges computes the achievement badges earned as of date, given that
// day's total. Badges are recomputed on demand rather than stored.
func (s *Store) Badges(ctx context.Context, date time.Time, totalKg float64) ([]string, error) {
	var badges []string

	entries, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	if len(entries) > 0 {
		badges = append(badges, "First entry logged")
	}

	if totalKg > 0 && totalKg < lowImpactThresholdKg {
		badges = append(badges, "Low impact day")
	}

	streak, err := s.Streak(ctx, date)
	if err != nil {
		return nil, err
	}
	if streak >= 7 {
		badges = append(badges, "7-day streak")
	} else if streak >= 3 {
		badges = append(badges, "3-day streak")
	}

	totals, err := s.DailyTotals(ctx, 7)
	if err != nil {
		return nil, err
	}
	if len(totals) >= 3 {
		sum := 0.0
		for _, total := range totals {
			sum += total
		}
		avg := sum / float64(len(totals))
		if avg > 0 && totalKg < avg*0.9 {
			badges = append(badges, "Better than your week")
		}
	}

	return badges, nil
}
