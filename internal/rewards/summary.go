package rewards

import "time"

const recentActivityLimit = 3

// Summarize folds a user's reservation facts into lifetime totals plus a
// short recent-activity feed. Facts are expected newest first; the feed
// keeps at most recentActivityLimit entries.
func Summarize(facts []ReservationFact) ActivitySummary {
	summary := ActivitySummary{
		RecentActivity: []ActivityItem{},
	}

	var savingsGrams float64
	for _, fact := range facts {
		b := ComputePoints(fact)
		summary.TotalPoints += b.Points
		summary.TripCount++
		savingsGrams += b.CO2SavingsGrams

		if len(summary.RecentActivity) < recentActivityLimit {
			summary.RecentActivity = append(summary.RecentActivity, ActivityItem{
				Label:  activityLabel(b),
				Date:   activityDate(fact.StartTime),
				Points: b.Points,
			})
		}
	}

	summary.TotalSavingsKg = savingsGrams / 1000

	return summary
}

func activityLabel(b PointsBreakdown) string {
	switch {
	case b.OffPeakBonus > 0:
		return "Off-peak booking"
	case b.CO2SavingsGrams > 0:
		return "Eco-friendly booking"
	default:
		return "Smart booking"
	}
}

func activityDate(startTime string) string {
	t, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return ""
	}
	return t.Format("Jan 2")
}
