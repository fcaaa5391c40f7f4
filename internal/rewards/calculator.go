package rewards

import (
	"math"
	"time"
)

// Points formula constants. Distances are kilometers, emissions grams of CO2.
const (
	BaselineDistanceKm   = 5.0
	EmissionFactorGPerKm = 250.0
	CO2PointsDivisor     = 10.0
	DistancePointsPerKm  = 15.0
	OffPeakBonusPoints   = 50

	offPeakMorningEnd   = 7
	offPeakEveningStart = 19
)

// ComputePoints scores a single reservation. The score rewards parking
// closer than the citywide baseline commute: saved CO2 grams divided by
// CO2PointsDivisor, plus DistancePointsPerKm per kilometer under the
// baseline, plus a flat bonus for off-peak start times. Savings never go
// negative, so a trip longer than the baseline simply earns zero from
// those terms.
func ComputePoints(fact ReservationFact) PointsBreakdown {
	baselineCO2 := BaselineDistanceKm * EmissionFactorGPerKm

	distance := BaselineDistanceKm
	var reportedDistance *float64
	if fact.DistanceKm != nil && !math.IsNaN(*fact.DistanceKm) {
		distance = *fact.DistanceKm
		reportedDistance = fact.DistanceKm
	}

	estimatedCO2 := distance * EmissionFactorGPerKm
	if fact.CO2EstimatedGrams != nil && !math.IsNaN(*fact.CO2EstimatedGrams) {
		estimatedCO2 = *fact.CO2EstimatedGrams
	}

	co2Savings := math.Max(0, baselineCO2-estimatedCO2)
	distanceSavings := math.Max(0, BaselineDistanceKm-distance)

	bonus := 0
	if isOffPeak(fact.StartTime) {
		bonus = OffPeakBonusPoints
	}

	points := int(math.Round(co2Savings/CO2PointsDivisor + distanceSavings*DistancePointsPerKm))
	points += bonus

	return PointsBreakdown{
		Points:          points,
		CO2SavingsGrams: co2Savings,
		DistanceKm:      reportedDistance,
		OffPeakBonus:    bonus,
	}
}

// isOffPeak judges the hour in the timestamp's own offset, so a booking
// made for 06:30 local time stays off-peak regardless of server zone.
// Unparseable timestamps earn no bonus.
func isOffPeak(startTime string) bool {
	t, err := time.Parse(time.RFC3339, startTime)
	if err != nil {
		return false
	}
	h := t.Hour()
	return h < offPeakMorningEnd || h >= offPeakEveningStart
}
