package rewards

import "errors"

// Conversion policy constants. Points convert to wallet credits in whole
// credit increments only.
const (
	MinConvertPoints       = 500
	PointsPerCredit        = 100
	MonthlyConversionLimit = 2000
	MinTripsForConversion  = 3
)

// Conversion and redemption failures, ordered roughly by how early the
// guard raises them.
var (
	ErrNotEligible        = errors.New("not eligible for conversion")
	ErrBelowMinimum       = errors.New("conversion below minimum")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrMonthlyCapExceeded = errors.New("monthly conversion limit exceeded")
	ErrNotAnIncrement     = errors.New("points not a whole credit increment")
)

// ConversionRequest carries everything the guard needs to judge one
// conversion attempt. All counts are points.
type ConversionRequest struct {
	PointsToConvert    int
	AvailablePoints    int
	TripCount          int
	ConvertedThisMonth int
}

// Eligible reports whether the account may convert anything at all this
// month, independent of a requested amount.
func Eligible(availablePoints, tripCount, convertedThisMonth int) bool {
	return tripCount >= MinTripsForConversion &&
		availablePoints >= MinConvertPoints &&
		MonthlyConversionLimit-convertedThisMonth >= PointsPerCredit
}

// ValidateConversion checks one conversion attempt against the policy.
// Account-level eligibility is judged first, then the monthly cap, then
// the per-request amount rules, so callers get the most actionable error.
func ValidateConversion(req ConversionRequest) error {
	if req.TripCount < MinTripsForConversion || req.AvailablePoints < MinConvertPoints {
		return ErrNotEligible
	}

	remaining := MonthlyConversionLimit - req.ConvertedThisMonth
	if req.PointsToConvert > remaining {
		return ErrMonthlyCapExceeded
	}

	if req.PointsToConvert < MinConvertPoints {
		return ErrBelowMinimum
	}

	if req.PointsToConvert > req.AvailablePoints {
		return ErrInsufficientPoints
	}

	if req.PointsToConvert%PointsPerCredit != 0 {
		return ErrNotAnIncrement
	}

	return nil
}

// SuggestedConversion returns the largest convertible amount given the
// balance and the monthly headroom, or 0 when nothing can be converted.
func SuggestedConversion(availablePoints, convertedThisMonth int) int {
	if availablePoints < MinConvertPoints {
		return 0
	}

	remaining := MonthlyConversionLimit - convertedThisMonth
	n := availablePoints
	if remaining < n {
		n = remaining
	}
	if n < 0 {
		n = 0
	}

	n = n / PointsPerCredit * PointsPerCredit
	if n < MinConvertPoints {
		return 0
	}
	return n
}

// RejectReason maps a guard error to a stable metric label.
func RejectReason(err error) string {
	switch {
	case errors.Is(err, ErrNotEligible):
		return "not_eligible"
	case errors.Is(err, ErrBelowMinimum):
		return "below_minimum"
	case errors.Is(err, ErrInsufficientPoints):
		return "insufficient_points"
	case errors.Is(err, ErrMonthlyCapExceeded):
		return "monthly_cap_exceeded"
	case errors.Is(err, ErrNotAnIncrement):
		return "not_an_increment"
	default:
		return "other"
	}
}

// RejectMessage maps a guard error to a user-facing explanation.
func RejectMessage(err error) string {
	switch {
	case errors.Is(err, ErrNotEligible):
		return "You need at least 3 trips and 500 points before converting."
	case errors.Is(err, ErrBelowMinimum):
		return "Conversions start at 500 points."
	case errors.Is(err, ErrInsufficientPoints):
		return "You don't have that many points available."
	case errors.Is(err, ErrMonthlyCapExceeded):
		return "You've reached this month's conversion limit."
	case errors.Is(err, ErrNotAnIncrement):
		return "Points convert in increments of 100."
	default:
		return "Conversion could not be completed."
	}
}
