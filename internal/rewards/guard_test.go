package rewards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateConversion_Valid(t *testing.T) {
	err := ValidateConversion(ConversionRequest{
		PointsToConvert:    500,
		AvailablePoints:    800,
		TripCount:          4,
		ConvertedThisMonth: 0,
	})
	require.NoError(t, err)
}

func TestValidateConversion_TooFewTrips(t *testing.T) {
	err := ValidateConversion(ConversionRequest{
		PointsToConvert:    500,
		AvailablePoints:    500,
		TripCount:          2,
		ConvertedThisMonth: 0,
	})
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestValidateConversion_BalanceBelowFloor(t *testing.T) {
	err := ValidateConversion(ConversionRequest{
		PointsToConvert:    400,
		AvailablePoints:    499,
		TripCount:          5,
		ConvertedThisMonth: 0,
	})
	assert.ErrorIs(t, err, ErrNotEligible)
}

func TestValidateConversion_MonthlyHeadroomTooSmall(t *testing.T) {
	// 50 points of headroom left; any request overshoots the cap.
	err := ValidateConversion(ConversionRequest{
		PointsToConvert:    100,
		AvailablePoints:    1200,
		TripCount:          6,
		ConvertedThisMonth: 1950,
	})
	assert.ErrorIs(t, err, ErrMonthlyCapExceeded)
}

func TestValidateConversion_BelowMinimum(t *testing.T) {
	err := ValidateConversion(ConversionRequest{
		PointsToConvert:    400,
		AvailablePoints:    800,
		TripCount:          5,
		ConvertedThisMonth: 0,
	})
	assert.ErrorIs(t, err, ErrBelowMinimum)
}

func TestValidateConversion_MoreThanAvailable(t *testing.T) {
	err := ValidateConversion(ConversionRequest{
		PointsToConvert:    900,
		AvailablePoints:    800,
		TripCount:          5,
		ConvertedThisMonth: 0,
	})
	assert.ErrorIs(t, err, ErrInsufficientPoints)
}

func TestValidateConversion_NotAWholeCredit(t *testing.T) {
	err := ValidateConversion(ConversionRequest{
		PointsToConvert:    550,
		AvailablePoints:    800,
		TripCount:          5,
		ConvertedThisMonth: 0,
	})
	assert.ErrorIs(t, err, ErrNotAnIncrement)
}

func TestValidateConversion_ExactCap(t *testing.T) {
	err := ValidateConversion(ConversionRequest{
		PointsToConvert:    500,
		AvailablePoints:    2500,
		TripCount:          8,
		ConvertedThisMonth: 1500,
	})
	require.NoError(t, err)
}

func TestEligible(t *testing.T) {
	assert.True(t, Eligible(500, 3, 0))
	assert.False(t, Eligible(499, 3, 0))
	assert.False(t, Eligible(500, 2, 0))
	assert.False(t, Eligible(500, 3, 1950))
}

func TestSuggestedConversion(t *testing.T) {
	assert.Equal(t, 0, SuggestedConversion(499, 0))
	assert.Equal(t, 500, SuggestedConversion(599, 0))
	assert.Equal(t, 700, SuggestedConversion(750, 0))
	// Capped by monthly headroom, rounded down to a whole credit.
	assert.Equal(t, 600, SuggestedConversion(5000, 1350))
	// Headroom below the floor means nothing worth suggesting.
	assert.Equal(t, 0, SuggestedConversion(5000, 1950))
	assert.Equal(t, 0, SuggestedConversion(5000, 2000))
}
