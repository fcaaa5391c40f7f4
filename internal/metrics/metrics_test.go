package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()
	HTTPRequestDuration.Reset()

	RecordHTTPRequest("GET", "/rewards/summary", "200", 0.5)

	count := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/rewards/summary", "200"))
	assert.Equal(t, float64(1), count)
}

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/auth/login", "200", 0.1)
	RecordHTTPRequest("POST", "/auth/login", "200", 0.2)
	RecordHTTPRequest("POST", "/auth/login", "401", 0.05)

	successCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "200"))
	failCount := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/auth/login", "401"))

	assert.Equal(t, float64(2), successCount)
	assert.Equal(t, float64(1), failCount)
}

func TestRecordReservation(t *testing.T) {
	ReservationsTotal.Reset()

	RecordReservation("reserved")
	RecordReservation("reserved")
	RecordReservation("cancelled")

	reserved := testutil.ToFloat64(ReservationsTotal.WithLabelValues("reserved"))
	cancelled := testutil.ToFloat64(ReservationsTotal.WithLabelValues("cancelled"))

	assert.Equal(t, float64(2), reserved)
	assert.Equal(t, float64(1), cancelled)
}

func TestRecordReservationCancellation(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "ecospot_reservation_cancellations_total_test",
			Help: "Total number of reservation cancellations",
		},
	)

	oldCounter := ReservationCancellationsTotal
	ReservationCancellationsTotal = testCounter
	defer func() { ReservationCancellationsTotal = oldCounter }()

	RecordReservationCancellation()
	RecordReservationCancellation()

	count := testutil.ToFloat64(testCounter)
	assert.Equal(t, float64(2), count)
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("reservation_confirmation", "success")
	RecordEmail("reservation_confirmation", "failed")
	RecordEmail("conversion_confirmation", "success")

	confirmSuccess := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("reservation_confirmation", "success"))
	confirmFailed := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("reservation_confirmation", "failed"))
	conversionSuccess := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("conversion_confirmation", "success"))

	assert.Equal(t, float64(1), confirmSuccess)
	assert.Equal(t, float64(1), confirmFailed)
	assert.Equal(t, float64(1), conversionSuccess)
}

func TestRecordPointsConversion(t *testing.T) {
	conversions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ecospot_points_conversions_total_test",
	})
	converted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ecospot_points_converted_total_test",
	})

	oldConversions, oldConverted := PointsConversionsTotal, PointsConvertedTotal
	PointsConversionsTotal, PointsConvertedTotal = conversions, converted
	defer func() {
		PointsConversionsTotal, PointsConvertedTotal = oldConversions, oldConverted
	}()

	RecordPointsConversion(500)
	RecordPointsConversion(700)

	assert.Equal(t, float64(2), testutil.ToFloat64(conversions))
	assert.Equal(t, float64(1200), testutil.ToFloat64(converted))
}

func TestRecordConversionRejection(t *testing.T) {
	ConversionRejectionsTotal.Reset()

	RecordConversionRejection("below_minimum")
	RecordConversionRejection("below_minimum")
	RecordConversionRejection("monthly_cap_exceeded")

	belowMin := testutil.ToFloat64(ConversionRejectionsTotal.WithLabelValues("below_minimum"))
	capHit := testutil.ToFloat64(ConversionRejectionsTotal.WithLabelValues("monthly_cap_exceeded"))

	assert.Equal(t, float64(2), belowMin)
	assert.Equal(t, float64(1), capHit)
}

func TestRecordRewardRedemption(t *testing.T) {
	RewardRedemptionsTotal.Reset()

	RecordRewardRedemption("free-hour")
	RecordRewardRedemption("free-hour")

	count := testutil.ToFloat64(RewardRedemptionsTotal.WithLabelValues("free-hour"))
	assert.Equal(t, float64(2), count)
}

func TestRecordLedgerCorruption(t *testing.T) {
	testCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ecospot_rewards_ledger_corruptions_total_test",
	})

	oldCounter := LedgerCorruptionsTotal
	LedgerCorruptionsTotal = testCounter
	defer func() { LedgerCorruptionsTotal = oldCounter }()

	RecordLedgerCorruption()

	assert.Equal(t, float64(1), testutil.ToFloat64(testCounter))
}

func TestEmailQueueLength(t *testing.T) {
	EmailQueueLength.Set(10)
	assert.Equal(t, float64(10), testutil.ToFloat64(EmailQueueLength))

	EmailQueueLength.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(EmailQueueLength))
}

func TestWalletBalance(t *testing.T) {
	WalletBalance.Reset()

	WalletBalance.WithLabelValues("42").Set(150)
	assert.Equal(t, float64(150), testutil.ToFloat64(WalletBalance.WithLabelValues("42")))

	WalletBalance.WithLabelValues("42").Set(210)
	assert.Equal(t, float64(210), testutil.ToFloat64(WalletBalance.WithLabelValues("42")))
}
