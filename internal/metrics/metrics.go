package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecospot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ecospot_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecospot_reservations_total",
			Help: "Total number of parking reservations",
		},
		[]string{"status"},
	)

	ReservationCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecospot_reservation_cancellations_total",
			Help: "Total number of reservation cancellations",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecospot_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "ecospot_email_queue_length",
			Help: "Current length of email queue",
		},
	)

	WalletTopUpsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecospot_wallet_topups_total",
			Help: "Total number of wallet top-ups",
		},
	)

	WalletBalance = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "ecospot_wallet_balance_credits",
			Help: "Current wallet balance in credits",
		},
		[]string{"user_id"},
	)

	PointsConversionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecospot_points_conversions_total",
			Help: "Total number of points-to-credit conversions",
		},
	)

	PointsConvertedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecospot_points_converted_total",
			Help: "Total points converted into wallet credits",
		},
	)

	ConversionRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecospot_conversion_rejections_total",
			Help: "Total number of rejected conversion attempts",
		},
		[]string{"reason"},
	)

	RewardRedemptionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ecospot_reward_redemptions_total",
			Help: "Total number of catalog reward redemptions",
		},
		[]string{"reward_id"},
	)

	LedgerCorruptionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ecospot_rewards_ledger_corruptions_total",
			Help: "Times the redemption ledger was unreadable and reset to empty",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordReservation(status string) {
	ReservationsTotal.WithLabelValues(status).Inc()
}

func RecordReservationCancellation() {
	ReservationCancellationsTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}

func RecordWalletTopUp() {
	WalletTopUpsTotal.Inc()
}

func RecordPointsConversion(points int) {
	PointsConversionsTotal.Inc()
	PointsConvertedTotal.Add(float64(points))
}

func RecordConversionRejection(reason string) {
	ConversionRejectionsTotal.WithLabelValues(reason).Inc()
}

func RecordRewardRedemption(rewardID string) {
	RewardRedemptionsTotal.WithLabelValues(rewardID).Inc()
}

func RecordLedgerCorruption() {
	LedgerCorruptionsTotal.Inc()
}
