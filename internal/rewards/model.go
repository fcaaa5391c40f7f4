package rewards

// ReservationFact is the read-only view of a completed or upcoming
// reservation that the points engine consumes. Optional fields stay nil
// when the driver never supplied them.
type ReservationFact struct {
	StartTime         string   `json:"start_time"`
	DistanceKm        *float64 `json:"distance_km,omitempty"`
	CO2EstimatedGrams *float64 `json:"co2_estimated_grams,omitempty"`
}

// PointsBreakdown is the per-reservation result of the points formula.
// DistanceKm echoes the driver-supplied distance and stays null when the
// fact carried none, even though scoring then assumes the baseline.
type PointsBreakdown struct {
	Points          int      `json:"points"`
	CO2SavingsGrams float64  `json:"co2_savings_grams"`
	DistanceKm      *float64 `json:"distance_km"`
	OffPeakBonus    int      `json:"off_peak_bonus"`
}

type ActivityItem struct {
	Label  string `json:"label"`
	Date   string `json:"date"`
	Points int    `json:"points"`
}

type ActivitySummary struct {
	TotalPoints    int            `json:"total_points"`
	TripCount      int            `json:"trip_count"`
	TotalSavingsKg float64        `json:"total_savings_kg"`
	RecentActivity []ActivityItem `json:"recent_activity"`
}

// Redemption record kinds.
const (
	KindWallet = "wallet"
	KindReward = "reward"
)

// RedemptionRecord is one entry in a user's redemption ledger.
// Credits and Title are only set for their respective kinds.
type RedemptionRecord struct {
	ID        string `json:"id"`
	Kind      string `json:"kind"`
	Points    int    `json:"points"`
	Credits   int64  `json:"credits,omitempty"`
	Title     string `json:"title,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Reward is a catalog item redeemable for points.
type Reward struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Points int    `json:"points"`
}

// DefaultCatalog returns the built-in reward catalog.
func DefaultCatalog() []Reward {
	return []Reward{
		{ID: "free-hour", Title: "One free parking hour", Points: 600},
		{ID: "ev-charge", Title: "Free EV charging session", Points: 900},
		{ID: "car-wash", Title: "Eco car wash voucher", Points: 1200},
	}
}

type ConvertRequest struct {
	Points int `json:"points" binding:"required"`
}

type RedeemRequest struct {
	RewardID string `json:"reward_id" binding:"required"`
}

// SummaryResponse is the aggregate rewards view returned to a user.
type SummaryResponse struct {
	TotalPoints         int            `json:"total_points"`
	RedeemedPoints      int            `json:"redeemed_points"`
	AvailablePoints     int            `json:"available_points"`
	TripCount           int            `json:"trip_count"`
	TotalSavingsKg      float64        `json:"total_savings_kg"`
	RecentActivity      []ActivityItem `json:"recent_activity"`
	Tier                TierStatus     `json:"tier"`
	ConvertedThisMonth  int            `json:"converted_this_month"`
	SuggestedConversion int            `json:"suggested_conversion"`
	CanConvert          bool           `json:"can_convert"`
}
