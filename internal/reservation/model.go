package reservation

import "time"

const (
	StatusReserved  = "reserved"
	StatusCancelled = "cancelled"
)

type Reservation struct {
	ID                int       `db:"id" json:"id"`
	UserID            int       `db:"user_id" json:"user_id"`
	WindowID          int       `db:"window_id" json:"window_id"`
	Status            string    `db:"status" json:"status"`
	DistanceKm        *float64  `db:"distance_km" json:"distance_km,omitempty"`
	CO2EstimatedGrams *float64  `db:"co2_estimated_grams" json:"co2_estimated_grams,omitempty"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

type ReservationWithDetails struct {
	Reservation
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	SpotName    string    `db:"spot_name" json:"spot_name"`
	SpotAddress string    `db:"spot_address" json:"spot_address"`
	UserName    string    `db:"user_name" json:"user_name"`
	UserEmail   string    `db:"user_email" json:"user_email"`
}

// ReserveRequest carries the optional trip data the driver shares when
// reserving. Both fields feed the Eco-Rewards points engine.
type ReserveRequest struct {
	DistanceKm        *float64 `json:"distance_km" binding:"omitempty,gte=0"`
	CO2EstimatedGrams *float64 `json:"co2_estimated_grams" binding:"omitempty,gte=0"`
}
