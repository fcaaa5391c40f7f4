package spot

import "time"

type Spot struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Address   string    `db:"address" json:"address"`
	Covered   bool      `db:"covered" json:"covered"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Window is a bookable time window on a spot.
type Window struct {
	ID           int       `db:"id" json:"id"`
	SpotID       int       `db:"spot_id" json:"spot_id"`
	StartTime    time.Time `db:"start_time" json:"start_time"`
	EndTime      time.Time `db:"end_time" json:"end_time"`
	Capacity     int       `db:"capacity" json:"capacity"`
	PriceCredits int64     `db:"price_credits" json:"price_credits"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type WindowWithAvailability struct {
	Window
	ReservedCount int  `json:"reserved_count"`
	Available     int  `json:"available"`
	IsFull        bool `json:"is_full"`
}

type CreateSpotRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address" binding:"required"`
	Covered bool   `json:"covered"`
}

type CreateWindowRequest struct {
	StartTime    string `json:"start_time" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	Capacity     int    `json:"capacity" binding:"required,min=1"`
	PriceCredits int64  `json:"price_credits" binding:"gte=0"`
}
