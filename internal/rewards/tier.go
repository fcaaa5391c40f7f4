package rewards

// Tier is a loyalty level unlocked by available points.
type Tier struct {
	Name      string `json:"name"`
	MinPoints int    `json:"min_points"`
	Color     string `json:"color"`
}

// Tiers in ascending order of MinPoints. TierFor depends on this ordering.
var Tiers = []Tier{
	{Name: "Bronze", MinPoints: 0, Color: "#cd7f32"},
	{Name: "Silver", MinPoints: 400, Color: "#c0c0c0"},
	{Name: "Gold", MinPoints: 900, Color: "#ffd700"},
	{Name: "Platinum", MinPoints: 1600, Color: "#e5e4e2"},
}

// TierStatus is a user's current tier plus progress toward the next one.
// NextTier is nil at the top tier, where ProgressPct pins to 100.
type TierStatus struct {
	Tier        Tier    `json:"tier"`
	NextTier    *Tier   `json:"next_tier,omitempty"`
	ProgressPct float64 `json:"progress_pct"`
}

// TierFor resolves the tier for a points balance.
func TierFor(points int) TierStatus {
	if points < 0 {
		points = 0
	}

	current := Tiers[0]
	var next *Tier
	for i := range Tiers {
		if points >= Tiers[i].MinPoints {
			current = Tiers[i]
			if i+1 < len(Tiers) {
				t := Tiers[i+1]
				next = &t
			} else {
				next = nil
			}
		}
	}

	status := TierStatus{Tier: current, NextTier: next, ProgressPct: 100}
	if next != nil {
		span := float64(next.MinPoints - current.MinPoints)
		status.ProgressPct = float64(points-current.MinPoints) / span * 100
	}

	return status
}
