package domain

// BalanceSummary is one entry of the historical patient-balances feed. It
// covers active and discharged patients alike.
type BalanceSummary struct {
	PatientID PatientID
	Name      string
	// RoomCost is the room-only cost component, nil when the feed has none.
	RoomCost *float64
	Balance  float64
	Billed   float64
	Paid     float64
}

// HasRoomStay reports whether the entry carries a positive room cost.
func (b BalanceSummary) HasRoomStay() bool {
	return b.RoomCost != nil && *b.RoomCost > 0
}

// Settled reports whether nothing is owed on the entry.
func (b BalanceSummary) Settled() bool {
	return b.Balance <= 0
}
