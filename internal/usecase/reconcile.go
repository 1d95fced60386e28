package usecase

import (
	"room-billing/internal/domain"
)

// DefaultDischargedRoomLabel names the room column of discharged rows.
const DefaultDischargedRoomLabel = "Discharged (inpatient ward)"

// Reconciler merges priced active rows with the patient-balances feed.
type Reconciler struct {
	dischargedRoomLabel string
}

// NewReconciler creates a reconciler. An empty label uses the default.
func NewReconciler(dischargedRoomLabel string) *Reconciler {
	if dischargedRoomLabel == "" {
		dischargedRoomLabel = DefaultDischargedRoomLabel
	}
	return &Reconciler{dischargedRoomLabel: dischargedRoomLabel}
}

// Override replaces the billed amount of every active row found in the feed
// with the feed's positive room-only cost. The input slice is not modified.
func (r *Reconciler) Override(active []domain.OccupancyRow, feed []domain.BalanceSummary) []domain.OccupancyRow {
	byPatient := make(map[domain.PatientID]domain.BalanceSummary, len(feed))
	for _, entry := range feed {
		byPatient[entry.PatientID] = entry
	}

	out := make([]domain.OccupancyRow, len(active))
	copy(out, active)
	for i := range out {
		if out[i].PatientID == "" {
			continue
		}
		entry, ok := byPatient[out[i].PatientID]
		if !ok || !entry.HasRoomStay() {
			continue
		}
		out[i].Settle(*entry.RoomCost, out[i].Paid)
		out[i].Basis = domain.BasisRoomCost
	}
	return out
}

// SynthesizeDischarged lists feed entries absent from the active set that
// had a room stay and owe nothing. Partially paid and non-room patients are
// left to the other billing views.
func (r *Reconciler) SynthesizeDischarged(active []domain.OccupancyRow, feed []domain.BalanceSummary) []domain.OccupancyRow {
	isActive := make(map[domain.PatientID]bool, len(active))
	for _, row := range active {
		if row.PatientID != "" {
			isActive[row.PatientID] = true
		}
	}

	out := make([]domain.OccupancyRow, 0)
	for _, entry := range feed {
		if entry.PatientID == "" || isActive[entry.PatientID] {
			continue
		}
		if !entry.HasRoomStay() || !entry.Settled() {
			continue
		}
		row := domain.OccupancyRow{
			RoomName:    r.dischargedRoomLabel,
			PatientName: entry.Name,
			PatientID:   entry.PatientID,
			Discharged:  true,
			Basis:       domain.BasisBalances,
		}
		row.Settle(entry.Billed, entry.Paid)
		out = append(out, row)
	}
	return out
}

// Merge runs both steps against one balances snapshot.
func (r *Reconciler) Merge(active []domain.OccupancyRow, feed []domain.BalanceSummary) (merged, dischargedPaid []domain.OccupancyRow) {
	merged = r.Override(active, feed)
	dischargedPaid = r.SynthesizeDischarged(merged, feed)
	return merged, dischargedPaid
}
