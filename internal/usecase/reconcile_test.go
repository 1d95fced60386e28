package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"room-billing/internal/domain"
	"room-billing/internal/usecase"
)

func settled(row domain.OccupancyRow, billed, paid float64) domain.OccupancyRow {
	row.Settle(billed, paid)
	return row
}

func TestReconciler_Merge(t *testing.T) {
	active := []domain.OccupancyRow{
		settled(domain.OccupancyRow{RoomName: "Room 101", PatientName: "Ali", PatientID: "1", Basis: domain.BasisStayDays}, 300, 300),
		settled(domain.OccupancyRow{RoomName: "Room 102", PatientName: "Zarina", PatientID: "2", Basis: domain.BasisDailyRate}, 100, 50),
		settled(domain.OccupancyRow{RoomName: "Room 103", PatientName: "No id", Basis: domain.BasisDailyRate}, 100, 0),
	}
	original := append([]domain.OccupancyRow(nil), active...)

	feed := []domain.BalanceSummary{
		{PatientID: "1", Name: "Ali", RoomCost: floatPtr(500), Balance: 200, Billed: 500, Paid: 300},
		{PatientID: "2", Name: "Zarina", Balance: 50, Billed: 100, Paid: 50},
		{PatientID: "3", Name: "Olim", RoomCost: floatPtr(200), Balance: 0, Billed: 200, Paid: 200},
		{PatientID: "4", Name: "Nodira", RoomCost: floatPtr(200), Balance: 50, Billed: 200, Paid: 150},
		{PatientID: "5", Name: "Outpatient", Balance: 0, Billed: 80, Paid: 80},
		{PatientID: "6", Name: "Zero room", RoomCost: floatPtr(0), Balance: -10, Billed: 0, Paid: 10},
	}

	merged, dischargedPaid := usecase.NewReconciler("").Merge(active, feed)

	t.Run("room cost overrides billed and status is recomputed", func(t *testing.T) {
		assert.Equal(t, domain.OccupancyRow{
			RoomName: "Room 101", PatientName: "Ali", PatientID: "1",
			Billed: 500, Paid: 300, Balance: 200, Status: domain.StatusPrepaid, Basis: domain.BasisRoomCost,
		}, merged[0])
	})

	t.Run("rows without room cost or id are untouched", func(t *testing.T) {
		assert.Equal(t, original[1], merged[1])
		assert.Equal(t, original[2], merged[2])
	})

	t.Run("input rows are not modified", func(t *testing.T) {
		assert.Equal(t, original, active)
	})

	t.Run("only settled room stays outside the active set are synthesized", func(t *testing.T) {
		assert.Equal(t, []domain.OccupancyRow{
			{
				RoomName: usecase.DefaultDischargedRoomLabel, PatientName: "Olim", PatientID: "3",
				Billed: 200, Paid: 200, Balance: 0, Status: domain.StatusPaid,
				Discharged: true, Basis: domain.BasisBalances,
			},
		}, dischargedPaid)
		assert.False(t, dischargedPaid[0].Payable())
	})
}

func TestReconciler_SynthesizeDischarged(t *testing.T) {
	tests := []struct {
		name   string
		active []domain.OccupancyRow
		feed   []domain.BalanceSummary
		want   int
	}{
		{
			name: "active patient is never synthesized",
			active: []domain.OccupancyRow{
				{PatientID: "1"},
			},
			feed: []domain.BalanceSummary{{PatientID: "1", RoomCost: floatPtr(100), Balance: 0, Billed: 100, Paid: 100}},
			want: 0,
		},
		{
			name: "overpaid balance counts as settled",
			feed: []domain.BalanceSummary{{PatientID: "9", RoomCost: floatPtr(100), Balance: -20, Billed: 100, Paid: 120}},
			want: 1,
		},
		{
			name: "empty feed",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := usecase.NewReconciler("Discharged").SynthesizeDischarged(tt.active, tt.feed)
			assert.NotNil(t, got)
			assert.Len(t, got, tt.want)
			for _, row := range got {
				assert.Equal(t, "Discharged", row.RoomName)
				assert.True(t, row.Discharged)
			}
		})
	}
}
