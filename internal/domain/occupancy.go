package domain

import (
	"math"
	"time"
)

// Placeholder is shown where the backend gave no name.
const Placeholder = "—"

// PaymentStatus is the settlement state of an occupancy row.
type PaymentStatus string

const (
	StatusUnpaid  PaymentStatus = "unpaid"
	StatusPrepaid PaymentStatus = "prepaid"
	StatusPaid    PaymentStatus = "paid"
)

// PatientID identifies a patient on the clinic backend. The zero value means
// the feed did not carry an identifier.
type PatientID string

// FeedShape names the billing response shape an occupant was read from.
type FeedShape string

const (
	ShapeRooms         FeedShape = "rooms"
	ShapeFlat          FeedShape = "flat"
	ShapeRegistrations FeedShape = "registrations"
)

// AccrualBasis records which rule produced the billed amount of a row.
type AccrualBasis string

const (
	BasisAmountDue AccrualBasis = "amount_due"
	BasisStayDays  AccrualBasis = "stay_days"
	BasisStartDate AccrualBasis = "start_date"
	BasisDailyRate AccrualBasis = "daily_rate"
	BasisRoomCost  AccrualBasis = "room_cost"
	BasisBalances  AccrualBasis = "balances"
)

// OccupantRecord is one occupant as read from any billing feed shape,
// before the accrual is computed. Optional inputs are nil when absent.
type OccupantRecord struct {
	Source      FeedShape
	RoomName    string
	PatientName string
	PatientID   PatientID
	AmountDue   *float64
	StayDays    float64
	StartedAt   *time.Time
	DailyRate   float64
	Paid        float64
}

// OccupancyRow is one patient's current or historical room stay as shown on
// the payments view.
type OccupancyRow struct {
	RoomName    string        `json:"room_name"`
	PatientName string        `json:"patient_name"`
	Billed      float64       `json:"billed"`
	Paid        float64       `json:"paid"`
	Balance     float64       `json:"balance"`
	Status      PaymentStatus `json:"status"`
	PatientID   PatientID     `json:"patient_id,omitempty"`
	Discharged  bool          `json:"discharged"`
	Basis       AccrualBasis  `json:"accrual_basis,omitempty"`
}

// Settle sets billed and paid and recomputes balance and status.
// Negative and non-finite inputs are clamped to zero.
func (r *OccupancyRow) Settle(billed, paid float64) {
	r.Billed = amount(billed)
	r.Paid = amount(paid)
	r.Balance = BalanceOf(r.Billed, r.Paid)
	r.Status = StatusOf(r.Paid, r.Balance)
}

// amount clamps a money value to a finite non-negative number.
func amount(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// Payable reports whether payment actions may target this row.
func (r OccupancyRow) Payable() bool {
	return r.PatientID != "" && !r.Discharged
}

// BalanceOf returns the outstanding amount, never negative.
func BalanceOf(billed, paid float64) float64 {
	return max(0, billed-paid)
}

// StatusOf maps paid/balance onto the three settlement states.
func StatusOf(paid, balance float64) PaymentStatus {
	switch {
	case paid <= 0:
		return StatusUnpaid
	case balance > 0:
		return StatusPrepaid
	default:
		return StatusPaid
	}
}
