package usecase

import (
	"time"

	"room-billing/internal/domain"
)

const secondsPerDay = 24 * 60 * 60

// AccrualCalculator turns an occupant record into a priced occupancy row.
type AccrualCalculator struct {
	loc *time.Location
	now func() time.Time
}

// NewAccrualCalculator creates a calculator counting calendar days in loc.
func NewAccrualCalculator(loc *time.Location, now func() time.Time) *AccrualCalculator {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &AccrualCalculator{loc: loc, now: now}
}

// Billed returns the accrued charge and the rule that produced it. The first
// applicable rule wins:
//  1. a non-zero server amount due
//  2. stay days from the feed times a positive daily rate
//  3. inclusive days since the stay start times a positive daily rate
//  4. the daily rate alone, a single-day stay
func (a *AccrualCalculator) Billed(rec domain.OccupantRecord) (float64, domain.AccrualBasis) {
	if rec.AmountDue != nil && *rec.AmountDue != 0 {
		return *rec.AmountDue, domain.BasisAmountDue
	}
	if rec.StayDays > 0 && rec.DailyRate > 0 {
		return rec.StayDays * rec.DailyRate, domain.BasisStayDays
	}
	if rec.StartedAt != nil && rec.DailyRate > 0 {
		return float64(a.DaysInclusiveSince(*rec.StartedAt)) * rec.DailyRate, domain.BasisStartDate
	}
	return rec.DailyRate, domain.BasisDailyRate
}

// DaysInclusiveSince counts calendar days from start to today, both ends
// included and time of day ignored. The result is at least 1.
func (a *AccrualCalculator) DaysInclusiveSince(start time.Time) int {
	startDay := calendarDay(start.In(a.loc))
	today := calendarDay(a.now().In(a.loc))
	days := int((today.Unix()-startDay.Unix())/secondsPerDay) + 1
	if days < 1 {
		return 1
	}
	return days
}

// Row prices one occupant.
func (a *AccrualCalculator) Row(rec domain.OccupantRecord) domain.OccupancyRow {
	billed, basis := a.Billed(rec)
	row := domain.OccupancyRow{
		RoomName:    rec.RoomName,
		PatientName: rec.PatientName,
		PatientID:   rec.PatientID,
		Basis:       basis,
	}
	row.Settle(billed, rec.Paid)
	return row
}

// Rows prices every occupant, keeping feed order.
func (a *AccrualCalculator) Rows(records []domain.OccupantRecord) []domain.OccupancyRow {
	rows := make([]domain.OccupancyRow, 0, len(records))
	for _, rec := range records {
		rows = append(rows, a.Row(rec))
	}
	return rows
}

// calendarDay maps a wall-clock date onto UTC midnight so that subtraction
// yields whole days regardless of DST shifts in the source zone.
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
