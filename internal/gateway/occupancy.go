package gateway

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"room-billing/internal/domain"
)

// stayFields are the per-occupant fields shared by the room and flat shapes.
// Each accessor below is the precedence table for one value.
type stayFields struct {
	ID          flexText   `json:"id"`
	PatientID   flexText   `json:"patient_id"`
	PatientName flexText   `json:"patient_name"`
	FirstName   flexText   `json:"first_name"`
	LastName    flexText   `json:"last_name"`
	AmountDue   flexNumber `json:"amount_due"`
	Expected    flexNumber `json:"expected"`
	TotalBilled flexNumber `json:"total_billed"`
	Total       flexNumber `json:"total"`
	Days        flexNumber `json:"days"`
	StayDays    flexNumber `json:"stay_days"`
	AssignedAt  flexText   `json:"assigned_at"`
	AdmittedAt  flexText   `json:"admitted_at"`
	CreatedAt   flexText   `json:"created_at"`
	TotalPaid   flexNumber `json:"total_paid"`
	AmountPaid  flexNumber `json:"amount_paid"`
	Paid        flexNumber `json:"paid"`
}

func (s stayFields) amountDue() *float64 {
	return firstPresent(s.AmountDue, s.Expected, s.TotalBilled, s.Total)
}

func (s stayFields) stayDays() float64 {
	return firstNonZero(s.Days, s.StayDays)
}

func (s stayFields) startedAt(loc *time.Location) *time.Time {
	return firstTimestamp(loc, s.AssignedAt, s.AdmittedAt, s.CreatedAt)
}

func (s stayFields) paid() float64 {
	return firstPresentOr(0, s.TotalPaid, s.AmountPaid, s.Paid)
}

// roomPayload is shape 1: a room with its current occupants nested.
type roomPayload struct {
	Name        flexText     `json:"name"`
	RoomName    flexText     `json:"room_name"`
	Price       flexNumber   `json:"price"`
	PricePerDay flexNumber   `json:"price_per_day"`
	Patients    []stayFields `json:"patients"`
}

func (r roomPayload) occupants(loc *time.Location) []domain.OccupantRecord {
	roomName := orPlaceholder(firstText(r.Name, r.RoomName))
	rate := firstNonZero(r.Price, r.PricePerDay)

	out := make([]domain.OccupantRecord, 0, len(r.Patients))
	for _, p := range r.Patients {
		out = append(out, domain.OccupantRecord{
			Source:      domain.ShapeRooms,
			RoomName:    roomName,
			PatientName: orPlaceholder(firstText(p.PatientName, flexText(joinName(p.FirstName, p.LastName)))),
			PatientID:   domain.PatientID(firstText(p.PatientID, p.ID)),
			AmountDue:   p.amountDue(),
			StayDays:    p.stayDays(),
			StartedAt:   p.startedAt(loc),
			DailyRate:   rate,
			Paid:        p.paid(),
		})
	}
	return out
}

// flatRow is shape 2: one row per occupant with room and patient nested.
type flatRow struct {
	stayFields
	Patient  patientRef `json:"patient"`
	Room     roomRef    `json:"room"`
	RoomName flexText   `json:"room_name"`
	Price    flexNumber `json:"price"`
}

func (r flatRow) occupant(loc *time.Location) domain.OccupantRecord {
	return domain.OccupantRecord{
		Source:      domain.ShapeFlat,
		RoomName:    orPlaceholder(firstText(r.Room.Name, r.RoomName)),
		PatientName: orPlaceholder(firstText(flexText(joinName(r.Patient.FirstName, r.Patient.LastName)), r.PatientName)),
		PatientID:   domain.PatientID(firstText(r.Patient.ID, r.PatientID, r.ID)),
		AmountDue:   r.amountDue(),
		StayDays:    r.stayDays(),
		StartedAt:   r.startedAt(loc),
		DailyRate:   firstNonZero(r.Room.PricePerDay, r.Price),
		Paid:        r.paid(),
	}
}

// registration is shape 3, the legacy treatment-registrations endpoint.
// It carries no server accrual; the stay is always derived from its dates.
type registration struct {
	Patient    patientRef `json:"patient"`
	Room       roomRef    `json:"room"`
	AssignedAt flexText   `json:"assigned_at"`
	AdmittedAt flexText   `json:"admitted_at"`
	CreatedAt  flexText   `json:"created_at"`
	TotalPaid  flexNumber `json:"total_paid"`
}

func (r registration) occupant(loc *time.Location) domain.OccupantRecord {
	return domain.OccupantRecord{
		Source:      domain.ShapeRegistrations,
		RoomName:    orPlaceholder(r.Room.Name.String()),
		PatientName: orPlaceholder(joinName(r.Patient.FirstName, r.Patient.LastName)),
		PatientID:   domain.PatientID(r.Patient.ID.String()),
		StartedAt:   firstTimestamp(loc, r.AssignedAt, r.AdmittedAt, r.CreatedAt),
		DailyRate:   r.Room.PricePerDay.value,
		Paid:        firstPresentOr(0, r.TotalPaid),
	}
}

// parseRooms matches shape 1: `{"rooms": [...]}` or an array whose first
// element has a patients list.
func parseRooms(raw json.RawMessage, loc *time.Location) ([]domain.OccupantRecord, bool) {
	var rooms []roomPayload
	switch leadingByte(raw) {
	case '{':
		var envelope struct {
			Rooms []roomPayload `json:"rooms"`
		}
		if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Rooms == nil {
			return nil, false
		}
		rooms = envelope.Rooms
	case '[':
		var probe []map[string]json.RawMessage
		if err := json.Unmarshal(raw, &probe); err != nil || len(probe) == 0 {
			return nil, false
		}
		if patients, ok := probe[0]["patients"]; !ok || leadingByte(patients) == 'n' {
			return nil, false
		}
		if err := json.Unmarshal(raw, &rooms); err != nil {
			return nil, false
		}
	default:
		return nil, false
	}

	var out []domain.OccupantRecord
	for _, room := range rooms {
		out = append(out, room.occupants(loc)...)
	}
	if out == nil {
		out = make([]domain.OccupantRecord, 0)
	}
	return out, true
}

// parseFlat matches shape 2: any JSON array of rows, empty included.
func parseFlat(raw json.RawMessage, loc *time.Location) ([]domain.OccupantRecord, bool) {
	if leadingByte(raw) != '[' {
		return nil, false
	}
	var rows []flatRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, false
	}
	out := make([]domain.OccupantRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.occupant(loc))
	}
	return out, true
}

// parseRegistrations reads shape 3: a bare array or `{"results": [...]}`.
// Anything else is an empty list.
func parseRegistrations(raw json.RawMessage, loc *time.Location) []domain.OccupantRecord {
	var regs []registration
	switch leadingByte(raw) {
	case '[':
		if err := json.Unmarshal(raw, &regs); err != nil {
			regs = nil
		}
	case '{':
		var page struct {
			Results []registration `json:"results"`
		}
		if err := json.Unmarshal(raw, &page); err == nil {
			regs = page.Results
		}
	}

	out := make([]domain.OccupantRecord, 0, len(regs))
	for _, r := range regs {
		out = append(out, r.occupant(loc))
	}
	return out
}

// FetchOccupants reads the current occupants from the billing endpoint,
// trying the room shape, then the flat shape, then the legacy registrations
// endpoint. Only a failure of the last step is returned.
func (c *Client) FetchOccupants(ctx context.Context) ([]domain.OccupantRecord, domain.FeedShape, error) {
	// Step 1: primary endpoint, shapes 1 and 2
	raw, err := c.get(ctx, c.endpoints.RoomPayments, requestOptions{})
	if err != nil {
		c.logger.Warn("Billing endpoint unavailable, falling back to registrations",
			zap.String("endpoint", c.endpoints.RoomPayments),
			zap.Error(err),
		)
	} else {
		if records, ok := parseRooms(raw, c.loc); ok {
			return records, domain.ShapeRooms, nil
		}
		if records, ok := parseFlat(raw, c.loc); ok {
			return records, domain.ShapeFlat, nil
		}
		c.logger.Warn("Billing endpoint returned an unknown shape, falling back to registrations",
			zap.String("endpoint", c.endpoints.RoomPayments),
		)
	}

	// Step 2: legacy registrations
	raw, err = c.get(ctx, c.endpoints.Registrations, requestOptions{})
	if err != nil {
		return nil, "", err
	}
	return parseRegistrations(raw, c.loc), domain.ShapeRegistrations, nil
}
