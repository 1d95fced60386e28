package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-billing/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

// occupancyBackend serves the two occupancy endpoints and counts calls.
type occupancyBackend struct {
	primaryStatus int
	primaryBody   string
	legacyStatus  int
	legacyBody    string
	primaryCalls  int
	legacyCalls   int
}

func (b *occupancyBackend) handle(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/api/v1/treatment-room-payments/":
		b.primaryCalls++
		writeBody(w, b.primaryStatus, b.primaryBody)
	case "/api/v1/treatment-registrations/":
		b.legacyCalls++
		writeBody(w, b.legacyStatus, b.legacyBody)
	default:
		http.NotFound(w, r)
	}
}

func writeBody(w http.ResponseWriter, status int, body string) {
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

func TestClient_FetchOccupants(t *testing.T) {
	tests := []struct {
		name            string
		backend         occupancyBackend
		wantShape       domain.FeedShape
		wantRecords     []domain.OccupantRecord
		wantLegacyCalls int
		wantErr         bool
	}{
		{
			name: "room shape with nested patients",
			backend: occupancyBackend{primaryBody: `{"rooms": [{
				"name": "Room 101", "price": "150000.00",
				"patients": [
					{"patient_id": 12, "patient_name": "Ali Valiev", "amount_due": "450000", "total_paid": "100000"},
					{"id": "13", "first_name": "Zarina", "last_name": "Karimova", "days": 2, "total_paid": 0}
				]}]}`},
			wantShape: domain.ShapeRooms,
			wantRecords: []domain.OccupantRecord{
				{
					Source: domain.ShapeRooms, RoomName: "Room 101", PatientName: "Ali Valiev", PatientID: "12",
					AmountDue: floatPtr(450000), DailyRate: 150000, Paid: 100000,
				},
				{
					Source: domain.ShapeRooms, RoomName: "Room 101", PatientName: "Zarina Karimova", PatientID: "13",
					StayDays: 2, DailyRate: 150000,
				},
			},
		},
		{
			name: "room shape as a bare array",
			backend: occupancyBackend{primaryBody: `[{"room_name": "VIP", "price_per_day": 90,
				"patients": [{"patient_id": 3, "assigned_at": "2025-03-08T10:00:00Z"}]}]`},
			wantShape: domain.ShapeRooms,
			wantRecords: []domain.OccupantRecord{
				{
					Source: domain.ShapeRooms, RoomName: "VIP", PatientName: domain.Placeholder, PatientID: "3",
					StartedAt: timePtr(time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC)), DailyRate: 90,
				},
			},
		},
		{
			name: "flat shape",
			backend: occupancyBackend{primaryBody: `[{
				"patient": {"id": 5, "first_name": "Olim", "last_name": "Saidov"},
				"room": {"name": "Room 2", "price_per_day": 100},
				"days": 3, "amount_paid": "50"}]`},
			wantShape: domain.ShapeFlat,
			wantRecords: []domain.OccupantRecord{
				{
					Source: domain.ShapeFlat, RoomName: "Room 2", PatientName: "Olim Saidov", PatientID: "5",
					StayDays: 3, DailyRate: 100, Paid: 50,
				},
			},
		},
		{
			name:        "empty array is an empty flat feed",
			backend:     occupancyBackend{primaryBody: `[]`},
			wantShape:   domain.ShapeFlat,
			wantRecords: []domain.OccupantRecord{},
		},
		{
			name: "unknown shape falls back to registrations",
			backend: occupancyBackend{
				primaryBody: `{"detail": "use registrations"}`,
				legacyBody: `{"results": [{
					"patient": {"id": 9, "first_name": "Nodira", "last_name": "T"},
					"room": {"name": "Room 3", "price_per_day": "80"},
					"assigned_at": "2025-03-08T10:00:00", "total_paid": 20}]}`,
			},
			wantShape: domain.ShapeRegistrations,
			wantRecords: []domain.OccupantRecord{
				{
					Source: domain.ShapeRegistrations, RoomName: "Room 3", PatientName: "Nodira T", PatientID: "9",
					StartedAt: timePtr(time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC)), DailyRate: 80, Paid: 20,
				},
			},
			wantLegacyCalls: 1,
		},
		{
			name: "primary failure falls back to registrations",
			backend: occupancyBackend{
				primaryStatus: http.StatusInternalServerError,
				primaryBody:   `{"detail": "boom"}`,
				legacyBody:    `[{"patient": 4, "room": 2}]`,
			},
			wantShape: domain.ShapeRegistrations,
			wantRecords: []domain.OccupantRecord{
				{
					Source: domain.ShapeRegistrations, RoomName: domain.Placeholder, PatientName: domain.Placeholder,
					PatientID: "4",
				},
			},
			wantLegacyCalls: 1,
		},
		{
			name: "unreadable legacy payload is empty",
			backend: occupancyBackend{
				primaryBody: `"not a list"`,
				legacyBody:  `{"count": 0}`,
			},
			wantShape:       domain.ShapeRegistrations,
			wantRecords:     []domain.OccupantRecord{},
			wantLegacyCalls: 1,
		},
		{
			name: "both endpoints failing is an error",
			backend: occupancyBackend{
				primaryStatus: http.StatusBadGateway,
				legacyStatus:  http.StatusServiceUnavailable,
			},
			wantErr:         true,
			wantLegacyCalls: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := tt.backend
			c := newTestClient(t, backend.handle)

			records, shape, err := c.FetchOccupants(context.Background())

			assert.Equal(t, 1, backend.primaryCalls)
			assert.Equal(t, tt.wantLegacyCalls, backend.legacyCalls)
			if tt.wantErr {
				var ff *domain.FetchFailure
				require.True(t, errors.As(err, &ff))
				assert.Equal(t, http.StatusServiceUnavailable, ff.StatusCode)
				assert.Equal(t, "treatment-registrations/", ff.Endpoint)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantShape, shape)
			assert.Equal(t, tt.wantRecords, records)
		})
	}
}

func TestParseRooms_NullPatientsIsNotRoomShape(t *testing.T) {
	_, ok := parseRooms([]byte(`[{"name": "Room 1", "patients": null}]`), time.UTC)
	assert.False(t, ok)

	records, ok := parseFlat([]byte(`[{"name": "Room 1", "patients": null}]`), time.UTC)
	assert.True(t, ok)
	assert.Len(t, records, 1)
}

func TestFlatRow_PrecedenceOfAmountDue(t *testing.T) {
	records, ok := parseFlat([]byte(`[{"expected": "0", "total_billed": 900, "total": 5}]`), time.UTC)
	require.True(t, ok)
	require.Len(t, records, 1)

	// A present zero wins the lookup; the accrual rules treat it as absent.
	require.NotNil(t, records[0].AmountDue)
	assert.Equal(t, 0.0, *records[0].AmountDue)
}

func TestFlatRow_NonFiniteAmountsFallThrough(t *testing.T) {
	records, ok := parseFlat([]byte(`[
		{"patient_id": 7, "amount_due": "NaN", "expected": "500", "total_paid": "Infinity", "paid": 100},
		{"patient_id": 8, "amount_due": "-Infinity", "price": "NaN", "total_paid": "NaN"}
	]`), time.UTC)
	require.True(t, ok)
	require.Len(t, records, 2)

	require.NotNil(t, records[0].AmountDue)
	assert.Equal(t, 500.0, *records[0].AmountDue)
	assert.Equal(t, 100.0, records[0].Paid)

	assert.Nil(t, records[1].AmountDue)
	assert.Equal(t, 0.0, records[1].DailyRate)
	assert.Equal(t, 0.0, records[1].Paid)

	_, err := json.Marshal(records)
	assert.NoError(t, err)
}
