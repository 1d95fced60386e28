package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"room-billing/internal/domain"
)

// paymentBody is the POST body of a treatment-room payment.
type paymentBody struct {
	Patient         string  `json:"patient"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
	PaymentMethod   string  `json:"payment_method"`
	Notes           string  `json:"notes"`
	TransactionType string  `json:"transaction_type"`
}

type createdPayment struct {
	ID   flexText `json:"id"`
	Date flexText `json:"date"`
}

// CreatePayment posts a new payment record.
func (c *Client) CreatePayment(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentRecord, error) {
	raw, err := c.do(ctx, http.MethodPost, c.endpoints.RoomPayments, requestOptions{
		body: paymentBody{
			Patient:         string(req.PatientID),
			Amount:          req.Amount,
			Status:          req.Status,
			PaymentMethod:   req.Method,
			Notes:           req.Notes,
			TransactionType: domain.TransactionTypeTreatment,
		},
	})
	if err != nil {
		return nil, err
	}

	var created createdPayment
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &created); err != nil {
			return nil, fmt.Errorf("could not decode created payment: %w", err)
		}
	}

	record := &domain.PaymentRecord{ID: created.ID.String(), CreatedAt: c.now()}
	if t := parseTimestamp(created.Date.String(), c.loc); t != nil {
		record.CreatedAt = *t
	}

	c.logger.Info("Payment created",
		zap.String("payment_id", record.ID),
		zap.String("patient_id", string(req.PatientID)),
		zap.Float64("amount", req.Amount),
	)
	return record, nil
}

// FetchUserProfile reads the signed-in user.
func (c *Client) FetchUserProfile(ctx context.Context) (*domain.UserProfile, error) {
	raw, err := c.get(ctx, c.endpoints.UserProfile, requestOptions{})
	if err != nil {
		return nil, err
	}
	var profile domain.UserProfile
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &profile); err != nil {
			return nil, fmt.Errorf("could not decode user profile: %w", err)
		}
	}
	return &profile, nil
}

// FetchPatient reads one patient card.
func (c *Client) FetchPatient(ctx context.Context, id domain.PatientID) (*domain.PatientRef, error) {
	raw, err := c.get(ctx, c.endpoints.Patient, requestOptions{
		path: map[string]string{"id": string(id)},
	})
	if err != nil {
		return nil, err
	}
	var p patientRef
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, fmt.Errorf("could not decode patient: %w", err)
		}
	}
	ref := &domain.PatientRef{
		ID:        domain.PatientID(p.ID.String()),
		FirstName: p.FirstName.String(),
		LastName:  p.LastName.String(),
	}
	if ref.ID == "" {
		ref.ID = id
	}
	return ref, nil
}

// historyEntry is one line of any of the payment history endpoints.
type historyEntry struct {
	Type        flexText   `json:"type"`
	Kind        flexText   `json:"kind"`
	EntryType   flexText   `json:"entry_type"`
	Amount      flexNumber `json:"amount"`
	Total       flexNumber `json:"total"`
	Value       flexNumber `json:"value"`
	Status      flexText   `json:"status"`
	Paid        flexNumber `json:"paid"`
	ServiceName flexText   `json:"service_name"`
	Service     struct {
		Name flexText `json:"name"`
	} `json:"service"`
	Description flexText `json:"description"`
	CreatedAt   flexText `json:"created_at"`
	Timestamp   flexText `json:"timestamp"`
	Date        flexText `json:"date"`
}

func (h historyEntry) normalize(c *Client) domain.PaymentHistoryEntry {
	status := h.Status.String()
	if status == "" {
		status = "unpaid"
		if h.Paid.set && h.Paid.value != 0 {
			status = "paid"
		}
	}
	return domain.PaymentHistoryEntry{
		Type:        strings.ToLower(firstText(h.Type, h.Kind, h.EntryType)),
		Amount:      firstPresentOr(0, h.Amount, h.Total, h.Value),
		Status:      status,
		ServiceName: orPlaceholder(firstText(h.ServiceName, h.Service.Name, h.Description)),
		Date:        firstTimestamp(c.loc, h.CreatedAt, h.Timestamp, h.Date),
	}
}

// decodeHistoryList accepts a bare array or a list under results, items or data.
func decodeHistoryList(raw json.RawMessage) []historyEntry {
	var list []historyEntry
	switch leadingByte(raw) {
	case '[':
		if err := json.Unmarshal(raw, &list); err != nil {
			return nil
		}
	case '{':
		var page struct {
			Results []historyEntry `json:"results"`
			Items   []historyEntry `json:"items"`
			Data    []historyEntry `json:"data"`
		}
		if err := json.Unmarshal(raw, &page); err != nil {
			return nil
		}
		switch {
		case page.Results != nil:
			list = page.Results
		case page.Items != nil:
			list = page.Items
		default:
			list = page.Data
		}
	}
	return list
}

// FetchPaymentHistory tries each history endpoint in order and returns the
// first non-empty list. Failures move on to the next endpoint; when all fail
// the history is empty.
func (c *Client) FetchPaymentHistory(ctx context.Context, id domain.PatientID) ([]domain.PaymentHistoryEntry, error) {
	for _, endpoint := range c.endpoints.PaymentHistory {
		raw, err := c.get(ctx, endpoint, requestOptions{
			path: map[string]string{"id": string(id)},
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		list := decodeHistoryList(raw)
		if len(list) == 0 {
			continue
		}
		entries := make([]domain.PaymentHistoryEntry, 0, len(list))
		for _, h := range list {
			entries = append(entries, h.normalize(c))
		}
		return entries, nil
	}
	return []domain.PaymentHistoryEntry{}, nil
}
