package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"room-billing/internal/domain"
)

// PaymentHistory loads a patient's ledger and totals it. A missing patient
// card only blanks the name.
func (v *BillingView) PaymentHistory(ctx context.Context, id domain.PatientID) (*domain.PaymentHistory, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, &domain.ValidationFailure{Field: "patient_id", Reason: "patient is required"}
	}

	name := domain.Placeholder
	if patient, err := v.gateway.FetchPatient(ctx, id); err != nil {
		v.logger.Warn("Patient lookup failed", zap.String("patient_id", string(id)), zap.Error(err))
	} else if full := patient.FullName(); full != "" {
		name = full
	}

	entries, err := v.gateway.FetchPaymentHistory(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not load payment history: %w", err)
	}

	history := SummarizeHistory(entries)
	history.PatientID = id
	history.PatientName = name
	return &history, nil
}

// SummarizeHistory totals a ledger. Charges are entries typed bill, charge or
// debit; payments are entries typed payment or credit, or with status paid.
func SummarizeHistory(entries []domain.PaymentHistoryEntry) domain.PaymentHistory {
	var billed, paid float64
	for _, e := range entries {
		amount := max(0, e.Amount)
		kind := strings.ToLower(e.Type)
		if strings.Contains(kind, "bill") || strings.Contains(kind, "charge") || strings.Contains(kind, "debit") {
			billed += amount
		}
		if strings.Contains(kind, "payment") || strings.Contains(kind, "credit") || strings.EqualFold(e.Status, "paid") {
			paid += amount
		}
	}
	if entries == nil {
		entries = make([]domain.PaymentHistoryEntry, 0)
	}
	return domain.PaymentHistory{
		Entries:     entries,
		TotalBilled: billed,
		TotalPaid:   paid,
		Balance:     domain.BalanceOf(billed, paid),
	}
}
