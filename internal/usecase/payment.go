package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"room-billing/internal/domain"
)

// SubmitPayment validates and posts a payment, hands the receipt to the
// printer and reloads the view. Validation failures never reach the backend
// and a failed post leaves the cache untouched. Once the payment is created
// a failed reload is only recorded on the view; the receipt is returned.
func (v *BillingView) SubmitPayment(ctx context.Context, req domain.PaymentRequest) (*domain.Receipt, error) {
	if err := req.Validate(); err != nil {
		v.logger.Info("Payment rejected", zap.Error(err))
		return nil, err
	}

	record, err := v.gateway.CreatePayment(ctx, req)
	if err != nil {
		v.logger.Error("Failed to create payment",
			zap.String("patient_id", string(req.PatientID)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("could not create payment: %w", err)
	}

	receipt := domain.Receipt{
		PaymentID:   record.ID,
		PatientID:   req.PatientID,
		PatientName: req.PatientName,
		Amount:      req.Amount,
		Status:      req.Status,
		Method:      req.Method,
		Notes:       req.Notes,
		Date:        record.CreatedAt,
		ProcessedBy: v.processedBy(ctx),
	}
	if strings.TrimSpace(receipt.PatientName) == "" {
		receipt.PatientName = "Unknown"
	}

	if v.printer != nil {
		location, err := v.printer.Print(ctx, receipt)
		if err != nil {
			v.logger.Warn("Receipt hand-off failed",
				zap.String("payment_id", receipt.PaymentID),
				zap.Error(err),
			)
		}
		receipt.URL = location
	}

	if err := v.Reload(ctx); err != nil {
		v.logger.Warn("Reload after payment failed",
			zap.String("payment_id", receipt.PaymentID),
			zap.Error(err),
		)
	}
	return &receipt, nil
}

// processedBy resolves the staff name printed on receipts.
func (v *BillingView) processedBy(ctx context.Context) string {
	profile, err := v.gateway.FetchUserProfile(ctx)
	if err != nil {
		v.logger.Warn("User profile unavailable", zap.Error(err))
		return v.processedByFallback
	}
	if name := profile.DisplayName(); name != "" {
		return name
	}
	return v.processedByFallback
}
