package usecase

import (
	"context"

	"room-billing/internal/domain"
)

// BillingGateway defines the backend calls the billing view depends on.
// The usecase layer depends on this interface, not on the REST client.
//
//go:generate mockgen -destination=mocks/mock_gateway.go -source=interface.go BillingGateway,ReceiptPrinter
type BillingGateway interface {
	FetchOccupants(ctx context.Context) ([]domain.OccupantRecord, domain.FeedShape, error)
	FetchBalances(ctx context.Context) ([]domain.BalanceSummary, error)
	CreatePayment(ctx context.Context, req domain.PaymentRequest) (*domain.PaymentRecord, error)
	FetchUserProfile(ctx context.Context) (*domain.UserProfile, error)
	FetchPatient(ctx context.Context, id domain.PatientID) (*domain.PatientRef, error)
	FetchPaymentHistory(ctx context.Context, id domain.PatientID) ([]domain.PaymentHistoryEntry, error)
}

// ReceiptPrinter hands a completed payment to the receipt flow and returns
// where the receipt can be opened.
type ReceiptPrinter interface {
	Print(ctx context.Context, receipt domain.Receipt) (string, error)
}
