package usecase

import (
	"context"
	"fmt"

	"room-billing/internal/domain"
)

// Intent is a user action on the view.
type Intent interface {
	intent()
}

// Reload asks for a full refetch of the view.
type Reload struct{}

// SetFilter selects the rows to show.
type SetFilter struct {
	Filter domain.Filter
}

// SubmitPayment records a payment for a patient.
type SubmitPayment struct {
	Request domain.PaymentRequest
}

func (Reload) intent()        {}
func (SetFilter) intent()     {}
func (SubmitPayment) intent() {}

// Outcome is the view after an intent was applied.
type Outcome struct {
	Snapshot domain.ViewSnapshot
	Receipt  *domain.Receipt
}

// Dispatch applies one intent and returns the resulting view. On error the
// snapshot still reflects the cache, which an error never clears.
func (v *BillingView) Dispatch(ctx context.Context, in Intent) (Outcome, error) {
	var (
		out Outcome
		err error
	)
	switch i := in.(type) {
	case Reload:
		err = v.Reload(ctx)
	case SetFilter:
		err = v.SetFilter(i.Filter)
	case SubmitPayment:
		out.Receipt, err = v.SubmitPayment(ctx, i.Request)
	default:
		err = fmt.Errorf("unsupported intent %T", in)
	}
	out.Snapshot = v.Snapshot()
	return out, err
}
