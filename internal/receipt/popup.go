// Package receipt hands completed payments to the clinic's receipt page.
package receipt

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"room-billing/internal/domain"
)

// DateLayout is how the payment time is printed on receipts.
const DateLayout = "02.01.2006 15:04"

// PopupPrinter builds the URL of the receipt popup page. The page prints the
// receipt itself; this side only passes the payment details along.
type PopupPrinter struct {
	pageURL *url.URL
	token   string
	loc     *time.Location
	logger  *zap.Logger
}

// NewPopupPrinter creates a printer for the receipt page at pageURL. The
// token is forwarded so the page can load the payment.
func NewPopupPrinter(pageURL, token string, loc *time.Location, logger *zap.Logger) (*PopupPrinter, error) {
	if pageURL == "" {
		return nil, errors.New("receipt page url is required")
	}
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid receipt page url %q: %w", pageURL, err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return &PopupPrinter{pageURL: u, token: token, loc: loc, logger: logger}, nil
}

// Print returns the popup URL for the receipt.
func (p *PopupPrinter) Print(ctx context.Context, r domain.Receipt) (string, error) {
	if r.PaymentID == "" {
		return "", errors.New("receipt has no payment id")
	}

	u := *p.pageURL
	q := u.Query()
	q.Set("payment_id", r.PaymentID)
	if p.token != "" {
		q.Set("token", p.token)
	}
	q.Set("patient_name", r.PatientName)
	q.Set("amount", strconv.FormatFloat(r.Amount, 'f', -1, 64))
	q.Set("status", r.Status)
	q.Set("payment_method", r.Method)
	q.Set("notes", r.Notes)
	q.Set("date", FormatDate(r.Date, p.loc))
	q.Set("processed_by", r.ProcessedBy)
	u.RawQuery = q.Encode()

	p.logger.Info("Receipt ready",
		zap.String("payment_id", r.PaymentID),
		zap.String("processed_by", r.ProcessedBy),
	)
	return u.String(), nil
}

// FormatDate renders a payment time in the clinic's zone. Zero times are blank.
func FormatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(DateLayout)
}
