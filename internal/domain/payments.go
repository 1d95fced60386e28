package domain

import (
	"strings"
	"time"
)

// TransactionTypeTreatment marks payments posted from the treatment-room view.
const TransactionTypeTreatment = "treatment"

// PaymentRequest is a new payment entered by staff.
type PaymentRequest struct {
	PatientID   PatientID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	Method      string    `json:"payment_method"`
	Notes       string    `json:"notes"`
}

// Validate rejects requests that must never reach the backend.
func (p PaymentRequest) Validate() error {
	if strings.TrimSpace(string(p.PatientID)) == "" {
		return &ValidationFailure{Field: "patient_id", Reason: "patient is required"}
	}
	if !(p.Amount > 0) {
		return &ValidationFailure{Field: "amount", Reason: "amount must be greater than zero"}
	}
	return nil
}

// PaymentRecord is the backend's acknowledgement of a created payment.
type PaymentRecord struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"date"`
}

// Receipt is handed to the receipt collaborator after a payment succeeds.
type Receipt struct {
	PaymentID   string    `json:"payment_id"`
	PatientID   PatientID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	Amount      float64   `json:"amount"`
	Status      string    `json:"status"`
	Method      string    `json:"payment_method"`
	Notes       string    `json:"notes"`
	Date        time.Time `json:"date"`
	ProcessedBy string    `json:"processed_by"`
	URL         string    `json:"url,omitempty"`
}

// UserProfile is the signed-in staff member as reported by the backend.
type UserProfile struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// DisplayName prefers the full name over the email. Empty when neither is set.
func (u UserProfile) DisplayName() string {
	if name := strings.TrimSpace(u.FullName); name != "" {
		return name
	}
	return strings.TrimSpace(u.Email)
}

// PatientRef is the minimal patient card used by the payment history.
type PatientRef struct {
	ID        PatientID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
}

// FullName joins first and last name.
func (p PatientRef) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// PaymentHistoryEntry is one ledger line of a patient's payment history.
type PaymentHistoryEntry struct {
	Type        string     `json:"type"`
	Amount      float64    `json:"amount"`
	Status      string     `json:"status"`
	ServiceName string     `json:"service_name"`
	Date        *time.Time `json:"date,omitempty"`
}

// PaymentHistory is a patient's ledger with derived totals.
type PaymentHistory struct {
	PatientID   PatientID             `json:"patient_id"`
	PatientName string                `json:"patient_name"`
	Entries     []PaymentHistoryEntry `json:"entries"`
	TotalBilled float64               `json:"total_billed"`
	TotalPaid   float64               `json:"total_paid"`
	Balance     float64               `json:"balance"`
}
