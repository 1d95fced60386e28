package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"room-billing/internal/domain"
	"room-billing/internal/render"
	"room-billing/internal/usecase"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handlers contains all HTTP request handlers
type Handlers struct {
	service BillingService
	logger  *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(service BillingService, logger *zap.Logger) *Handlers {
	return &Handlers{service: service, logger: logger}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// PaymentResponse is the result of a submitted payment
type PaymentResponse struct {
	Receipt *domain.Receipt     `json:"receipt"`
	View    domain.ViewSnapshot `json:"view"`
}

// FilterRequest selects the view filter
type FilterRequest struct {
	Filter string `json:"filter"`
}

// PaymentRequest is the add-payment form
type PaymentRequest struct {
	PatientID   patientIDParam `json:"patient_id"`
	PatientName string         `json:"patient_name"`
	Amount      float64        `json:"amount"`
	Status      string         `json:"status"`
	Method      string         `json:"payment_method"`
	Notes       string         `json:"notes"`
}

// patientIDParam accepts the patient id as a JSON string or number.
type patientIDParam string

func (p *patientIDParam) UnmarshalJSON(b []byte) error {
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*p = patientIDParam(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*p = patientIDParam(s)
	return nil
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"status":    "healthy",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// snapshot projects the view through ?filter= when given, else the current filter.
func (h *Handlers) snapshot(c *gin.Context) (domain.ViewSnapshot, bool) {
	raw, ok := c.GetQuery("filter")
	if !ok {
		return h.service.Snapshot(), true
	}
	filter, err := domain.ParseFilter(raw)
	if err == nil {
		var snap domain.ViewSnapshot
		if snap, err = h.service.SnapshotWith(filter); err == nil {
			return snap, true
		}
	}
	h.fail(c, err)
	return domain.ViewSnapshot{}, false
}

// ListRooms handles GET /api/rooms
func (h *Handlers) ListRooms(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: snap})
}

// RoomCards handles GET /rooms
func (h *Handlers) RoomCards(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := render.Cards(&buf, snap); err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
}

// ExportRooms handles GET /api/rooms/export.xlsx
func (h *Handlers) ExportRooms(c *gin.Context) {
	snap, ok := h.snapshot(c)
	if !ok {
		return
	}
	data, err := render.ExportXLSX(snap)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="room-payments-`+string(snap.Filter)+`.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Reload handles POST /api/reload
func (h *Handlers) Reload(c *gin.Context) {
	out, err := h.service.Dispatch(c.Request.Context(), usecase.Reload{})
	if err != nil {
		h.failWith(c, err, out.Snapshot)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: out.Snapshot})
}

// SetFilter handles POST /api/filter
func (h *Handlers) SetFilter(c *gin.Context) {
	var req FilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, &domain.ValidationFailure{Field: "body", Reason: err.Error()})
		return
	}
	out, err := h.service.Dispatch(c.Request.Context(), usecase.SetFilter{Filter: domain.Filter(req.Filter)})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: out.Snapshot})
}

// SubmitPayment handles POST /api/payments
func (h *Handlers) SubmitPayment(c *gin.Context) {
	var req PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, &domain.ValidationFailure{Field: "body", Reason: err.Error()})
		return
	}

	out, err := h.service.Dispatch(c.Request.Context(), usecase.SubmitPayment{
		Request: domain.PaymentRequest{
			PatientID:   domain.PatientID(strings.TrimSpace(string(req.PatientID))),
			PatientName: req.PatientName,
			Amount:      req.Amount,
			Status:      req.Status,
			Method:      req.Method,
			Notes:       req.Notes,
		},
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    PaymentResponse{Receipt: out.Receipt, View: out.Snapshot},
	})
}

// PaymentHistory handles GET /api/patients/:id/payments
func (h *Handlers) PaymentHistory(c *gin.Context) {
	history, err := h.service.PaymentHistory(c.Request.Context(), domain.PatientID(c.Param("id")))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: history})
}

func (h *Handlers) fail(c *gin.Context, err error) {
	h.failWith(c, err, nil)
}

func (h *Handlers) failWith(c *gin.Context, err error, data interface{}) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.JSON(status, Response{Success: false, Data: data, Error: err.Error()})
}

// statusFor maps domain errors onto HTTP statuses.
func statusFor(err error) int {
	var validation *domain.ValidationFailure
	var fetch *domain.FetchFailure
	switch {
	case errors.As(err, &validation):
		return http.StatusBadRequest
	case errors.As(err, &fetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
