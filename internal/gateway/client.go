package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"room-billing/internal/domain"
)

// Endpoints are backend paths relative to the API base URL. A `{id}`
// segment is replaced with the patient id.
type Endpoints struct {
	RoomPayments   string
	Registrations  string
	Balances       string
	UserProfile    string
	Patient        string
	PaymentHistory []string
}

// DefaultEndpoints returns the clinic API v1 paths.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		RoomPayments:  "treatment-room-payments/",
		Registrations: "treatment-registrations/",
		Balances:      "patient-balances/data/",
		UserProfile:   "user-profile/",
		Patient:       "patients/{id}/",
		PaymentHistory: []string{
			"payments/patient/{id}/",
			"patient-payments/?patient_id={id}",
			"wallet/transactions/?patient={id}",
		},
	}
}

// Config holds the backend connection settings.
type Config struct {
	BaseURL       string
	Token         string
	Timeout       time.Duration
	BalancesLimit int
	Endpoints     Endpoints
	// Location reads timestamps that carry no zone. Defaults to UTC.
	Location *time.Location
}

// Client talks to the clinic REST backend. It implements the usecase
// BillingGateway.
type Client struct {
	http          *resty.Client
	endpoints     Endpoints
	balancesLimit int
	loc           *time.Location
	logger        *zap.Logger
	now           func() time.Time
}

// NewClient creates a backend client. Requests are never retried; the
// occupancy fallback chain is the only retry policy.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Cache-Control", "no-cache").
		SetHeader("Pragma", "no-cache")
	if cfg.Token != "" {
		httpClient.SetAuthToken(cfg.Token)
	}

	endpoints := cfg.Endpoints
	if endpoints.RoomPayments == "" {
		endpoints = DefaultEndpoints()
	}
	limit := cfg.BalancesLimit
	if limit <= 0 {
		limit = 500
	}

	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}

	return &Client{
		http:          httpClient,
		endpoints:     endpoints,
		balancesLimit: limit,
		loc:           loc,
		logger:        logger,
		now:           time.Now,
	}
}

type requestOptions struct {
	path  map[string]string
	query map[string]string
	body  any
}

// do executes one request and returns the trimmed body. A 204 or an empty
// body yields nil. Transport errors and non-2xx statuses become FetchFailure.
func (c *Client) do(ctx context.Context, method, endpoint string, opts requestOptions) (json.RawMessage, error) {
	requestID := uuid.NewString()
	req := c.http.R().
		SetContext(ctx).
		SetHeader("X-Request-ID", requestID)
	if len(opts.path) > 0 {
		req.SetPathParams(opts.path)
	}
	if len(opts.query) > 0 {
		req.SetQueryParams(opts.query)
	}
	if method == http.MethodGet {
		// cache buster, the backend sits behind caching proxies
		req.SetQueryParam("_", strconv.FormatInt(c.now().UnixMilli(), 10))
	}
	if opts.body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(opts.body)
	}

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		c.logger.Warn("Backend request failed",
			zap.String("method", method),
			zap.String("endpoint", endpoint),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, &domain.FetchFailure{Endpoint: endpoint, Err: err}
	}

	c.logger.Debug("Backend request completed",
		zap.String("method", method),
		zap.String("endpoint", endpoint),
		zap.String("request_id", requestID),
		zap.Int("status_code", resp.StatusCode()),
		zap.Duration("latency", resp.Time()),
	)

	if resp.StatusCode() == http.StatusNoContent {
		return nil, nil
	}
	if resp.IsError() {
		text := strings.TrimSpace(resp.String())
		if text == "" {
			text = http.StatusText(resp.StatusCode())
		}
		return nil, &domain.FetchFailure{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode(),
			Err:        errors.New(text),
		}
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 {
		return nil, nil
	}
	return json.RawMessage(body), nil
}

func (c *Client) get(ctx context.Context, endpoint string, opts requestOptions) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, endpoint, opts)
}
