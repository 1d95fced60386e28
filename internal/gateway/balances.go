package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"room-billing/internal/domain"
)

// balanceItem is one entry of `patient-balances/data/`.
type balanceItem struct {
	ID           flexText   `json:"id"`
	Name         flexText   `json:"name"`
	FirstName    flexText   `json:"first_name"`
	LastName     flexText   `json:"last_name"`
	RoomCost     flexNumber `json:"room_cost"`
	RoomExpected flexNumber `json:"room_expected"`
	Breakdown    struct {
		Room flexNumber `json:"yotoq"`
	} `json:"breakdown"`
	Balance      flexNumber `json:"balance"`
	BalanceTotal flexNumber `json:"balance_total"`
	ExpectedDue  flexNumber `json:"expected_due"`
	BilledTotal  flexNumber `json:"billed_total"`
	Total        flexNumber `json:"total"`
	PaidTotal    flexNumber `json:"paid_total"`
	Paid         flexNumber `json:"paid"`
}

func (b balanceItem) summary() domain.BalanceSummary {
	return domain.BalanceSummary{
		PatientID: domain.PatientID(b.ID.String()),
		Name:      orPlaceholder(firstText(b.Name, flexText(joinName(b.FirstName, b.LastName)))),
		RoomCost:  firstPresent(b.RoomCost, b.RoomExpected, b.Breakdown.Room),
		Balance:   firstPresentOr(b.BalanceTotal.value, b.Balance),
		Billed:    firstPresentOr(0, b.ExpectedDue, b.BilledTotal, b.Total),
		Paid:      firstPresentOr(0, b.PaidTotal, b.Paid),
	}
}

// FetchBalances reads the per-patient balance summaries. Entries without an
// id are dropped since they can neither be matched nor shown.
func (c *Client) FetchBalances(ctx context.Context) ([]domain.BalanceSummary, error) {
	raw, err := c.get(ctx, c.endpoints.Balances, requestOptions{
		query: map[string]string{"limit": strconv.Itoa(c.balancesLimit)},
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Items []balanceItem `json:"items"`
	}
	if leadingByte(raw) == '{' {
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, &domain.FetchFailure{
				Endpoint: c.endpoints.Balances,
				Err:      fmt.Errorf("could not decode balances: %w", err),
			}
		}
	}

	summaries := make([]domain.BalanceSummary, 0, len(payload.Items))
	for _, item := range payload.Items {
		s := item.summary()
		if s.PatientID == "" {
			continue
		}
		summaries = append(summaries, s)
	}
	return summaries, nil
}
