package domain

import (
	"fmt"
	"strings"
	"time"
)

// Filter selects which cached rows the view shows.
type Filter string

const (
	FilterAll     Filter = "all"
	FilterUnpaid  Filter = "unpaid"
	FilterPrepaid Filter = "prepaid"
	FilterPaid    Filter = "paid"
)

// ParseFilter accepts the filter names used by the tabs. Empty means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterUnpaid, FilterPrepaid, FilterPaid:
		return f, nil
	default:
		return "", &ValidationFailure{Field: "filter", Reason: fmt.Sprintf("unknown filter %q", s)}
	}
}

// ViewCache holds the rows of the last successful reload and the selected
// filter. It is replaced wholesale on every reload.
type ViewCache struct {
	Active         []OccupancyRow
	DischargedPaid []OccupancyRow
	CurrentFilter  Filter
	LoadedAt       time.Time
	Shape          FeedShape
	// LastError is the message of the most recent failed reload, cleared by
	// the next successful one.
	LastError string
}

// Project returns the rows visible under the current filter.
//
// "all" shows active rows only and "paid" shows discharged-paid rows only,
// so an active row with status paid is visible under "all" but never under
// "paid". The asymmetry is inherited from the payments page and kept as is.
func (c ViewCache) Project() []OccupancyRow {
	switch c.CurrentFilter {
	case FilterPaid:
		return append([]OccupancyRow(nil), c.DischargedPaid...)
	case FilterUnpaid, FilterPrepaid:
		var out []OccupancyRow
		for _, row := range c.Active {
			if row.Status == PaymentStatus(c.CurrentFilter) {
				out = append(out, row)
			}
		}
		return out
	default:
		return append([]OccupancyRow(nil), c.Active...)
	}
}

// ViewSnapshot is the rendered state of the view handed to outputs.
type ViewSnapshot struct {
	Filter         Filter         `json:"filter"`
	Rows           []OccupancyRow `json:"rows"`
	ActiveCount    int            `json:"active_count"`
	DischargedPaid int            `json:"discharged_paid_count"`
	Shape          FeedShape      `json:"source_shape,omitempty"`
	LoadedAt       *time.Time     `json:"loaded_at,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// Snapshot projects the cache through its filter.
func (c ViewCache) Snapshot() ViewSnapshot {
	snap := ViewSnapshot{
		Filter:         c.CurrentFilter,
		Rows:           c.Project(),
		ActiveCount:    len(c.Active),
		DischargedPaid: len(c.DischargedPaid),
		Shape:          c.Shape,
		Error:          c.LastError,
	}
	if snap.Rows == nil {
		snap.Rows = make([]OccupancyRow, 0)
	}
	if !c.LoadedAt.IsZero() {
		loaded := c.LoadedAt
		snap.LoadedAt = &loaded
	}
	return snap
}
