package render

import (
	"math"
	"strconv"
	"strings"

	"room-billing/internal/domain"
)

// Money rounds to whole units and groups thousands with spaces: 1 234 567.
func Money(v float64) string {
	n := int64(math.Round(v))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	b.WriteString(sign)
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(d)
	}
	return b.String()
}

// StatusLabel is the human label of a status.
func StatusLabel(s domain.PaymentStatus) string {
	switch s {
	case domain.StatusPaid:
		return "Paid"
	case domain.StatusPrepaid:
		return "Prepaid"
	default:
		return "Unpaid"
	}
}

// StatusBadge is the badge class of a status.
func StatusBadge(s domain.PaymentStatus) string {
	switch s {
	case domain.StatusPaid:
		return "success"
	case domain.StatusPrepaid:
		return "warning text-dark"
	default:
		return "danger"
	}
}
