package billing

import (
	"fmt"
	"time"
)

// StatusLevel is the badge color tier for a card's due date.
type StatusLevel string

const (
	StatusOK      StatusLevel = "ok"
	StatusWarning StatusLevel = "warning"
	StatusDanger  StatusLevel = "danger"
)

// Status is the tiered due-date classification rendered as a badge.
type Status struct {
	Level        StatusLevel
	Message      string
	DaysUntilDue int
}

// DueStatus classifies how close ref is to the card's due date.
//
// Unlike DaysUntilDue this measures against the current month's due date, not
// the next cycle's, so the count goes negative once this month's invoice has
// lapsed and is exactly zero on the due day. The two call paths are kept
// separate: DaysUntilDue feeds cycle math and never goes negative, this one
// feeds the badge and must be able to say "overdue".
//
// Tiers, first match wins: <0 danger (overdue), 0 danger (due today),
// 1..3 danger, 4..7 warning, >7 ok.
func DueStatus(dueDay int, ref time.Time) Status {
	due := time.Date(ref.Year(), ref.Month(), dueDay, 0, 0, 0, 0, ref.Location())
	days := daysBetween(ref, due)

	switch {
	case days < 0:
		return Status{
			Level:        StatusDanger,
			Message:      fmt.Sprintf("Venceu há %d dia(s)", -days),
			DaysUntilDue: days,
		}
	case days == 0:
		return Status{
			Level:        StatusDanger,
			Message:      "Vence hoje!",
			DaysUntilDue: 0,
		}
	case days <= 3:
		return Status{
			Level:        StatusDanger,
			Message:      fmt.Sprintf("Vence em %d dia(s)", days),
			DaysUntilDue: days,
		}
	case days <= 7:
		return Status{
			Level:        StatusWarning,
			Message:      fmt.Sprintf("Vence em %d dia(s)", days),
			DaysUntilDue: days,
		}
	default:
		return Status{
			Level:        StatusOK,
			Message:      fmt.Sprintf("Vence em %d dia(s)", days),
			DaysUntilDue: days,
		}
	}
}
