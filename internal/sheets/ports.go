package sheets

import (
	"context"
	"time"

	"fatura/internal/core"
)

// Ports for outbound adapters.
type (
	// AlertWriter appends one row per due alert to an external sheet.
	AlertWriter interface {
		AppendAlert(ctx context.Context, cardName string, dueDate time.Time, daysUntilDue int, level, message string) (rowRef string, err error)
	}

	// StatementWriter appends an exported statement total for a card.
	StatementWriter interface {
		AppendStatement(ctx context.Context, cardName, label string, total core.Money) (rowRef string, err error)
	}
)
