// Package worker consumes due-alert messages and records them on an external
// sheet.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"fatura/internal/amqp"
	"fatura/internal/sheets"
)

// AlertWorker handles due-alert messages consumed from AMQP, appending each
// one to the alerts sheet.
type AlertWorker struct {
	sheets sheets.AlertWriter
}

func NewAlertWorker(sheets sheets.AlertWriter) *AlertWorker {
	return &AlertWorker{sheets: sheets}
}

// HandleDueAlert processes a single due-alert message from AMQP.
func (w *AlertWorker) HandleDueAlert(ctx context.Context, msg *amqp.DueAlertMessage) error {
	slog.InfoContext(ctx, "Processing due alert",
		"card_id", msg.CardID,
		"card_name", msg.CardName,
		"level", msg.Level,
		"days_until_due", msg.DaysUntilDue)

	if w.sheets == nil {
		slog.WarnContext(ctx, "Sheets writer not available, dropping alert",
			"card_id", msg.CardID)
		return nil
	}

	ref, err := w.sheets.AppendAlert(ctx, msg.CardName, msg.DueDate, msg.DaysUntilDue, msg.Level, msg.Message)
	if err != nil {
		return fmt.Errorf("append alert for card %s: %w", msg.CardID, err)
	}

	slog.InfoContext(ctx, "Due alert recorded",
		"card_id", msg.CardID,
		"sheets_ref", ref)
	return nil
}
