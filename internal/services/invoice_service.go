package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fatura/internal/billing"
	"fatura/internal/core"
)

// CardStore is the slice of the repository the invoice service reads from.
type CardStore interface {
	GetCard(ctx context.Context, id string) (core.Card, error)
	ListInstallmentDebtsByCard(ctx context.Context, cardID string) ([]core.InstallmentDebt, error)
	ListRecurringByPaymentMethod(ctx context.Context, paymentMethodID string) ([]core.RecurringTransaction, error)
}

// Statement is a fully assembled card invoice for one billing month.
type Statement struct {
	Card        core.Card
	Month       time.Month
	Year        int
	Label       string
	ClosingDate time.Time
	DueDate     time.Time
	Status      billing.Status
	Total       core.Money
	Lines       []core.StatementLine
}

// InvoiceService assembles statements by joining the repository with the
// billing cycle engine.
type InvoiceService struct {
	store             CardStore
	closingDaysBefore int
}

func NewInvoiceService(store CardStore, closingDaysBefore int) *InvoiceService {
	if closingDaysBefore <= 0 {
		closingDaysBefore = billing.DefaultClosingOffset
	}
	return &InvoiceService{
		store:             store,
		closingDaysBefore: closingDaysBefore,
	}
}

// Statement builds the invoice for a card at the month/year the caller asks
// for. Cycle dates are anchored on now, so the returned closing and due dates
// always describe the upcoming cycle.
func (s *InvoiceService) Statement(ctx context.Context, cardID string, month time.Month, year int, now time.Time) (*Statement, error) {
	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("load card: %w", err)
	}

	debts, err := s.store.ListInstallmentDebtsByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("load installment debts: %w", err)
	}

	recurring, err := s.store.ListRecurringByPaymentMethod(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("load recurring transactions: %w", err)
	}

	im := billing.InvoiceMonthYear(card.DueDay, now)
	if month == 0 {
		month, year = im.Month, im.Year
	}

	stmt := &Statement{
		Card:        card,
		Month:       month,
		Year:        year,
		Label:       month.String() + "/" + strconv.Itoa(year),
		ClosingDate: billing.ClosingDate(card.DueDay, s.closingDaysBefore, now),
		DueDate:     billing.NextDueDate(card.DueDay, now),
		Status:      billing.DueStatus(card.DueDay, now),
		Total:       billing.InvoiceTotal(cardID, month, year, debts, recurring),
		Lines:       billing.InvoiceLines(cardID, debts, recurring),
	}

	slog.InfoContext(ctx, "Statement assembled",
		"card_id", card.ID,
		"label", stmt.Label,
		"lines", len(stmt.Lines),
		"total_cents", stmt.Total.Cents)

	return stmt, nil
}

// CardStatus reports the due status of a single card at now.
func (s *InvoiceService) CardStatus(ctx context.Context, cardID string, now time.Time) (core.Card, billing.Status, error) {
	card, err := s.store.GetCard(ctx, cardID)
	if err != nil {
		return core.Card{}, billing.Status{}, fmt.Errorf("load card: %w", err)
	}
	return card, billing.DueStatus(card.DueDay, now), nil
}
