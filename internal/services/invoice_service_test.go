package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fatura/internal/billing"
	"fatura/internal/core"
)

type fakeStore struct {
	cards     map[string]core.Card
	debts     []core.InstallmentDebt
	recurring []core.RecurringTransaction
	err       error
}

func (f *fakeStore) GetCard(_ context.Context, id string) (core.Card, error) {
	if f.err != nil {
		return core.Card{}, f.err
	}
	c, ok := f.cards[id]
	if !ok {
		return core.Card{}, errors.New("card not found")
	}
	return c, nil
}

func (f *fakeStore) ListInstallmentDebtsByCard(_ context.Context, cardID string) ([]core.InstallmentDebt, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []core.InstallmentDebt
	for _, d := range f.debts {
		if d.CardID == cardID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeStore) ListRecurringByPaymentMethod(_ context.Context, paymentMethodID string) ([]core.RecurringTransaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []core.RecurringTransaction
	for _, r := range f.recurring {
		if r.PaymentMethodID == paymentMethodID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListActiveCards(_ context.Context) ([]core.Card, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []core.Card
	for _, c := range f.cards {
		if c.IsActive {
			out = append(out, c)
		}
	}
	return out, nil
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		cards: map[string]core.Card{
			"c1": {ID: "c1", Name: "Nubank", DueDay: 20, IsActive: true},
		},
		debts: []core.InstallmentDebt{
			{ID: "d1", CardID: "c1", Description: "Notebook", Category: "Eletrônicos", InstallmentAmount: core.Money{Cents: 15000}, Installments: 10, IsActive: true},
		},
		recurring: []core.RecurringTransaction{
			{ID: "r1", PaymentMethodID: "c1", PaymentMethodType: core.CardMethod, Description: "Streaming", Category: "Assinaturas", Amount: core.Money{Cents: 8990}, Frequency: core.Monthly, Type: core.Expense, IsActive: true},
		},
	}
}

func TestInvoiceServiceStatement(t *testing.T) {
	svc := NewInvoiceService(newFakeStore(), 7)
	now := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)

	stmt, err := svc.Statement(context.Background(), "c1", time.March, 2026, now)
	if err != nil {
		t.Fatalf("Statement() error = %v", err)
	}

	if stmt.Card.Name != "Nubank" {
		t.Errorf("card name = %q, want Nubank", stmt.Card.Name)
	}
	if stmt.Label != "March/2026" {
		t.Errorf("label = %q, want March/2026", stmt.Label)
	}
	if got := stmt.DueDate; got != time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC) {
		t.Errorf("due date = %v", got)
	}
	if got := stmt.ClosingDate; got != time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC) {
		t.Errorf("closing date = %v", got)
	}
	if stmt.Total.Cents != 23990 {
		t.Errorf("total = %d cents, want 23990", stmt.Total.Cents)
	}
	if len(stmt.Lines) != 2 {
		t.Errorf("lines = %d, want 2", len(stmt.Lines))
	}
	// Ten days out from the due day, well clear of the warning band.
	if stmt.Status.Level != billing.StatusOK {
		t.Errorf("status level = %q, want ok", stmt.Status.Level)
	}
}

func TestInvoiceServiceStatementNearDueDate(t *testing.T) {
	svc := NewInvoiceService(newFakeStore(), 7)
	now := time.Date(2026, time.March, 18, 9, 0, 0, 0, time.UTC)

	stmt, err := svc.Statement(context.Background(), "c1", time.March, 2026, now)
	if err != nil {
		t.Fatalf("Statement() error = %v", err)
	}
	if stmt.Status.Level != billing.StatusDanger {
		t.Errorf("status level = %q, want danger", stmt.Status.Level)
	}
	if stmt.Status.DaysUntilDue != 2 {
		t.Errorf("days until due = %d, want 2", stmt.Status.DaysUntilDue)
	}
}

func TestInvoiceServiceStatementDefaultsMonth(t *testing.T) {
	svc := NewInvoiceService(newFakeStore(), 7)

	// On the due day the invoice rolls to the next month.
	now := time.Date(2026, time.January, 20, 12, 0, 0, 0, time.UTC)
	stmt, err := svc.Statement(context.Background(), "c1", 0, 0, now)
	if err != nil {
		t.Fatalf("Statement() error = %v", err)
	}
	if stmt.Month != time.February || stmt.Year != 2026 {
		t.Errorf("defaulted to %v/%d, want February/2026", stmt.Month, stmt.Year)
	}
	if stmt.Label != "February/2026" {
		t.Errorf("label = %q, want February/2026", stmt.Label)
	}
}

func TestInvoiceServiceStatementUnknownCard(t *testing.T) {
	svc := NewInvoiceService(newFakeStore(), 7)
	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Statement(context.Background(), "missing", time.March, 2026, now); err == nil {
		t.Error("expected error for unknown card")
	}
}

func TestInvoiceServiceCardStatus(t *testing.T) {
	svc := NewInvoiceService(newFakeStore(), 7)
	now := time.Date(2026, time.March, 25, 0, 0, 0, 0, time.UTC)

	card, status, err := svc.CardStatus(context.Background(), "c1", now)
	if err != nil {
		t.Fatalf("CardStatus() error = %v", err)
	}
	if card.ID != "c1" {
		t.Errorf("card id = %q", card.ID)
	}
	if status.DaysUntilDue != -5 {
		t.Errorf("days until due = %d, want -5", status.DaysUntilDue)
	}
	if status.Message != "Venceu há 5 dia(s)" {
		t.Errorf("message = %q", status.Message)
	}
}

func TestNewInvoiceServiceDefaultOffset(t *testing.T) {
	svc := NewInvoiceService(newFakeStore(), 0)
	if svc.closingDaysBefore != billing.DefaultClosingOffset {
		t.Errorf("closingDaysBefore = %d, want %d", svc.closingDaysBefore, billing.DefaultClosingOffset)
	}
}
