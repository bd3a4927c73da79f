package storage

import (
	"context"
	"database/sql"
	"fmt"

	"fatura/internal/core"
)

// Queries bundles the raw SQL the repository runs. Rows are scanned straight
// into core value types; SQLite stores booleans as integers, so is_active is
// scanned through an int.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

func (q *Queries) CreateCard(ctx context.Context, c core.Card) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO cards (id, name, due_day, is_active) VALUES (?, ?, ?, ?)`,
		c.ID, c.Name, c.DueDay, boolToInt(c.IsActive))
	return err
}

func (q *Queries) GetCard(ctx context.Context, id string) (core.Card, error) {
	var (
		c      core.Card
		active int
	)
	err := q.db.QueryRowContext(ctx,
		`SELECT id, name, due_day, is_active FROM cards WHERE id = ?`, id).
		Scan(&c.ID, &c.Name, &c.DueDay, &active)
	if err != nil {
		return core.Card{}, err
	}
	c.IsActive = active != 0
	return c, nil
}

func (q *Queries) ListCards(ctx context.Context) ([]core.Card, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, due_day, is_active FROM cards ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []core.Card
	for rows.Next() {
		var (
			c      core.Card
			active int
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.DueDay, &active); err != nil {
			return nil, err
		}
		c.IsActive = active != 0
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (q *Queries) ListActiveCards(ctx context.Context) ([]core.Card, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, name, due_day, is_active FROM cards WHERE is_active = 1 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []core.Card
	for rows.Next() {
		var (
			c      core.Card
			active int
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.DueDay, &active); err != nil {
			return nil, err
		}
		c.IsActive = active != 0
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (q *Queries) CreateInstallmentDebt(ctx context.Context, d core.InstallmentDebt) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO installment_debts
		 (id, card_id, description, category, installment_amount_cents, installments, paid_installments, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.CardID, d.Description, d.Category,
		d.InstallmentAmount.Cents, d.Installments, d.PaidInstallments, boolToInt(d.IsActive))
	return err
}

func (q *Queries) ListInstallmentDebtsByCard(ctx context.Context, cardID string) ([]core.InstallmentDebt, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, card_id, description, category, installment_amount_cents,
		        installments, paid_installments, is_active
		 FROM installment_debts WHERE card_id = ? ORDER BY created_at`, cardID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanInstallmentDebts(rows)
}

func (q *Queries) CreateRecurringTransaction(ctx context.Context, r core.RecurringTransaction) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO recurring_transactions
		 (id, payment_method_id, payment_method_type, description, category, amount_cents, frequency, type, is_active)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.PaymentMethodID, string(r.PaymentMethodType), r.Description, r.Category,
		r.Amount.Cents, string(r.Frequency), string(r.Type), boolToInt(r.IsActive))
	return err
}

func (q *Queries) ListRecurringByPaymentMethod(ctx context.Context, paymentMethodID string) ([]core.RecurringTransaction, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, payment_method_id, payment_method_type, description, category,
		        amount_cents, frequency, type, is_active
		 FROM recurring_transactions WHERE payment_method_id = ? ORDER BY created_at`, paymentMethodID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRecurringTransactions(rows)
}

func scanInstallmentDebts(rows *sql.Rows) ([]core.InstallmentDebt, error) {
	var debts []core.InstallmentDebt
	for rows.Next() {
		var (
			d      core.InstallmentDebt
			active int
		)
		if err := rows.Scan(&d.ID, &d.CardID, &d.Description, &d.Category,
			&d.InstallmentAmount.Cents, &d.Installments, &d.PaidInstallments, &active); err != nil {
			return nil, fmt.Errorf("scan installment debt: %w", err)
		}
		d.IsActive = active != 0
		debts = append(debts, d)
	}
	return debts, rows.Err()
}

func scanRecurringTransactions(rows *sql.Rows) ([]core.RecurringTransaction, error) {
	var out []core.RecurringTransaction
	for rows.Next() {
		var (
			r          core.RecurringTransaction
			methodType string
			frequency  string
			txType     string
			active     int
		)
		if err := rows.Scan(&r.ID, &r.PaymentMethodID, &methodType, &r.Description, &r.Category,
			&r.Amount.Cents, &frequency, &txType, &active); err != nil {
			return nil, fmt.Errorf("scan recurring transaction: %w", err)
		}
		r.PaymentMethodType = core.PaymentMethodType(methodType)
		r.Frequency = core.Frequency(frequency)
		r.Type = core.TransactionType(txType)
		r.IsActive = active != 0
		out = append(out, r)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
