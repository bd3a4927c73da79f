package storage

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fatura/internal/core"

	_ "modernc.org/sqlite"
)

// ErrCardNotFound is returned when a card ID does not exist.
var ErrCardNotFound = errors.New("card not found")

// SQLiteRepository persists cards, installment debts and recurring
// transactions. It is the only stateful collaborator of the billing engine,
// which itself owns no storage.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// CreateCard validates and stores a card, assigning its ID.
func (r *SQLiteRepository) CreateCard(ctx context.Context, c core.Card) (core.Card, error) {
	if err := c.Validate(); err != nil {
		return core.Card{}, fmt.Errorf("validate card: %w", err)
	}
	c.ID = newID()
	if err := r.queries.CreateCard(ctx, c); err != nil {
		return core.Card{}, fmt.Errorf("create card: %w", err)
	}

	slog.InfoContext(ctx, "Card saved",
		"id", c.ID,
		"name", c.Name,
		"due_day", c.DueDay)

	return c, nil
}

func (r *SQLiteRepository) GetCard(ctx context.Context, id string) (core.Card, error) {
	c, err := r.queries.GetCard(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Card{}, fmt.Errorf("get card %s: %w", id, ErrCardNotFound)
	}
	if err != nil {
		return core.Card{}, fmt.Errorf("get card %s: %w", id, err)
	}
	return c, nil
}

func (r *SQLiteRepository) ListCards(ctx context.Context) ([]core.Card, error) {
	cards, err := r.queries.ListCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

func (r *SQLiteRepository) ListActiveCards(ctx context.Context) ([]core.Card, error) {
	cards, err := r.queries.ListActiveCards(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active cards: %w", err)
	}
	return cards, nil
}

// CreateInstallmentDebt validates and stores an installment debt.
func (r *SQLiteRepository) CreateInstallmentDebt(ctx context.Context, d core.InstallmentDebt) (core.InstallmentDebt, error) {
	if err := d.Validate(); err != nil {
		return core.InstallmentDebt{}, fmt.Errorf("validate installment debt: %w", err)
	}
	d.ID = newID()
	if err := r.queries.CreateInstallmentDebt(ctx, d); err != nil {
		return core.InstallmentDebt{}, fmt.Errorf("create installment debt: %w", err)
	}

	slog.InfoContext(ctx, "Installment debt saved",
		"id", d.ID,
		"card_id", d.CardID,
		"description", d.Description,
		"amount_cents", d.InstallmentAmount.Cents)

	return d, nil
}

func (r *SQLiteRepository) ListInstallmentDebtsByCard(ctx context.Context, cardID string) ([]core.InstallmentDebt, error) {
	debts, err := r.queries.ListInstallmentDebtsByCard(ctx, cardID)
	if err != nil {
		return nil, fmt.Errorf("list installment debts for card %s: %w", cardID, err)
	}
	return debts, nil
}

// CreateRecurringTransaction validates and stores a recurring template.
func (r *SQLiteRepository) CreateRecurringTransaction(ctx context.Context, rt core.RecurringTransaction) (core.RecurringTransaction, error) {
	if err := rt.Validate(); err != nil {
		return core.RecurringTransaction{}, fmt.Errorf("validate recurring transaction: %w", err)
	}
	rt.ID = newID()
	if err := r.queries.CreateRecurringTransaction(ctx, rt); err != nil {
		return core.RecurringTransaction{}, fmt.Errorf("create recurring transaction: %w", err)
	}

	slog.InfoContext(ctx, "Recurring transaction saved",
		"id", rt.ID,
		"payment_method_id", rt.PaymentMethodID,
		"frequency", string(rt.Frequency),
		"amount_cents", rt.Amount.Cents)

	return rt, nil
}

func (r *SQLiteRepository) ListRecurringByPaymentMethod(ctx context.Context, paymentMethodID string) ([]core.RecurringTransaction, error) {
	out, err := r.queries.ListRecurringByPaymentMethod(ctx, paymentMethodID)
	if err != nil {
		return nil, fmt.Errorf("list recurring transactions for %s: %w", paymentMethodID, err)
	}
	return out, nil
}

// newID returns a random 16-hex-char identifier.
func newID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		// rand.Read on supported platforms never fails; keep a stable
		// fallback anyway.
		return fmt.Sprintf("%x", os.Getpid())
	}
	return hex.EncodeToString(buf)
}
