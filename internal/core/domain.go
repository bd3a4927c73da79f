package core

import (
	"errors"
	"strings"
)

const (
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
	Weekly  Frequency = "weekly"
	Daily   Frequency = "daily"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

const (
	CardMethod  PaymentMethodType = "card"
	OtherMethod PaymentMethodType = "other"
)

type (
	Frequency         string
	TransactionType   string
	PaymentMethodType string

	Money struct {
		Cents int64
	}

	// Card holds the billing configuration of one credit card. DueDay is the
	// anchor for every cycle calculation; there is no persisted closing day,
	// it is derived as dueDay minus a configurable offset.
	Card struct {
		ID       string
		Name     string
		DueDay   int
		IsActive bool
	}

	// InstallmentDebt is a purchase split into fixed monthly charges.
	InstallmentDebt struct {
		ID                string
		CardID            string
		Description       string
		Category          string
		InstallmentAmount Money
		Installments      int
		PaidInstallments  int
		IsActive          bool
	}

	// RecurringTransaction is a template that recreates itself on a fixed
	// schedule. Only monthly card expenses count toward a projected invoice.
	RecurringTransaction struct {
		ID                string
		PaymentMethodID   string
		PaymentMethodType PaymentMethodType
		Description       string
		Category          string
		Amount            Money
		Frequency         Frequency
		Type              TransactionType
		IsActive          bool
	}
)

var (
	ErrInvalidDueDay    = errors.New("invalid due day")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyCardID      = errors.New("empty card id")
	ErrEmptyDescription = errors.New("empty description")
)

func (f Frequency) IsValid() bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense
}

func (p PaymentMethodType) IsValid() bool {
	return p == CardMethod || p == OtherMethod
}

func (m Money) Validate() error {
	if m.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks a card before persisting it. The billing engine itself is
// permissive about dueDay and relies on date normalization; validation only
// applies to user-created records.
func (c Card) Validate() error {
	if len(strings.TrimSpace(c.Name)) == 0 {
		return ErrEmptyName
	}
	if len(c.Name) > 100 {
		return errors.New("name too long (max 100 characters)")
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return ErrInvalidDueDay
	}
	return nil
}

func (d InstallmentDebt) Validate() error {
	if strings.TrimSpace(d.CardID) == "" {
		return ErrEmptyCardID
	}
	if len(strings.TrimSpace(d.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(d.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := d.InstallmentAmount.Validate(); err != nil {
		return err
	}
	if d.Installments < 1 {
		return errors.New("installment count must be at least 1")
	}
	if d.PaidInstallments < 0 || d.PaidInstallments > d.Installments {
		return errors.New("paid installments out of range")
	}
	return nil
}

func (r RecurringTransaction) Validate() error {
	if strings.TrimSpace(r.PaymentMethodID) == "" {
		return errors.New("empty payment method id")
	}
	if !r.PaymentMethodType.IsValid() {
		return errors.New("invalid payment method type")
	}
	if len(strings.TrimSpace(r.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(r.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if err := r.Amount.Validate(); err != nil {
		return err
	}
	if !r.Frequency.IsValid() {
		return errors.New("invalid frequency")
	}
	if !r.Type.IsValid() {
		return errors.New("invalid transaction type")
	}
	return nil
}
