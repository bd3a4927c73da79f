package billing

import (
	"time"

	"fatura/internal/core"
)

// InvoiceTotal projects the invoice total for one card by summing:
//
//  1. the monthly installment amount of every active installment debt on the
//     card. Installments contribute their full amount regardless of which
//     month is queried; month and year are accepted for interface symmetry
//     with callers that page through statements.
//  2. the amount of every active monthly recurring expense charged to the
//     card. Daily, weekly and yearly card charges are excluded from the
//     projection on purpose; only monthly templates map one-to-one onto a
//     statement line.
//
// Empty inputs or no matches yield zero. The function never fails.
func InvoiceTotal(cardID string, month time.Month, year int, debts []core.InstallmentDebt, recurring []core.RecurringTransaction) core.Money {
	_ = month
	_ = year

	var total int64
	for _, d := range debts {
		if d.CardID != cardID || !d.IsActive {
			continue
		}
		total += d.InstallmentAmount.Cents
	}
	for _, r := range recurring {
		if r.PaymentMethodType != core.CardMethod || r.PaymentMethodID != cardID {
			continue
		}
		if !r.IsActive || r.Type != core.Expense || r.Frequency != core.Monthly {
			continue
		}
		total += r.Amount.Cents
	}
	return core.Money{Cents: total}
}

// InvoiceLines lists the statement lines behind InvoiceTotal, in input order:
// one line per active installment debt on the card, then one per active
// monthly recurring expense charged to it. Summing the returned amounts gives
// the same value InvoiceTotal reports.
func InvoiceLines(cardID string, debts []core.InstallmentDebt, recurring []core.RecurringTransaction) []core.StatementLine {
	var lines []core.StatementLine
	for _, d := range debts {
		if d.CardID != cardID || !d.IsActive {
			continue
		}
		lines = append(lines, core.StatementLine{
			Description: d.Description,
			Category:    d.Category,
			Amount:      d.InstallmentAmount,
		})
	}
	for _, r := range recurring {
		if r.PaymentMethodType != core.CardMethod || r.PaymentMethodID != cardID {
			continue
		}
		if !r.IsActive || r.Type != core.Expense || r.Frequency != core.Monthly {
			continue
		}
		lines = append(lines, core.StatementLine{
			Description: r.Description,
			Category:    r.Category,
			Amount:      r.Amount,
		})
	}
	return lines
}
