// Package billing implements the credit-card billing-cycle engine.
//
// Every function is pure and deterministic: the reference time is always an
// explicit parameter, never read from the system clock. Callers that want
// wall-clock behavior pass time.Now() at the call site, which keeps the date
// arithmetic fully testable.
package billing

import (
	"strconv"
	"time"
)

// DefaultClosingOffset is the number of calendar days between a statement's
// closing date and its due date when no card-specific offset is configured.
const DefaultClosingOffset = 7

// InvoicePeriod classifies a purchase into a billing cycle.
type InvoicePeriod struct {
	ClosingDate      time.Time
	DueDate          time.Time
	IsCurrentInvoice bool
	DaysUntilClosing int
}

// InvoiceMonth identifies which calendar month's invoice is current.
type InvoiceMonth struct {
	Month time.Month
	Year  int
	Label string
}

// NextDueDate returns the due date of the next unpaid invoice relative to ref.
//
// If ref's day-of-month is strictly less than dueDay the due date falls in
// ref's month, otherwise in the following month (rolling the year forward at
// December). A dueDay beyond the target month's length normalizes into the
// following month (day 31 in a 30-day month becomes day 1 of the month after);
// persisted due-day values rely on this rollover, so it is kept as is.
func NextDueDate(dueDay int, ref time.Time) time.Time {
	year, month := ref.Year(), ref.Month()
	if ref.Day() < dueDay {
		return time.Date(year, month, dueDay, 0, 0, 0, 0, ref.Location())
	}
	return time.Date(year, month+1, dueDay, 0, 0, 0, 0, ref.Location())
}

// ClosingDate returns the statement closing date: the next due date minus
// closingDaysBefore calendar days.
func ClosingDate(dueDay, closingDaysBefore int, ref time.Time) time.Time {
	return NextDueDate(dueDay, ref).AddDate(0, 0, -closingDaysBefore)
}

// DaysUntilDue returns the calendar-day count from ref to the next due date.
// Both dates are normalized to midnight, so time-of-day never affects the
// result. Because NextDueDate never returns a date before ref's day, the
// count is never negative; DueStatus uses a separate overdue-capable count.
func DaysUntilDue(dueDay int, ref time.Time) int {
	return daysBetween(ref, NextDueDate(dueDay, ref))
}

// InvoicePeriodOf classifies a purchase into its billing cycle.
//
// Cycle membership is judged against the purchase date, while the closing
// countdown is judged against now. The two reference points are mixed on
// purpose: a statement view rendered today still reports which cycle an old
// purchase fell into, but counts down to closing in wall-clock days.
func InvoicePeriodOf(purchase time.Time, dueDay, closingDaysBefore int, now time.Time) InvoicePeriod {
	closing := ClosingDate(dueDay, closingDaysBefore, purchase)
	return InvoicePeriod{
		ClosingDate:      closing,
		DueDate:          NextDueDate(dueDay, purchase),
		IsCurrentInvoice: !purchase.After(closing),
		DaysUntilClosing: daysBetween(now, closing),
	}
}

// InvoiceMonthYear determines which calendar month's invoice is current.
// Once ref's day-of-month reaches dueDay the invoice rolls to the next month.
func InvoiceMonthYear(dueDay int, ref time.Time) InvoiceMonth {
	year, month := ref.Year(), ref.Month()
	if ref.Day() >= dueDay {
		// Normalize December -> January through time.Date.
		t := time.Date(year, month+1, 1, 0, 0, 0, 0, ref.Location())
		year, month = t.Year(), t.Month()
	}
	return InvoiceMonth{
		Month: month,
		Year:  year,
		Label: month.String() + "/" + strconv.Itoa(year),
	}
}

// daysBetween returns the whole-day calendar difference between two instants,
// ignoring their time-of-day. Negative when to precedes from.
func daysBetween(from, to time.Time) int {
	return int(civilDate(to).Sub(civilDate(from)).Hours() / 24)
}

// civilDate strips the time-of-day and time zone, keeping the calendar date.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
