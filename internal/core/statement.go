package core

// StatementLine is one projected charge on a card's invoice.
type StatementLine struct {
	Description string
	Category    string
	Amount      Money
}
