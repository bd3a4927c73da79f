// Package export renders invoice statements in the legacy semicolon-delimited
// text layout. Existing spreadsheets import these files, so the format is
// byte-compatible: one "Description;Category;Value" row per charge and a
// trailing "TOTAL;;Value" row, values with a comma decimal separator.
package export

import (
	"io"
	"strings"

	"fatura/internal/core"
)

// WriteStatementCSV writes the statement rows followed by the TOTAL row.
// Semicolons inside descriptions or categories would corrupt the layout and
// are replaced with commas, matching what the legacy exporter produced.
func WriteStatementCSV(w io.Writer, lines []core.StatementLine, total core.Money) error {
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(sanitizeField(l.Description))
		b.WriteByte(';')
		b.WriteString(sanitizeField(l.Category))
		b.WriteByte(';')
		b.WriteString(core.FormatBRL(l.Amount.Cents))
		b.WriteByte('\n')
	}
	b.WriteString("TOTAL;;")
	b.WriteString(core.FormatBRL(total.Cents))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())
	return err
}

func sanitizeField(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ";", ",")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
