package export

import (
	"strings"
	"testing"

	"fatura/internal/core"
)

func TestWriteStatementCSV(t *testing.T) {
	lines := []core.StatementLine{
		{Description: "Notebook", Category: "Eletrônicos", Amount: core.Money{Cents: 15000}},
		{Description: "Streaming", Category: "Assinaturas", Amount: core.Money{Cents: 8990}},
	}

	var sb strings.Builder
	if err := WriteStatementCSV(&sb, lines, core.Money{Cents: 23990}); err != nil {
		t.Fatalf("WriteStatementCSV() error = %v", err)
	}

	want := "Notebook;Eletrônicos;150,00\n" +
		"Streaming;Assinaturas;89,90\n" +
		"TOTAL;;239,90\n"
	if got := sb.String(); got != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestWriteStatementCSVEmpty(t *testing.T) {
	var sb strings.Builder
	if err := WriteStatementCSV(&sb, nil, core.Money{}); err != nil {
		t.Fatalf("WriteStatementCSV() error = %v", err)
	}
	if got, want := sb.String(), "TOTAL;;0,00\n"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestWriteStatementCSVSanitizesDelimiters(t *testing.T) {
	lines := []core.StatementLine{
		{Description: "Jantar; restaurante", Category: "Fora", Amount: core.Money{Cents: 1200}},
	}

	var sb strings.Builder
	if err := WriteStatementCSV(&sb, lines, core.Money{Cents: 1200}); err != nil {
		t.Fatalf("WriteStatementCSV() error = %v", err)
	}
	if !strings.HasPrefix(sb.String(), "Jantar, restaurante;Fora;12,00\n") {
		t.Errorf("semicolon not sanitized: %q", sb.String())
	}
}
