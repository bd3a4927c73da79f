package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fatura/internal/core"
	"fatura/internal/export"
	"fatura/internal/services"
	"fatura/internal/storage"
)

type statusResponse struct {
	Level        string `json:"level"`
	Message      string `json:"message"`
	DaysUntilDue int    `json:"days_until_due"`
}

type statementLineResponse struct {
	Description string `json:"description"`
	Category    string `json:"category"`
	AmountCents int64  `json:"amount_cents"`
	Amount      string `json:"amount"`
}

type statementResponse struct {
	Card        cardResponse            `json:"card"`
	Month       int                     `json:"month"`
	Year        int                     `json:"year"`
	Label       string                  `json:"label"`
	ClosingDate string                  `json:"closing_date"`
	DueDate     string                  `json:"due_date"`
	Status      statusResponse          `json:"status"`
	TotalCents  int64                   `json:"total_cents"`
	Total       string                  `json:"total"`
	Lines       []statementLineResponse `json:"lines"`
}

func toStatementResponse(stmt *services.Statement) statementResponse {
	out := statementResponse{
		Card:        toCardResponse(stmt.Card),
		Month:       int(stmt.Month),
		Year:        stmt.Year,
		Label:       stmt.Label,
		ClosingDate: stmt.ClosingDate.Format("2006-01-02"),
		DueDate:     stmt.DueDate.Format("2006-01-02"),
		Status: statusResponse{
			Level:        string(stmt.Status.Level),
			Message:      stmt.Status.Message,
			DaysUntilDue: stmt.Status.DaysUntilDue,
		},
		TotalCents: stmt.Total.Cents,
		Total:      core.FormatBRL(stmt.Total.Cents),
		Lines:      make([]statementLineResponse, 0, len(stmt.Lines)),
	}
	for _, l := range stmt.Lines {
		out.Lines = append(out.Lines, statementLineResponse{
			Description: l.Description,
			Category:    l.Category,
			AmountCents: l.Amount.Cents,
			Amount:      core.FormatBRL(l.Amount.Cents),
		})
	}
	return out
}

func (s *Server) handleInvoice(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "método não permitido")
		return
	}

	cardID := strings.TrimSpace(r.URL.Query().Get("card_id"))
	if cardID == "" {
		writeError(w, http.StatusBadRequest, "card_id é obrigatório")
		return
	}
	year, month := parseYearMonth(r)

	stmt, err := s.getStatement(r.Context(), cardID, month, year, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrCardNotFound) {
			writeError(w, http.StatusNotFound, "cartão não encontrado")
			return
		}
		slog.ErrorContext(r.Context(), "Statement error", "error", err, "card_id", cardID)
		writeError(w, http.StatusInternalServerError, "erro ao montar fatura")
		return
	}

	writeJSON(w, http.StatusOK, toStatementResponse(stmt))
}

func (s *Server) handleInvoiceStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "método não permitido")
		return
	}

	cardID := strings.TrimSpace(r.URL.Query().Get("card_id"))
	if cardID == "" {
		writeError(w, http.StatusBadRequest, "card_id é obrigatório")
		return
	}

	card, status, err := s.invoices.CardStatus(r.Context(), cardID, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrCardNotFound) {
			writeError(w, http.StatusNotFound, "cartão não encontrado")
			return
		}
		slog.ErrorContext(r.Context(), "Card status error", "error", err, "card_id", cardID)
		writeError(w, http.StatusInternalServerError, "erro ao consultar status")
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Card   cardResponse   `json:"card"`
		Status statusResponse `json:"status"`
	}{
		Card: toCardResponse(card),
		Status: statusResponse{
			Level:        string(status.Level),
			Message:      status.Message,
			DaysUntilDue: status.DaysUntilDue,
		},
	})
}

func (s *Server) handleInvoiceExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "método não permitido")
		return
	}

	cardID := strings.TrimSpace(r.URL.Query().Get("card_id"))
	if cardID == "" {
		writeError(w, http.StatusBadRequest, "card_id é obrigatório")
		return
	}
	year, month := parseYearMonth(r)

	stmt, err := s.getStatement(r.Context(), cardID, month, year, time.Now())
	if err != nil {
		if errors.Is(err, storage.ErrCardNotFound) {
			writeError(w, http.StatusNotFound, "cartão não encontrado")
			return
		}
		slog.ErrorContext(r.Context(), "Statement export error", "error", err, "card_id", cardID)
		writeError(w, http.StatusInternalServerError, "erro ao exportar fatura")
		return
	}

	filename := "fatura-" + stmt.Card.ID + "-" + stmt.Label + ".csv"
	filename = strings.ReplaceAll(filename, "/", "-")
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := export.WriteStatementCSV(w, stmt.Lines, stmt.Total); err != nil {
		slog.ErrorContext(r.Context(), "CSV write error", "error", err, "card_id", cardID)
	}

	// Best effort: log the export in the statements sheet. The download has
	// already been served, so failures here only get logged.
	if s.stmtWriter != nil {
		sctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()
		if _, err := s.stmtWriter.AppendStatement(sctx, stmt.Card.Name, stmt.Label, stmt.Total); err != nil {
			slog.ErrorContext(r.Context(), "Statement sheet append error", "error", err, "card_id", cardID)
		}
	}
}
