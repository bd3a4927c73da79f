package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"fatura/internal/core"
)

type cardResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	DueDay   int    `json:"due_day"`
	IsActive bool   `json:"is_active"`
}

func toCardResponse(c core.Card) cardResponse {
	return cardResponse{
		ID:       c.ID,
		Name:     c.Name,
		DueDay:   c.DueDay,
		IsActive: c.IsActive,
	}
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListCards(w, r)
	case http.MethodPost:
		s.handleCreateCard(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		writeError(w, http.StatusMethodNotAllowed, "método não permitido")
	}
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	cards, err := s.store.ListCards(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "List cards error", "error", err)
		writeError(w, http.StatusInternalServerError, "erro ao listar cartões")
		return
	}

	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, toCardResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

type createCardRequest struct {
	Name   string `json:"name"`
	DueDay int    `json:"due_day"`
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var req createCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}

	card := core.Card{
		Name:     sanitizeInput(req.Name),
		DueDay:   req.DueDay,
		IsActive: true,
	}
	if err := card.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "dados inválidos: "+err.Error())
		return
	}

	created, err := s.store.CreateCard(r.Context(), card)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create card error", "error", err, "name", card.Name)
		writeError(w, http.StatusInternalServerError, "erro ao salvar cartão")
		return
	}

	writeJSON(w, http.StatusCreated, toCardResponse(created))
}

type createInstallmentRequest struct {
	CardID            string `json:"card_id"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	InstallmentAmount string `json:"installment_amount"`
	Installments      int    `json:"installments"`
	PaidInstallments  int    `json:"paid_installments"`
}

func (s *Server) handleCreateInstallment(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "método não permitido")
		return
	}

	var req createInstallmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}

	cents, err := core.ParseDecimalToCents(req.InstallmentAmount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "valor inválido")
		return
	}

	debt := core.InstallmentDebt{
		CardID:            req.CardID,
		Description:       sanitizeInput(req.Description),
		Category:          sanitizeInput(req.Category),
		InstallmentAmount: core.Money{Cents: cents},
		Installments:      req.Installments,
		PaidInstallments:  req.PaidInstallments,
		IsActive:          true,
	}
	if err := debt.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "dados inválidos: "+err.Error())
		return
	}

	created, err := s.store.CreateInstallmentDebt(r.Context(), debt)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create installment error", "error", err, "card_id", debt.CardID)
		writeError(w, http.StatusInternalServerError, "erro ao salvar parcelamento")
		return
	}

	s.invalidateStatements(created.CardID, currentYear())
	writeJSON(w, http.StatusCreated, toInstallmentResponse(created))
}

type createRecurringRequest struct {
	PaymentMethodID   string `json:"payment_method_id"`
	PaymentMethodType string `json:"payment_method_type"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	Amount            string `json:"amount"`
	Frequency         string `json:"frequency"`
	Type              string `json:"type"`
}

func (s *Server) handleCreateRecurring(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "método não permitido")
		return
	}

	var req createRecurringRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "formato de requisição inválido")
		return
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "valor inválido")
		return
	}

	rt := core.RecurringTransaction{
		PaymentMethodID:   req.PaymentMethodID,
		PaymentMethodType: core.PaymentMethodType(req.PaymentMethodType),
		Description:       sanitizeInput(req.Description),
		Category:          sanitizeInput(req.Category),
		Amount:            core.Money{Cents: cents},
		Frequency:         core.Frequency(req.Frequency),
		Type:              core.TransactionType(req.Type),
		IsActive:          true,
	}
	if err := rt.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "dados inválidos: "+err.Error())
		return
	}

	created, err := s.store.CreateRecurringTransaction(r.Context(), rt)
	if err != nil {
		slog.ErrorContext(r.Context(), "Create recurring error", "error", err, "payment_method_id", rt.PaymentMethodID)
		writeError(w, http.StatusInternalServerError, "erro ao salvar recorrência")
		return
	}

	s.invalidateStatements(created.PaymentMethodID, currentYear())
	writeJSON(w, http.StatusCreated, toRecurringResponse(created))
}

type installmentResponse struct {
	ID                string `json:"id"`
	CardID            string `json:"card_id"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	InstallmentCents  int64  `json:"installment_cents"`
	InstallmentAmount string `json:"installment_amount"`
	Installments      int    `json:"installments"`
	PaidInstallments  int    `json:"paid_installments"`
	IsActive          bool   `json:"is_active"`
}

func toInstallmentResponse(d core.InstallmentDebt) installmentResponse {
	return installmentResponse{
		ID:                d.ID,
		CardID:            d.CardID,
		Description:       d.Description,
		Category:          d.Category,
		InstallmentCents:  d.InstallmentAmount.Cents,
		InstallmentAmount: core.FormatBRL(d.InstallmentAmount.Cents),
		Installments:      d.Installments,
		PaidInstallments:  d.PaidInstallments,
		IsActive:          d.IsActive,
	}
}

type recurringResponse struct {
	ID                string `json:"id"`
	PaymentMethodID   string `json:"payment_method_id"`
	PaymentMethodType string `json:"payment_method_type"`
	Description       string `json:"description"`
	Category          string `json:"category"`
	AmountCents       int64  `json:"amount_cents"`
	Amount            string `json:"amount"`
	Frequency         string `json:"frequency"`
	Type              string `json:"type"`
	IsActive          bool   `json:"is_active"`
}

func toRecurringResponse(rt core.RecurringTransaction) recurringResponse {
	return recurringResponse{
		ID:                rt.ID,
		PaymentMethodID:   rt.PaymentMethodID,
		PaymentMethodType: string(rt.PaymentMethodType),
		Description:       rt.Description,
		Category:          rt.Category,
		AmountCents:       rt.Amount.Cents,
		Amount:            core.FormatBRL(rt.Amount.Cents),
		Frequency:         string(rt.Frequency),
		Type:              string(rt.Type),
		IsActive:          rt.IsActive,
	}
}
