package core

import "testing"

func TestCardValidate(t *testing.T) {
	tests := []struct {
		name    string
		card    Card
		wantErr bool
	}{
		{"valid", Card{Name: "Nubank", DueDay: 10, IsActive: true}, false},
		{"due day 31", Card{Name: "Visa", DueDay: 31}, false},
		{"empty name", Card{DueDay: 10}, true},
		{"due day zero", Card{Name: "Visa", DueDay: 0}, true},
		{"due day 32", Card{Name: "Visa", DueDay: 32}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.card.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestInstallmentDebtValidate(t *testing.T) {
	valid := InstallmentDebt{
		CardID:            "c1",
		Description:       "Notebook",
		InstallmentAmount: Money{Cents: 15000},
		Installments:      12,
		PaidInstallments:  3,
		IsActive:          true,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid debt: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*InstallmentDebt)
	}{
		{"missing card", func(d *InstallmentDebt) { d.CardID = " " }},
		{"missing description", func(d *InstallmentDebt) { d.Description = "" }},
		{"negative amount", func(d *InstallmentDebt) { d.InstallmentAmount.Cents = -1 }},
		{"zero installments", func(d *InstallmentDebt) { d.Installments = 0 }},
		{"paid beyond total", func(d *InstallmentDebt) { d.PaidInstallments = 13 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			if err := d.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestRecurringTransactionValidate(t *testing.T) {
	valid := RecurringTransaction{
		PaymentMethodID:   "c1",
		PaymentMethodType: CardMethod,
		Description:       "Streaming",
		Amount:            Money{Cents: 8990},
		Frequency:         Monthly,
		Type:              Expense,
		IsActive:          true,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on valid recurring: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*RecurringTransaction)
	}{
		{"missing payment method", func(r *RecurringTransaction) { r.PaymentMethodID = "" }},
		{"bad method type", func(r *RecurringTransaction) { r.PaymentMethodType = "pix" }},
		{"bad frequency", func(r *RecurringTransaction) { r.Frequency = "biweekly" }},
		{"bad type", func(r *RecurringTransaction) { r.Type = "transfer" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			if err := r.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
