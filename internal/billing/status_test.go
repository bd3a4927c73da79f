package billing

import (
	"testing"
	"time"
)

func TestDueStatus(t *testing.T) {
	tests := []struct {
		name        string
		dueDay      int
		ref         time.Time
		wantLevel   StatusLevel
		wantDays    int
		wantMessage string
	}{
		{
			name:        "due today",
			dueDay:      20,
			ref:         date(2026, time.March, 20),
			wantLevel:   StatusDanger,
			wantDays:    0,
			wantMessage: "Vence hoje!",
		},
		{
			name:        "overdue",
			dueDay:      20,
			ref:         date(2026, time.March, 25),
			wantLevel:   StatusDanger,
			wantDays:    -5,
			wantMessage: "Venceu há 5 dia(s)",
		},
		{
			name:        "one day out",
			dueDay:      20,
			ref:         date(2026, time.March, 19),
			wantLevel:   StatusDanger,
			wantDays:    1,
			wantMessage: "Vence em 1 dia(s)",
		},
		{
			name:        "three days out is still danger",
			dueDay:      20,
			ref:         date(2026, time.March, 17),
			wantLevel:   StatusDanger,
			wantDays:    3,
			wantMessage: "Vence em 3 dia(s)",
		},
		{
			name:        "four days out is warning",
			dueDay:      20,
			ref:         date(2026, time.March, 16),
			wantLevel:   StatusWarning,
			wantDays:    4,
			wantMessage: "Vence em 4 dia(s)",
		},
		{
			name:        "seven days out is warning",
			dueDay:      20,
			ref:         date(2026, time.March, 13),
			wantLevel:   StatusWarning,
			wantDays:    7,
			wantMessage: "Vence em 7 dia(s)",
		},
		{
			name:        "eight days out is ok",
			dueDay:      20,
			ref:         date(2026, time.March, 12),
			wantLevel:   StatusOK,
			wantDays:    8,
			wantMessage: "Vence em 8 dia(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DueStatus(tt.dueDay, tt.ref)
			if got.Level != tt.wantLevel {
				t.Errorf("Level = %q, want %q", got.Level, tt.wantLevel)
			}
			if got.DaysUntilDue != tt.wantDays {
				t.Errorf("DaysUntilDue = %d, want %d", got.DaysUntilDue, tt.wantDays)
			}
			if got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
		})
	}
}

func TestDueStatusIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2026, time.March, 20, 8, 0, 0, 0, time.UTC)
	night := time.Date(2026, time.March, 20, 23, 45, 0, 0, time.UTC)

	if a, b := DueStatus(20, morning), DueStatus(20, night); a != b {
		t.Errorf("status changed with time of day: %+v vs %+v", a, b)
	}
}
