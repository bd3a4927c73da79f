package amqp

import (
	"errors"
	"fmt"
	"testing"
	"time"
)

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{2, 4 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},  // capped at 30s
		{10, 30 * time.Second}, // capped at 30s
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			result := exponentialBackoff(tt.attempt)
			if result != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, result, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: false,
		},
		{
			name:     "connection refused",
			err:      errors.New("connection refused"),
			expected: true,
		},
		{
			name:     "closed connection",
			err:      errors.New("connection closed"),
			expected: true,
		},
		{
			name:     "EOF",
			err:      errors.New("unexpected EOF"),
			expected: true,
		},
		{
			name:     "broken pipe",
			err:      errors.New("broken pipe"),
			expected: true,
		},
		{
			name:     "closed network connection",
			err:      errors.New("use of closed network connection"),
			expected: true,
		},
		{
			name:     "application error",
			err:      errors.New("invalid input"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isConnectionError(tt.err)
			if result != tt.expected {
				t.Errorf("isConnectionError(%v) = %v, want %v", tt.err, result, tt.expected)
			}
		})
	}
}

func TestDueAlertMessageRoundTrip(t *testing.T) {
	msg := NewDueAlertMessage("c1", "Nubank",
		time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
		2, "danger", "Vence em 2 dia(s)")

	data, err := msg.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	got, err := DueAlertMessageFromJSON(data)
	if err != nil {
		t.Fatalf("DueAlertMessageFromJSON() error = %v", err)
	}
	if got.CardID != "c1" || got.CardName != "Nubank" {
		t.Errorf("card = %s/%s", got.CardID, got.CardName)
	}
	if got.DaysUntilDue != 2 || got.Level != "danger" {
		t.Errorf("alert = %d days, level %s", got.DaysUntilDue, got.Level)
	}
	if !got.DueDate.Equal(msg.DueDate) {
		t.Errorf("due date = %v, want %v", got.DueDate, msg.DueDate)
	}
}

func TestDueAlertMessageFromJSONInvalid(t *testing.T) {
	if _, err := DueAlertMessageFromJSON([]byte("{not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}
