package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"fatura/internal/amqp"
	"fatura/internal/core"
)

type fakePublisher struct {
	mu       sync.Mutex
	messages []*amqp.DueAlertMessage
	err      error
	failFor  string // card ID whose publish fails; empty fails none
}

func (f *fakePublisher) PublishDueAlert(ctx context.Context, msg *amqp.DueAlertMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if f.err != nil {
		return f.err
	}
	if f.failFor != "" && msg.CardID == f.failFor {
		return errors.New("broker down")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.messages = append(f.messages, msg)
	return nil
}

func TestAlertScannerScan(t *testing.T) {
	store := &fakeStore{
		cards: map[string]core.Card{
			"c1": {ID: "c1", Name: "Nubank", DueDay: 12, IsActive: true},  // 2 days out, danger
			"c2": {ID: "c2", Name: "Inter", DueDay: 15, IsActive: true},   // 5 days out, warning
			"c3": {ID: "c3", Name: "Itaú", DueDay: 28, IsActive: true},    // 18 days out, ok
			"c4": {ID: "c4", Name: "Antigo", DueDay: 12, IsActive: false}, // inactive
		},
	}
	pub := &fakePublisher{}
	scanner := NewAlertScanner(store, pub, DefaultAlertScannerConfig())

	now := time.Date(2026, time.March, 10, 8, 0, 0, 0, time.UTC)
	count, err := scanner.Scan(context.Background(), now)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if count != 2 {
		t.Fatalf("published %d alerts, want 2", count)
	}

	byCard := make(map[string]*amqp.DueAlertMessage)
	for _, m := range pub.messages {
		byCard[m.CardID] = m
	}
	if m := byCard["c1"]; m == nil || m.Level != "danger" || m.DaysUntilDue != 2 {
		t.Errorf("c1 alert = %+v, want danger in 2 days", m)
	}
	if m := byCard["c2"]; m == nil || m.Level != "warning" || m.DaysUntilDue != 5 {
		t.Errorf("c2 alert = %+v, want warning in 5 days", m)
	}
	if _, ok := byCard["c3"]; ok {
		t.Error("ok-tier card should not produce an alert")
	}
	if _, ok := byCard["c4"]; ok {
		t.Error("inactive card should not be scanned")
	}
}

func TestAlertScannerOverdueCard(t *testing.T) {
	store := &fakeStore{
		cards: map[string]core.Card{
			"c1": {ID: "c1", Name: "Nubank", DueDay: 5, IsActive: true},
		},
	}
	pub := &fakePublisher{}
	scanner := NewAlertScanner(store, pub, DefaultAlertScannerConfig())

	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	count, err := scanner.Scan(context.Background(), now)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if count != 1 {
		t.Fatalf("published %d alerts, want 1", count)
	}

	msg := pub.messages[0]
	if msg.DaysUntilDue != -5 {
		t.Errorf("days until due = %d, want -5", msg.DaysUntilDue)
	}
	if msg.Message != "Venceu há 5 dia(s)" {
		t.Errorf("message = %q", msg.Message)
	}
	// The carried due date is the next cycle's, not the lapsed one.
	if want := time.Date(2026, time.April, 5, 0, 0, 0, 0, time.UTC); !msg.DueDate.Equal(want) {
		t.Errorf("due date = %v, want %v", msg.DueDate, want)
	}
}

func TestAlertScannerPublishFailure(t *testing.T) {
	store := &fakeStore{
		cards: map[string]core.Card{
			"c1": {ID: "c1", Name: "Nubank", DueDay: 12, IsActive: true},
		},
	}
	pub := &fakePublisher{err: errors.New("broker down")}
	scanner := NewAlertScanner(store, pub, DefaultAlertScannerConfig())

	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	count, err := scanner.Scan(context.Background(), now)
	if err == nil {
		t.Error("expected error when publish fails")
	}
	if count != 0 {
		t.Errorf("published %d alerts, want 0", count)
	}
}

func TestAlertScannerContinuesAfterPublishFailure(t *testing.T) {
	store := &fakeStore{
		cards: map[string]core.Card{
			"c1": {ID: "c1", Name: "Nubank", DueDay: 12, IsActive: true},
			"c2": {ID: "c2", Name: "Inter", DueDay: 13, IsActive: true},
			"c3": {ID: "c3", Name: "Itaú", DueDay: 14, IsActive: true},
		},
	}
	pub := &fakePublisher{failFor: "c2"}
	scanner := NewAlertScanner(store, pub, AlertScannerConfig{Concurrency: 1})

	now := time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)
	count, err := scanner.Scan(context.Background(), now)
	if err == nil {
		t.Error("expected error when one publish fails")
	}
	if count != 2 {
		t.Fatalf("published %d alerts, want 2", count)
	}
	for _, m := range pub.messages {
		if m.CardID == "c2" {
			t.Error("failed card should not be counted as published")
		}
	}
}

func TestNewAlertScannerDefaults(t *testing.T) {
	scanner := NewAlertScanner(&fakeStore{}, &fakePublisher{}, AlertScannerConfig{})
	if scanner.config.Concurrency != 4 {
		t.Errorf("concurrency = %d, want 4", scanner.config.Concurrency)
	}
}
