package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"fatura/internal/amqp"
	"fatura/internal/billing"
	"fatura/internal/core"
)

// CardLister lists the cards the scanner sweeps over.
type CardLister interface {
	ListActiveCards(ctx context.Context) ([]core.Card, error)
}

// AlertPublisher pushes one due alert onto the message bus.
type AlertPublisher interface {
	PublishDueAlert(ctx context.Context, msg *amqp.DueAlertMessage) error
}

// AlertScannerConfig holds configuration for the due-date scanner.
type AlertScannerConfig struct {
	// Concurrency caps how many cards are evaluated in parallel (default: 4)
	Concurrency int
}

// DefaultAlertScannerConfig returns sensible defaults
func DefaultAlertScannerConfig() AlertScannerConfig {
	return AlertScannerConfig{Concurrency: 4}
}

// AlertScanner sweeps every active card, classifies its due status and
// publishes an alert for cards in the warning or danger tier.
type AlertScanner struct {
	store     CardLister
	publisher AlertPublisher
	config    AlertScannerConfig
}

func NewAlertScanner(store CardLister, publisher AlertPublisher, config AlertScannerConfig) *AlertScanner {
	if config.Concurrency < 1 {
		config.Concurrency = DefaultAlertScannerConfig().Concurrency
	}
	return &AlertScanner{
		store:     store,
		publisher: publisher,
		config:    config,
	}
}

// Scan runs one sweep at now and returns how many alerts were published.
// Cards in the ok tier are skipped; a publish failure on one card does not
// stop the others, the first error is reported after the sweep completes.
func (s *AlertScanner) Scan(ctx context.Context, now time.Time) (int, error) {
	if s.store == nil || s.publisher == nil {
		return 0, fmt.Errorf("scanner not properly initialized")
	}

	cards, err := s.store.ListActiveCards(ctx)
	if err != nil {
		return 0, fmt.Errorf("list active cards: %w", err)
	}

	slog.InfoContext(ctx, "Scanning cards for due alerts",
		"total_active", len(cards),
		"scan_date", now.Format("2006-01-02"))

	// Plain group, no shared-context cancellation: one failed publish must
	// not abort the in-flight publishes for the remaining cards.
	var g errgroup.Group
	g.SetLimit(s.config.Concurrency)

	published := make(chan struct{}, len(cards))
	for _, card := range cards {
		g.Go(func() error {
			status := billing.DueStatus(card.DueDay, now)
			if status.Level == billing.StatusOK {
				return nil
			}

			dueDate := billing.NextDueDate(card.DueDay, now)
			msg := amqp.NewDueAlertMessage(card.ID, card.Name, dueDate,
				status.DaysUntilDue, string(status.Level), status.Message)

			if err := s.publisher.PublishDueAlert(ctx, msg); err != nil {
				slog.ErrorContext(ctx, "Failed to publish due alert",
					"card_id", card.ID,
					"error", err)
				return fmt.Errorf("publish alert for card %s: %w", card.ID, err)
			}

			published <- struct{}{}
			slog.InfoContext(ctx, "Due alert published",
				"card_id", card.ID,
				"card_name", card.Name,
				"level", status.Level,
				"days_until_due", status.DaysUntilDue)
			return nil
		})
	}

	err = g.Wait()
	close(published)
	count := len(published)

	slog.InfoContext(ctx, "Due alert scan complete",
		"published", count,
		"total_checked", len(cards))

	return count, err
}
