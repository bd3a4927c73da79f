package amqp

import (
	"encoding/json"
	"time"
)

// DueAlertMessage notifies downstream consumers that a card's invoice is
// close to (or past) its due date. It carries everything the worker needs to
// export the alert without reading the database.
type DueAlertMessage struct {
	CardID       string    `json:"card_id"`
	CardName     string    `json:"card_name"`
	DueDate      time.Time `json:"due_date"`
	DaysUntilDue int       `json:"days_until_due"`
	Level        string    `json:"level"`
	Message      string    `json:"message"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewDueAlertMessage creates an alert message stamped with the current time.
func NewDueAlertMessage(cardID, cardName string, dueDate time.Time, daysUntilDue int, level, message string) *DueAlertMessage {
	return &DueAlertMessage{
		CardID:       cardID,
		CardName:     cardName,
		DueDate:      dueDate,
		DaysUntilDue: daysUntilDue,
		Level:        level,
		Message:      message,
		Timestamp:    time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *DueAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// DueAlertMessageFromJSON creates a message from JSON bytes.
func DueAlertMessageFromJSON(data []byte) (*DueAlertMessage, error) {
	var msg DueAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
