package amqp

import (
	"encoding/json"
	"time"
)

// LedgerChangedMessage signals that a user's ledger changed for a period.
// It carries only the coordinates of the affected period; consumers fetch a
// fresh snapshot from storage, so a stale or duplicated message is harmless.
type LedgerChangedMessage struct {
	UserID    int64     `json:"user_id"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`
	Timestamp time.Time `json:"timestamp"`
}

func NewLedgerChangedMessage(userID int64, year, month int) *LedgerChangedMessage {
	return &LedgerChangedMessage{
		UserID:    userID,
		Year:      year,
		Month:     month,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes.
func (m *LedgerChangedMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// LedgerChangedMessageFromJSON creates a message from JSON bytes.
func LedgerChangedMessageFromJSON(data []byte) (*LedgerChangedMessage, error) {
	var msg LedgerChangedMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
