package amqp

import (
	"encoding/json"
	"time"

	"fintrack/internal/core"
)

// BudgetAlertMessage is the wire form of a budget alert. It carries the
// full alert payload so the worker can persist a notification without a
// read back to the store.
type BudgetAlertMessage struct {
	Alert     core.BudgetAlert `json:"alert"`
	Timestamp time.Time        `json:"timestamp"`
}

func NewBudgetAlertMessage(alert core.BudgetAlert) *BudgetAlertMessage {
	return &BudgetAlertMessage{
		Alert:     alert,
		Timestamp: time.Now(),
	}
}

func (m *BudgetAlertMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func BudgetAlertMessageFromJSON(data []byte) (*BudgetAlertMessage, error) {
	var msg BudgetAlertMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
