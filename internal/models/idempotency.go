package models

import (
	"encoding/json"
	"time"
)

// IdempotencyKey represents a stored idempotent response for a write route
type IdempotencyKey struct {
	Key          string          `json:"key"`
	Route        string          `json:"route"`
	ClientID     string          `json:"client_id"`
	ResponseBody json.RawMessage `json:"response_body"`
	StatusCode   int             `json:"status_code"`
	CreatedAt    time.Time       `json:"created_at"`
}
