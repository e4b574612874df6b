// internal/models/tracking.go
package models

import "time"

// ExposureEvent records that a scored item was surfaced to a user. Writes are
// best-effort and never block or fail a scoring call.
type ExposureEvent struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	ItemType   string    `json:"itemType"`
	ItemID     string    `json:"itemId"`
	Score      float64   `json:"score"`
	OccurredAt time.Time `json:"occurredAt"`
}
