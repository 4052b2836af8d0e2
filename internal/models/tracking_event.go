// internal/models/tracking_event.go
package models

import "time"

// TrackingEvent is an immutable record of one custody handoff. Events are
// append-only; the ordering key for reconstruction is (timestamp, seq), seq
// being the emission sequence number. Each event carries a sha256 link to
// the previous event of the same product so the per-product chain can be
// re-verified.
type TrackingEvent struct {
	Seq           uint64    `json:"seq" gorm:"primaryKey;autoIncrement"`
	ProductID     uint64    `json:"product_id" gorm:"not null;index"`
	Sender        string    `json:"sender" gorm:"size:42;not null"`
	Recipient     string    `json:"recipient" gorm:"size:42;not null"`
	SenderRole    Role      `json:"sender_role" gorm:"size:20;not null"`
	RecipientRole Role      `json:"recipient_role" gorm:"size:20;not null"`
	Stage         Stage     `json:"stage" gorm:"not null"`
	Location      string    `json:"location" gorm:"size:255;not null"`
	Note          string    `json:"note" gorm:"type:text"`
	Timestamp     time.Time `json:"timestamp" gorm:"not null;index"`
	PrevHash      string    `json:"prev_hash" gorm:"size:64"`
	Hash          string    `json:"hash" gorm:"size:64;not null"`
}
