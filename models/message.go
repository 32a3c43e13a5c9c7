// File: /models/message.go
package models

import "time"

// Message is a directed text message between two connected users. Rows are
// append-only; only the read receipt fields ever change.
type Message struct {
	MessageID   uint       `json:"message_id" gorm:"primaryKey;column:message_id"`
	SenderID    uint       `json:"sender_id" gorm:"not null;index"`
	ReceiverID  uint       `json:"receiver_id" gorm:"not null;index"`
	MessageText string     `json:"message_text" gorm:"type:text"`
	ReadStatus  bool       `json:"read_status" gorm:"not null;default:false"`
	ReadAt      *time.Time `json:"read_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
