// File: /models/connection.go
package models

import "time"

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusRejected ConnectionStatus = "rejected"
)

// Connection is an undirected relationship between two users. The pair is
// stored normalized (UserA <= UserB) so lookups and the uniqueness constraint
// are direction-independent; RequestedBy recovers who initiated.
type Connection struct {
	ConnectionID uint             `json:"connection_id" gorm:"primaryKey;column:connection_id"`
	UserA        uint             `json:"user_a" gorm:"not null;uniqueIndex:uk_connections_pair"`
	UserB        uint             `json:"user_b" gorm:"not null;uniqueIndex:uk_connections_pair"`
	Status       ConnectionStatus `json:"status" gorm:"not null;default:'pending';size:20"`
	RequestedBy  uint             `json:"requested_by" gorm:"not null"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NormalizePair returns the two user ids in canonical (low, high) order.
func NormalizePair(a, b uint) (uint, uint) {
	if a <= b {
		return a, b
	}
	return b, a
}

// OtherParty returns the participant that is not userID.
func (c *Connection) OtherParty(userID uint) uint {
	if c.UserA == userID {
		return c.UserB
	}
	return c.UserA
}

// HasParticipant reports whether userID is one of the two parties.
func (c *Connection) HasParticipant(userID uint) bool {
	return c.UserA == userID || c.UserB == userID
}
