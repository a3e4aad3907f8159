package models

import (
	"time"

	"gorm.io/gorm"
)

// RequestStatus defines the state of a connection request.
type RequestStatus string

const (
	// StatusPending means the request has been sent but not yet accepted.
	StatusPending RequestStatus = "pending"

	// StatusAccepted means the addressee accepted and both users are connected.
	StatusAccepted RequestStatus = "accepted"
)

// ConnectionRequest asks ToUserID to become a mutual connection of
// FromUserID. A declined request is soft deleted so it still counts
// towards the sender's daily limit.
type ConnectionRequest struct {
	ID         string         `gorm:"primaryKey;size:36"`
	FromUserID string         `gorm:"size:64;not null;index:idx_conn_req_from_created,priority:1"`
	ToUserID   string         `gorm:"size:64;not null;index"`
	Status     RequestStatus  `gorm:"type:varchar(20);not null"`
	CreatedAt  time.Time      `gorm:"index:idx_conn_req_from_created,priority:2"`
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`
}
