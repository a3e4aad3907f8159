package models

import "time"

type MessageType string

const (
	MessageTypeText  MessageType = "text"
	MessageTypeImage MessageType = "image"
)

// Message represents a direct message between two users. Only Seen changes
// after creation.
type Message struct {
	ID          string      `gorm:"primaryKey;size:36"`
	FromUserID  string      `gorm:"size:64;not null;index:idx_messages_pair,priority:1"`
	ToUserID    string      `gorm:"size:64;not null;index:idx_messages_pair,priority:2;index"`
	Text        string      `gorm:"type:text"`
	MediaURL    string      `gorm:"size:1024"`
	MessageType MessageType `gorm:"size:20;not null;default:'text'"`
	Seen        bool        `gorm:"not null;default:false"`
	CreatedAt   time.Time   `gorm:"index"`
}
