package models

import "time"

type PostType string

const (
	PostTypeText          PostType = "text"
	PostTypeImage         PostType = "image"
	PostTypeTextWithImage PostType = "text_with_image"
)

// Post is authored elsewhere; this service only reads it for feeds.
type Post struct {
	ID            string    `gorm:"primaryKey;size:36"`
	UserID        string    `gorm:"size:64;not null;index"`
	Content       string    `gorm:"type:text"`
	ImageURLs     []string  `gorm:"serializer:json"`
	PostType      PostType  `gorm:"size:32;not null"`
	LikesCount    int       `gorm:"not null;default:0"`
	CommentsCount int       `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"index"`
	UpdatedAt     time.Time
}

// StoryLifetime is how long a story stays visible.
const StoryLifetime = 24 * time.Hour

// Story is a short-lived post, removed by the story.expire job.
type Story struct {
	ID              string    `gorm:"primaryKey;size:36"`
	UserID          string    `gorm:"size:64;not null;index"`
	Content         string    `gorm:"type:text"`
	MediaURL        string    `gorm:"size:1024"`
	MediaType       string    `gorm:"size:20"`
	BackgroundColor string    `gorm:"size:20;default:'#4f46e5'"`
	CreatedAt       time.Time `gorm:"index"`
}

// DeviceToken is a push notification target of a user.
type DeviceToken struct {
	UserID    string `gorm:"primaryKey;size:64"`
	Token     string `gorm:"primaryKey;size:512"`
	Platform  string `gorm:"size:20;not null"`
	UpdatedAt time.Time
}
