package store

import (
	"context"

	"pingup/backend/internal/models"
)

func (s *Store) CreateMessage(ctx context.Context, msg *models.Message) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	return classify("create message", db.Create(msg).Error)
}

// ListThread returns every message exchanged between a and b, newest first.
func (s *Store) ListThread(ctx context.Context, a, b string) ([]models.Message, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var msgs []models.Message
	err := db.Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", a, b, b, a).
		Order("created_at DESC").
		Find(&msgs).Error
	return msgs, classify("list thread", err)
}

// MarkSeen flags every message from fromUserID to toUserID as seen.
func (s *Store) MarkSeen(ctx context.Context, fromUserID, toUserID string) (int64, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	res := db.Model(&models.Message{}).
		Where("from_user_id = ? AND to_user_id = ? AND seen = ?", fromUserID, toUserID, false).
		Update("seen", true)
	return res.RowsAffected, classify("mark seen", res.Error)
}

// ListMessagesTo returns messages received by userID, newest first.
func (s *Store) ListMessagesTo(ctx context.Context, userID string) ([]models.Message, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var msgs []models.Message
	err := db.Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Find(&msgs).Error
	return msgs, classify("list received messages", err)
}
