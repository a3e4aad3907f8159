package store

import (
	"context"
	"time"

	"pingup/backend/internal/models"
)

func (s *Store) CreateConnectionRequest(ctx context.Context, req *models.ConnectionRequest) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	return classify("create connection request", db.Create(req).Error)
}

// CountConnectionRequestsSince counts requests fromUserID created at or
// after since, whatever their status. Declined requests are included.
func (s *Store) CountConnectionRequestsSince(ctx context.Context, fromUserID string, since time.Time) (int64, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var count int64
	err := db.Unscoped().Model(&models.ConnectionRequest{}).
		Where("from_user_id = ? AND created_at >= ?", fromUserID, since).
		Count(&count).Error
	return count, classify("count connection requests", err)
}

// FindConnectionRequestBetween returns the newest request between a and b
// in either direction.
func (s *Store) FindConnectionRequestBetween(ctx context.Context, a, b string) (models.ConnectionRequest, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var req models.ConnectionRequest
	err := db.Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)", a, b, b, a).
		Order("created_at DESC").
		First(&req).Error
	return req, classify("find connection request", err)
}

func (s *Store) FindConnectionRequest(ctx context.Context, fromUserID, toUserID string) (models.ConnectionRequest, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var req models.ConnectionRequest
	err := db.Where("from_user_id = ? AND to_user_id = ?", fromUserID, toUserID).
		Order("created_at DESC").
		First(&req).Error
	return req, classify("find connection request", err)
}

func (s *Store) MarkConnectionRequestAccepted(ctx context.Context, id string) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	err := db.Model(&models.ConnectionRequest{}).
		Where("id = ?", id).
		Update("status", models.StatusAccepted).Error
	return classify("accept connection request", err)
}

// DeletePendingConnectionRequest soft deletes the pending request from
// fromUserID to toUserID and reports whether one existed.
func (s *Store) DeletePendingConnectionRequest(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	res := db.Where("from_user_id = ? AND to_user_id = ? AND status = ?", fromUserID, toUserID, models.StatusPending).
		Delete(&models.ConnectionRequest{})
	if res.Error != nil {
		return false, classify("delete connection request", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *Store) ListPendingConnectionRequestsTo(ctx context.Context, toUserID string) ([]models.ConnectionRequest, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var reqs []models.ConnectionRequest
	err := db.Where("to_user_id = ? AND status = ?", toUserID, models.StatusPending).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, classify("list pending connection requests", err)
}
