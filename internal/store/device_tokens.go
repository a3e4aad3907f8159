package store

import (
	"context"
	"time"

	"pingup/backend/internal/models"

	"gorm.io/gorm/clause"
)

func (s *Store) UpsertDeviceToken(ctx context.Context, userID, token, platform string, when time.Time) (models.DeviceToken, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	dt := models.DeviceToken{UserID: userID, Token: token, Platform: platform, UpdatedAt: when}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "token"}},
		DoUpdates: clause.AssignmentColumns([]string{"platform", "updated_at"}),
	}).Create(&dt).Error
	return dt, classify("upsert device token", err)
}

func (s *Store) DeleteDeviceToken(ctx context.Context, userID, token string) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	err := db.Where("user_id = ? AND token = ?", userID, token).Delete(&models.DeviceToken{}).Error
	return classify("delete device token", err)
}

func (s *Store) ListDeviceTokens(ctx context.Context, userID string) ([]models.DeviceToken, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var tokens []models.DeviceToken
	err := db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&tokens).Error
	return tokens, classify("list device tokens", err)
}
