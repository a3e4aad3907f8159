package store

import (
	"context"
	"strings"

	"pingup/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Store) FindUser(ctx context.Context, id string) (models.User, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var user models.User
	err := db.Where("id = ?", id).First(&user).Error
	return user, classify("find user", err)
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	var user models.User
	err := db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	return user, classify("find user by username", err)
}

// FindUsers returns the users that exist among ids, in no particular order.
func (s *Store) FindUsers(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	db, cancel := s.conn(ctx)
	defer cancel()

	var users []models.User
	err := db.Where("id IN ?", ids).Find(&users).Error
	return users, classify("find users", err)
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	if user.AccountType == "" {
		user.AccountType = models.AccountPublic
	}
	return classify("create user", db.Create(user).Error)
}

func (s *Store) SaveUser(ctx context.Context, user *models.User) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	return classify("save user", db.Save(user).Error)
}

// DeleteUser removes the user and the user's own relationship sets. Other
// users' sets may still reference the id; readers resolve it to a
// placeholder.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.UserEdge{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	return classify("delete user", err)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchUsers returns up to limit users whose username, email, full name
// or location contains query, ignoring case. excludeID is left out.
func (s *Store) SearchUsers(ctx context.Context, query, excludeID string, limit int) ([]models.User, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"
	var users []models.User
	err := db.
		Where("id <> ?", excludeID).
		Where(`LOWER(username) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\' OR LOWER(full_name) LIKE ? ESCAPE '\' OR LOWER(location) LIKE ? ESCAPE '\'`,
			pattern, pattern, pattern, pattern).
		Order("username ASC").
		Limit(limit).
		Find(&users).Error
	return users, classify("search users", err)
}

// ListUsersExcept returns up to limit users not in excludeIDs, newest
// first.
func (s *Store) ListUsersExcept(ctx context.Context, excludeIDs []string, limit int) ([]models.User, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	q := db.Order("created_at DESC").Order("id ASC").Limit(limit)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	var users []models.User
	err := q.Find(&users).Error
	return users, classify("list users", err)
}
