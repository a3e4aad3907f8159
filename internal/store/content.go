package store

import (
	"context"
	"time"

	"pingup/backend/internal/models"
)

// ListPostsByAuthors returns one page of posts by authorIDs, newest first,
// and the total number of matching posts.
func (s *Store) ListPostsByAuthors(ctx context.Context, authorIDs []string, page, limit int) ([]models.Post, int64, error) {
	if len(authorIDs) == 0 {
		return nil, 0, nil
	}
	db, cancel := s.conn(ctx)
	defer cancel()

	query := db.Model(&models.Post{}).Where("user_id IN ?", authorIDs)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, classify("count posts", err)
	}

	var posts []models.Post
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, 0, classify("list posts", err)
	}
	return posts, total, nil
}

// ListStoriesByAuthors returns stories by authorIDs created after since,
// newest first.
func (s *Store) ListStoriesByAuthors(ctx context.Context, authorIDs []string, since time.Time) ([]models.Story, error) {
	if len(authorIDs) == 0 {
		return nil, nil
	}
	db, cancel := s.conn(ctx)
	defer cancel()

	var stories []models.Story
	err := db.Where("user_id IN ? AND created_at > ?", authorIDs, since).
		Order("created_at DESC").
		Find(&stories).Error
	return stories, classify("list stories", err)
}

func (s *Store) DeleteStory(ctx context.Context, id string) error {
	db, cancel := s.conn(ctx)
	defer cancel()

	return classify("delete story", db.Where("id = ?", id).Delete(&models.Story{}).Error)
}

// DeleteStoriesCreatedBefore removes every story created before cutoff.
func (s *Store) DeleteStoriesCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	db, cancel := s.conn(ctx)
	defer cancel()

	res := db.Where("created_at <= ?", cutoff).Delete(&models.Story{})
	return res.RowsAffected, classify("delete expired stories", res.Error)
}
