// Package feed builds the post and story feeds of a viewer.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pingup/backend/internal/apperr"
	"pingup/backend/internal/jobs"
	"pingup/backend/internal/models"
	"pingup/backend/internal/users"

	"github.com/sirupsen/logrus"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 50
)

type Store interface {
	ListPostsByAuthors(ctx context.Context, authorIDs []string, page, limit int) ([]models.Post, int64, error)
	ListStoriesByAuthors(ctx context.Context, authorIDs []string, since time.Time) ([]models.Story, error)
	DeleteStory(ctx context.Context, id string) error
	DeleteStoriesCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type AuthorResolver interface {
	VisibleAuthors(ctx context.Context, viewerID string) ([]string, error)
	CanView(ctx context.Context, viewerID, authorID string) (bool, error)
}

// ErrPostsHidden is returned by AuthorPosts when the author is private and
// the viewer is neither a connection nor an approved follower.
var ErrPostsHidden = errors.New("posts are only visible to followers")

type SummaryResolver interface {
	Summaries(ctx context.Context, ids []string) map[string]users.Summary
}

type Service struct {
	Content    Store
	Visibility AuthorResolver
	Summaries  SummaryResolver
	Logger     logrus.FieldLogger
	Now        func() time.Time
}

type Post struct {
	ID            string          `json:"id"`
	User          users.Summary   `json:"user"`
	Content       string          `json:"content,omitempty"`
	ImageURLs     []string        `json:"image_urls"`
	PostType      models.PostType `json:"post_type"`
	LikesCount    int             `json:"likes_count"`
	CommentsCount int             `json:"comments_count"`
	CreatedAt     time.Time       `json:"created_at"`
}

type Story struct {
	ID              string        `json:"id"`
	User            users.Summary `json:"user"`
	Content         string        `json:"content,omitempty"`
	MediaURL        string        `json:"media_url,omitempty"`
	MediaType       string        `json:"media_type"`
	BackgroundColor string        `json:"background_color"`
	CreatedAt       time.Time     `json:"created_at"`
	ExpiresAt       time.Time     `json:"expires_at"`
}

// NormalizePage clamps page and limit to usable values.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

// Posts returns one page of posts by authors visible to viewerID and the
// total number of such posts.
func (s *Service) Posts(ctx context.Context, viewerID string, page, limit int) ([]Post, int64, error) {
	page, limit = NormalizePage(page, limit)

	authors, err := s.Visibility.VisibleAuthors(ctx, viewerID)
	if err != nil {
		return nil, 0, err
	}
	posts, total, err := s.Content.ListPostsByAuthors(ctx, authors, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return s.withAuthors(ctx, posts), total, nil
}

// AuthorPosts returns one page of authorID's posts as seen by viewerID,
// which may be empty for an anonymous viewer. It fails with
// ErrPostsHidden when the viewer may not see them.
func (s *Service) AuthorPosts(ctx context.Context, viewerID, authorID string, page, limit int) ([]Post, int64, error) {
	page, limit = NormalizePage(page, limit)

	ok, err := s.Visibility.CanView(ctx, viewerID, authorID)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, ErrPostsHidden
	}
	posts, total, err := s.Content.ListPostsByAuthors(ctx, []string{authorID}, page, limit)
	if err != nil {
		return nil, 0, err
	}
	return s.withAuthors(ctx, posts), total, nil
}

func (s *Service) withAuthors(ctx context.Context, posts []models.Post) []Post {
	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.UserID)
	}
	summaries := s.Summaries.Summaries(ctx, ids)

	out := make([]Post, 0, len(posts))
	for _, p := range posts {
		imageURLs := p.ImageURLs
		if imageURLs == nil {
			imageURLs = []string{}
		}
		out = append(out, Post{
			ID:            p.ID,
			User:          summaries[p.UserID],
			Content:       p.Content,
			ImageURLs:     imageURLs,
			PostType:      p.PostType,
			LikesCount:    p.LikesCount,
			CommentsCount: p.CommentsCount,
			CreatedAt:     p.CreatedAt,
		})
	}
	return out
}

// Stories returns the unexpired stories of authors visible to viewerID.
func (s *Service) Stories(ctx context.Context, viewerID string) ([]Story, error) {
	authors, err := s.Visibility.VisibleAuthors(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	stories, err := s.Content.ListStoriesByAuthors(ctx, authors, s.now().Add(-models.StoryLifetime))
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(stories))
	for _, st := range stories {
		ids = append(ids, st.UserID)
	}
	summaries := s.Summaries.Summaries(ctx, ids)

	out := make([]Story, 0, len(stories))
	for _, st := range stories {
		out = append(out, Story{
			ID:              st.ID,
			User:            summaries[st.UserID],
			Content:         st.Content,
			MediaURL:        st.MediaURL,
			MediaType:       st.MediaType,
			BackgroundColor: st.BackgroundColor,
			CreatedAt:       st.CreatedAt,
			ExpiresAt:       st.CreatedAt.Add(models.StoryLifetime),
		})
	}
	return out, nil
}

// ExpireStory deletes one story. Deleting a missing story succeeds.
func (s *Service) ExpireStory(ctx context.Context, storyID string) error {
	err := s.Content.DeleteStory(ctx, storyID)
	if err != nil && !apperr.IsKind(err, apperr.KindNotFound) {
		return err
	}
	s.logger().WithField("story_id", storyID).Debug("Story expired")
	return nil
}

// Sweep deletes every story past its lifetime.
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	return s.Content.DeleteStoriesCreatedBefore(ctx, s.now().Add(-models.StoryLifetime))
}

// RunSweeper calls Sweep every interval until ctx is canceled.
func (s *Service) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := s.Sweep(ctx)
			if err != nil {
				s.logger().WithError(err).Warn("Story sweep failed")
				continue
			}
			if n > 0 {
				s.logger().WithField("deleted", n).Info("Expired stories removed")
			}
		}
	}
}

// RegisterJobs wires the story.expire handler into w.
func (s *Service) RegisterJobs(w *jobs.Worker) {
	w.Handle(jobs.StoryExpire, func(ctx context.Context, raw json.RawMessage) error {
		var p jobs.StoryExpirePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("decode story.expire payload: %w", err)
		}
		return s.ExpireStory(ctx, p.StoryID)
	})
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

func (s *Service) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}
