package users

import (
	"context"
	"strings"

	"pingup/backend/internal/apperr"
	"pingup/backend/internal/models"
)

const (
	DiscoverLimit    = 50
	SuggestionsLimit = 10
)

// Discover searches other users by username, e-mail, full name and
// location. The viewer never appears in the results.
func (s *Service) Discover(ctx context.Context, viewerID, query string) ([]models.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperr.Validation("q", "required")
	}
	found, err := s.Users.SearchUsers(ctx, query, viewerID, DiscoverLimit)
	if err != nil {
		return nil, err
	}
	if found == nil {
		found = []models.User{}
	}
	return found, nil
}

// Suggestions returns the newest users the viewer neither follows nor is
// connected to.
func (s *Service) Suggestions(ctx context.Context, viewerID string, limit int) ([]models.User, error) {
	if limit < 1 || limit > DiscoverLimit {
		limit = SuggestionsLimit
	}
	if _, err := s.Profile(ctx, viewerID); err != nil {
		return nil, err
	}
	rel, err := s.Users.Relations(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	exclude := models.NewIDSet(viewerID)
	for id := range rel.Following {
		exclude.Add(id)
	}
	for id := range rel.Connections {
		exclude.Add(id)
	}

	suggested, err := s.Users.ListUsersExcept(ctx, exclude.Sorted(), limit)
	if err != nil {
		return nil, err
	}
	if suggested == nil {
		suggested = []models.User{}
	}
	return suggested, nil
}
