// Package users owns user profiles and their sync from the identity
// provider.
package users

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"

	"pingup/backend/internal/apperr"
	"pingup/backend/internal/models"

	"github.com/sirupsen/logrus"
)

type Store interface {
	FindUser(ctx context.Context, id string) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUsers(ctx context.Context, ids []string) ([]models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	SaveUser(ctx context.Context, user *models.User) error
	DeleteUser(ctx context.Context, id string) error
	SearchUsers(ctx context.Context, query, excludeID string, limit int) ([]models.User, error)
	ListUsersExcept(ctx context.Context, excludeIDs []string, limit int) ([]models.User, error)
	Relations(ctx context.Context, userID string) (models.Relations, error)
}

type Service struct {
	Users     Store
	Summaries *Resolver
	Logger    logrus.FieldLogger

	// IntN returns a random number in [0, n). Defaults to math/rand.
	IntN func(n int) int
}

// ProfilePatch holds the fields a user may change on their own profile.
// Nil fields are left as they are.
type ProfilePatch struct {
	Username    *string `json:"username"`
	FullName    *string `json:"full_name"`
	Bio         *string `json:"bio"`
	Location    *string `json:"location"`
	AccountType *string `json:"account_type"`
}

func (s *Service) Profile(ctx context.Context, id string) (models.User, error) {
	user, err := s.Users.FindUser(ctx, id)
	if apperr.IsKind(err, apperr.KindNotFound) {
		return models.User{}, apperr.ErrUserNotFound
	}
	return user, err
}

func (s *Service) UpdateProfile(ctx context.Context, id string, patch ProfilePatch) (models.User, error) {
	user, err := s.Profile(ctx, id)
	if err != nil {
		return models.User{}, err
	}

	if patch.Username != nil {
		username := strings.TrimSpace(*patch.Username)
		if username == "" {
			return models.User{}, apperr.Validation("username", "must not be empty")
		}
		if username != user.Username {
			_, err := s.Users.FindUserByUsername(ctx, username)
			switch {
			case err == nil:
				return models.User{}, apperr.ErrUsernameTaken
			case !apperr.IsKind(err, apperr.KindNotFound):
				return models.User{}, err
			}
			user.Username = username
		}
	}
	if patch.AccountType != nil {
		switch t := models.AccountType(strings.ToLower(strings.TrimSpace(*patch.AccountType))); t {
		case models.AccountPublic, models.AccountPrivate:
			user.AccountType = t
		default:
			return models.User{}, apperr.Validation("account_type", "must be public or private")
		}
	}
	if patch.FullName != nil {
		user.FullName = strings.TrimSpace(*patch.FullName)
	}
	if patch.Bio != nil {
		user.Bio = strings.TrimSpace(*patch.Bio)
	}
	if patch.Location != nil {
		user.Location = strings.TrimSpace(*patch.Location)
	}

	if err := s.Users.SaveUser(ctx, &user); err != nil {
		if errors.Is(err, apperr.ErrDuplicate) {
			return models.User{}, apperr.ErrUsernameTaken
		}
		return models.User{}, err
	}
	s.forget(user.ID)
	return user, nil
}

func (s *Service) forget(id string) {
	if s.Summaries != nil {
		s.Summaries.Forget(id)
	}
}

func (s *Service) logger() logrus.FieldLogger {
	if s.Logger == nil {
		return logrus.StandardLogger()
	}
	return s.Logger
}

func (s *Service) intN(n int) int {
	if s.IntN == nil {
		return rand.IntN(n)
	}
	return s.IntN(n)
}
