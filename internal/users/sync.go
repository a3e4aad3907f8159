package users

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pingup/backend/internal/apperr"
	"pingup/backend/internal/jobs"
	"pingup/backend/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const maxUsernameAttempts = 20

// RegisterJobs wires the identity sync handlers into w.
func (s *Service) RegisterJobs(w *jobs.Worker) {
	w.Handle(jobs.UserCreated, s.decode(s.SyncCreated))
	w.Handle(jobs.UserUpdated, s.decode(s.SyncUpdated))
	w.Handle(jobs.UserDeleted, s.decode(func(ctx context.Context, p jobs.IdentityPayload) error {
		return s.SyncDeleted(ctx, p.ID)
	}))
}

func (s *Service) decode(fn func(context.Context, jobs.IdentityPayload) error) jobs.Handler {
	return func(ctx context.Context, raw json.RawMessage) error {
		var p jobs.IdentityPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return fmt.Errorf("decode identity payload: %w", err)
		}
		if strings.TrimSpace(p.ID) == "" {
			return apperr.Validation("id", "required")
		}
		return fn(ctx, p)
	}
}

// SyncCreated stores a user announced by the identity provider. The
// username is the e-mail local part, suffixed with random digits until it
// is unique. A user that already exists is updated instead.
func (s *Service) SyncCreated(ctx context.Context, p jobs.IdentityPayload) error {
	if _, err := s.Users.FindUser(ctx, p.ID); err == nil {
		return s.SyncUpdated(ctx, p)
	} else if !apperr.IsKind(err, apperr.KindNotFound) {
		return err
	}

	username, err := s.uniqueUsername(ctx, usernameBase(p.Email))
	if err != nil {
		return err
	}

	user := models.User{
		ID:             p.ID,
		Username:       username,
		Email:          p.Email,
		FullName:       fullName(p),
		ProfilePicture: p.ProfilePicture,
		AccountType:    models.AccountPublic,
	}
	if err := s.Users.CreateUser(ctx, &user); err != nil {
		return err
	}
	s.logger().WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("User created from identity provider")
	return nil
}

func (s *Service) SyncUpdated(ctx context.Context, p jobs.IdentityPayload) error {
	user, err := s.Users.FindUser(ctx, p.ID)
	if err != nil {
		return err
	}
	user.Email = p.Email
	user.FullName = fullName(p)
	user.ProfilePicture = p.ProfilePicture

	if err := s.Users.SaveUser(ctx, &user); err != nil {
		return err
	}
	s.forget(user.ID)
	return nil
}

// SyncDeleted removes the user. Ids left in other users' relationship sets
// resolve to placeholders from then on.
func (s *Service) SyncDeleted(ctx context.Context, id string) error {
	err := s.Users.DeleteUser(ctx, id)
	if err != nil && !apperr.IsKind(err, apperr.KindNotFound) {
		return err
	}
	s.forget(id)
	s.logger().WithField("user_id", id).Info("User deleted from identity provider")
	return nil
}

func (s *Service) uniqueUsername(ctx context.Context, base string) (string, error) {
	candidate := base
	for i := 0; i < maxUsernameAttempts; i++ {
		_, err := s.Users.FindUserByUsername(ctx, candidate)
		if apperr.IsKind(err, apperr.KindNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s%04d", base, s.intN(10000))
	}
	return base + "_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8], nil
}

func usernameBase(email string) string {
	local, _, _ := strings.Cut(strings.ToLower(strings.TrimSpace(email)), "@")
	local, _, _ = strings.Cut(local, "+")
	var b strings.Builder
	for _, r := range local {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '_' {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	return b.String()
}

func fullName(p jobs.IdentityPayload) string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
