package users

import (
	"context"
	"time"

	"pingup/backend/internal/models"

	"github.com/Velocidex/ttlcache/v2"
	"github.com/sirupsen/logrus"
)

// Summary is the display identity attached to messages, posts and
// relationship listings.
type Summary struct {
	ID             string `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture,omitempty"`
}

// Placeholder stands in for a user that no longer exists.
func Placeholder(id string) Summary {
	return Summary{ID: id, FullName: "Unknown User", Username: "unknown"}
}

func SummaryOf(u models.User) Summary {
	return Summary{
		ID:             u.ID,
		Username:       u.Username,
		FullName:       u.FullName,
		ProfilePicture: u.ProfilePicture,
	}
}

type summaryStore interface {
	FindUsers(ctx context.Context, ids []string) ([]models.User, error)
}

// Resolver turns user ids into summaries. It never fails: ids that cannot
// be resolved yield a placeholder.
type Resolver struct {
	store summaryStore
	lru   *ttlcache.Cache
	log   logrus.FieldLogger
}

func NewResolver(store summaryStore, ttl time.Duration, log logrus.FieldLogger) *Resolver {
	r := &Resolver{
		store: store,
		lru:   ttlcache.NewCache(),
		log:   log,
	}
	r.lru.SetCacheSizeLimit(10000)
	_ = r.lru.SetTTL(ttl)
	return r
}

func (r *Resolver) Summary(ctx context.Context, id string) Summary {
	return r.Summaries(ctx, []string{id})[id]
}

// Summaries resolves every id, loading cache misses in one query.
func (r *Resolver) Summaries(ctx context.Context, ids []string) map[string]Summary {
	out := make(map[string]Summary, len(ids))
	var misses []string
	for _, id := range ids {
		if _, ok := out[id]; ok {
			continue
		}
		if cached, err := r.lru.Get(id); err == nil {
			if s, ok := cached.(Summary); ok {
				out[id] = s
				continue
			}
		}
		out[id] = Placeholder(id)
		misses = append(misses, id)
	}
	if len(misses) == 0 {
		return out
	}

	found, err := r.store.FindUsers(ctx, misses)
	if err != nil {
		r.log.WithError(err).WithField("ids", len(misses)).Warn("Summary lookup failed, using placeholders")
		return out
	}
	for _, u := range found {
		s := SummaryOf(u)
		out[u.ID] = s
		_ = r.lru.Set(u.ID, s)
	}
	return out
}

// Forget drops the cached summary of id.
func (r *Resolver) Forget(id string) {
	_ = r.lru.Remove(id)
}

func (r *Resolver) Close() {
	_ = r.lru.Close()
}
