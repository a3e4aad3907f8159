// Package visibility decides whose posts and stories a viewer may see.
package visibility

import (
	"context"

	"pingup/backend/internal/apperr"
	"pingup/backend/internal/models"
)

type Store interface {
	FindUser(ctx context.Context, id string) (models.User, error)
	FindUsers(ctx context.Context, ids []string) ([]models.User, error)
	Relations(ctx context.Context, userID string) (models.Relations, error)
	HasEdge(ctx context.Context, userID string, kind models.RelationKind, memberID string) (bool, error)
}

type Resolver struct {
	Store Store
}

// VisibleAuthors returns the viewer, the viewer's connections, and every
// followed user that is public or lists the viewer as a follower. Followed
// ids that no longer resolve to a user are skipped.
func (r *Resolver) VisibleAuthors(ctx context.Context, viewerID string) ([]string, error) {
	if _, err := r.Store.FindUser(ctx, viewerID); err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return nil, apperr.ErrUserNotFound
		}
		return nil, err
	}

	rel, err := r.Store.Relations(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	authors := models.NewIDSet(viewerID)
	for id := range rel.Connections {
		authors.Add(id)
	}

	followed, err := r.Store.FindUsers(ctx, rel.Following.Sorted())
	if err != nil {
		return nil, err
	}
	for _, u := range followed {
		if authors.Has(u.ID) {
			continue
		}
		if !u.IsPrivate() {
			authors.Add(u.ID)
			continue
		}
		ok, err := r.Store.HasEdge(ctx, u.ID, models.RelationFollowers, viewerID)
		if err != nil {
			return nil, err
		}
		if ok {
			authors.Add(u.ID)
		}
	}
	return authors.Sorted(), nil
}

// CanView reports whether viewerID may see authorID's posts on the
// author's profile. Public authors are visible to everyone, including an
// anonymous viewer (empty id). A private author is visible to itself, its
// connections and its approved followers.
func (r *Resolver) CanView(ctx context.Context, viewerID, authorID string) (bool, error) {
	author, err := r.Store.FindUser(ctx, authorID)
	if err != nil {
		if apperr.IsKind(err, apperr.KindNotFound) {
			return false, apperr.ErrUserNotFound
		}
		return false, err
	}
	if !author.IsPrivate() || viewerID == authorID {
		return true, nil
	}
	if viewerID == "" {
		return false, nil
	}
	for _, kind := range []models.RelationKind{models.RelationConnections, models.RelationFollowers} {
		ok, err := r.Store.HasEdge(ctx, authorID, kind, viewerID)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}
