// Package relationship implements follow and connection transitions between
// users.
package relationship

import (
	"context"
	"time"

	"pingup/backend/internal/apperr"
	"pingup/backend/internal/jobs"
	"pingup/backend/internal/models"
	"pingup/backend/internal/store"
	"pingup/backend/internal/users"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultDailyRequestLimit = 20
	requestWindow            = 24 * time.Hour
)

type Store interface {
	FindUser(ctx context.Context, id string) (models.User, error)
	Relations(ctx context.Context, userID string) (models.Relations, error)
	ApplyEdges(ctx context.Context, ops ...store.EdgeOp) error

	CreateConnectionRequest(ctx context.Context, req *models.ConnectionRequest) error
	CountConnectionRequestsSince(ctx context.Context, fromUserID string, since time.Time) (int64, error)
	FindConnectionRequestBetween(ctx context.Context, a, b string) (models.ConnectionRequest, error)
	FindConnectionRequest(ctx context.Context, fromUserID, toUserID string) (models.ConnectionRequest, error)
	MarkConnectionRequestAccepted(ctx context.Context, id string) error
	DeletePendingConnectionRequest(ctx context.Context, fromUserID, toUserID string) (bool, error)
	ListPendingConnectionRequestsTo(ctx context.Context, toUserID string) ([]models.ConnectionRequest, error)
}

type SummaryResolver interface {
	Summaries(ctx context.Context, ids []string) map[string]users.Summary
}

// Engine applies relationship operations. Both sides of a mirrored
// relationship are written in one store batch.
type Engine struct {
	Store     Store
	Jobs      jobs.Queue
	Summaries SummaryResolver
	Logger    logrus.FieldLogger
	Now       func() time.Time

	DailyRequestLimit int
}

type FollowResult struct {
	Immediate bool `json:"immediate"`
}

func (e *Engine) Follow(ctx context.Context, actorID, targetID string) (FollowResult, error) {
	if actorID == targetID {
		return FollowResult{}, apperr.ErrSelfFollow
	}
	target, err := e.findUser(ctx, targetID)
	if err != nil {
		return FollowResult{}, err
	}

	actorRel, err := e.Store.Relations(ctx, actorID)
	if err != nil {
		return FollowResult{}, err
	}
	if actorRel.Following.Has(targetID) {
		return FollowResult{}, apperr.ErrAlreadyFollowing
	}
	targetRel, err := e.Store.Relations(ctx, targetID)
	if err != nil {
		return FollowResult{}, err
	}
	if targetRel.PendingFollowers.Has(actorID) {
		return FollowResult{}, apperr.ErrRequestAlreadyPending
	}

	if target.IsPrivate() {
		err := e.apply(ctx, "follow_request",
			store.AddEdge(targetID, models.RelationPendingFollowers, actorID),
		)
		return FollowResult{Immediate: false}, err
	}

	err = e.apply(ctx, "follow",
		store.AddEdge(actorID, models.RelationFollowing, targetID),
		store.AddEdge(targetID, models.RelationFollowers, actorID),
	)
	return FollowResult{Immediate: true}, err
}

// Unfollow removes the follow in both directions of the mirror and
// withdraws a pending follow request. It never fails on missing state.
func (e *Engine) Unfollow(ctx context.Context, actorID, targetID string) error {
	return e.apply(ctx, "unfollow",
		store.RemoveEdge(actorID, models.RelationFollowing, targetID),
		store.RemoveEdge(targetID, models.RelationFollowers, actorID),
		store.RemoveEdge(targetID, models.RelationPendingFollowers, actorID),
	)
}

// AcceptFollowRequest turns a pending follow into a mutual connection.
func (e *Engine) AcceptFollowRequest(ctx context.Context, ownerID, followerID string) error {
	rel, err := e.Store.Relations(ctx, ownerID)
	if err != nil {
		return err
	}
	if !rel.PendingFollowers.Has(followerID) {
		return apperr.ErrNoPendingRequest
	}

	return e.apply(ctx, "accept_follow",
		store.RemoveEdge(ownerID, models.RelationPendingFollowers, followerID),
		store.AddEdge(ownerID, models.RelationFollowers, followerID),
		store.AddEdge(ownerID, models.RelationConnections, followerID),
		store.AddEdge(followerID, models.RelationFollowing, ownerID),
		store.AddEdge(followerID, models.RelationConnections, ownerID),
	)
}

func (e *Engine) RejectFollowRequest(ctx context.Context, ownerID, followerID string) error {
	return e.apply(ctx, "reject_follow",
		store.RemoveEdge(ownerID, models.RelationPendingFollowers, followerID),
	)
}

// apply writes ops as one batch. A failure is logged with an operation id
// and the full batch so the pair can be reconciled.
func (e *Engine) apply(ctx context.Context, op string, ops ...store.EdgeOp) error {
	if err := e.Store.ApplyEdges(ctx, ops...); err != nil {
		e.logger().WithError(err).WithFields(logrus.Fields{
			"op":    op,
			"op_id": uuid.NewString(),
			"edges": ops,
		}).Error("Relationship write failed")
		return err
	}
	return nil
}

func (e *Engine) findUser(ctx context.Context, id string) (models.User, error) {
	user, err := e.Store.FindUser(ctx, id)
	if apperr.IsKind(err, apperr.KindNotFound) {
		return models.User{}, apperr.ErrUserNotFound
	}
	return user, err
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now().UTC()
	}
	return e.Now()
}

func (e *Engine) logger() logrus.FieldLogger {
	if e.Logger == nil {
		return logrus.StandardLogger()
	}
	return e.Logger
}

func (e *Engine) dailyLimit() int64 {
	if e.DailyRequestLimit <= 0 {
		return DefaultDailyRequestLimit
	}
	return int64(e.DailyRequestLimit)
}

// Status describes how viewer relates to target.
type Status struct {
	Following     bool `json:"following"`
	FollowPending bool `json:"follow_pending"`
	FollowsYou    bool `json:"follows_you"`
	Connected     bool `json:"connected"`
}

func (e *Engine) Status(ctx context.Context, viewerID, targetID string) (Status, error) {
	rel, err := e.Store.Relations(ctx, viewerID)
	if err != nil {
		return Status{}, err
	}
	targetRel, err := e.Store.Relations(ctx, targetID)
	if err != nil {
		return Status{}, err
	}
	return Status{
		Following:     rel.Following.Has(targetID),
		FollowPending: targetRel.PendingFollowers.Has(viewerID),
		FollowsYou:    rel.Followers.Has(targetID),
		Connected:     rel.Connections.Has(targetID),
	}, nil
}
