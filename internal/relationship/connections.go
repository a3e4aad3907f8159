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

// SendConnectionRequest creates a pending request from actor to target.
// The daily limit is checked before writing, so concurrent requests may
// briefly exceed it.
func (e *Engine) SendConnectionRequest(ctx context.Context, actorID, targetID string) (models.ConnectionRequest, error) {
	now := e.now()

	sent, err := e.Store.CountConnectionRequestsSince(ctx, actorID, now.Add(-requestWindow))
	if err != nil {
		return models.ConnectionRequest{}, err
	}
	if sent >= e.dailyLimit() {
		return models.ConnectionRequest{}, apperr.ErrRateLimited
	}

	if actorID == targetID {
		return models.ConnectionRequest{}, apperr.ErrSelfConnect
	}
	if _, err := e.findUser(ctx, targetID); err != nil {
		return models.ConnectionRequest{}, err
	}

	existing, err := e.Store.FindConnectionRequestBetween(ctx, actorID, targetID)
	switch {
	case err == nil && existing.Status == models.StatusAccepted:
		return models.ConnectionRequest{}, apperr.ErrAlreadyConnected
	case err == nil:
		return models.ConnectionRequest{}, apperr.ErrRequestPending
	case !apperr.IsKind(err, apperr.KindNotFound):
		return models.ConnectionRequest{}, err
	}

	req := models.ConnectionRequest{
		ID:         uuid.NewString(),
		FromUserID: actorID,
		ToUserID:   targetID,
		Status:     models.StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := e.Store.CreateConnectionRequest(ctx, &req); err != nil {
		return models.ConnectionRequest{}, err
	}

	if e.Jobs != nil {
		payload := jobs.ConnectionRequestedPayload{RequestID: req.ID, FromUserID: actorID, ToUserID: targetID}
		if err := e.Jobs.Enqueue(ctx, jobs.ConnectionRequested, payload); err != nil {
			e.logger().WithError(err).WithField("request_id", req.ID).Warn("Failed to enqueue connection request notification")
		}
	}
	return req, nil
}

// AcceptConnectionRequest connects owner and requester. Accepting an
// already accepted request succeeds without changes.
func (e *Engine) AcceptConnectionRequest(ctx context.Context, ownerID, requesterID string) (models.ConnectionRequest, error) {
	req, err := e.Store.FindConnectionRequest(ctx, requesterID, ownerID)
	if apperr.IsKind(err, apperr.KindNotFound) {
		return models.ConnectionRequest{}, apperr.ErrNoRequestFound
	}
	if err != nil {
		return models.ConnectionRequest{}, err
	}

	err = e.apply(ctx, "accept_connection",
		store.AddEdge(ownerID, models.RelationConnections, requesterID),
		store.AddEdge(requesterID, models.RelationConnections, ownerID),
	)
	if err != nil {
		return models.ConnectionRequest{}, err
	}

	if req.Status != models.StatusAccepted {
		if err := e.Store.MarkConnectionRequestAccepted(ctx, req.ID); err != nil {
			e.logger().WithError(err).WithFields(logrus.Fields{
				"op":         "accept_connection",
				"request_id": req.ID,
			}).Error("Connections written but request status not updated")
			return models.ConnectionRequest{}, err
		}
		req.Status = models.StatusAccepted
	}
	return req, nil
}

// DeclineConnectionRequest removes the pending request from requester to
// owner. The request keeps counting towards the requester's daily limit.
func (e *Engine) DeclineConnectionRequest(ctx context.Context, ownerID, requesterID string) error {
	deleted, err := e.Store.DeletePendingConnectionRequest(ctx, requesterID, ownerID)
	if err != nil {
		return err
	}
	if !deleted {
		return apperr.ErrNoRequestFound
	}
	return nil
}

type PendingConnection struct {
	ID        string        `json:"id"`
	From      users.Summary `json:"from"`
	CreatedAt time.Time     `json:"created_at"`
}

// ConnectionsView lists every relationship of a user with display
// identities.
type ConnectionsView struct {
	Connections        []users.Summary     `json:"connections"`
	Followers          []users.Summary     `json:"followers"`
	Following          []users.Summary     `json:"following"`
	PendingFollowers   []users.Summary     `json:"pending_followers"`
	PendingConnections []PendingConnection `json:"pending_connections"`
}

func (e *Engine) ConnectionsView(ctx context.Context, ownerID string) (ConnectionsView, error) {
	if _, err := e.findUser(ctx, ownerID); err != nil {
		return ConnectionsView{}, err
	}
	rel, err := e.Store.Relations(ctx, ownerID)
	if err != nil {
		return ConnectionsView{}, err
	}
	pending, err := e.Store.ListPendingConnectionRequestsTo(ctx, ownerID)
	if err != nil {
		return ConnectionsView{}, err
	}

	all := models.NewIDSet()
	for _, set := range []models.IDSet{rel.Connections, rel.Followers, rel.Following, rel.PendingFollowers} {
		for id := range set {
			all.Add(id)
		}
	}
	for _, req := range pending {
		all.Add(req.FromUserID)
	}
	summaries := e.Summaries.Summaries(ctx, all.Sorted())

	resolve := func(set models.IDSet) []users.Summary {
		out := make([]users.Summary, 0, len(set))
		for _, id := range set.Sorted() {
			out = append(out, summaries[id])
		}
		return out
	}

	view := ConnectionsView{
		Connections:        resolve(rel.Connections),
		Followers:          resolve(rel.Followers),
		Following:          resolve(rel.Following),
		PendingFollowers:   resolve(rel.PendingFollowers),
		PendingConnections: make([]PendingConnection, 0, len(pending)),
	}
	for _, req := range pending {
		view.PendingConnections = append(view.PendingConnections, PendingConnection{
			ID:        req.ID,
			From:      summaries[req.FromUserID],
			CreatedAt: req.CreatedAt,
		})
	}
	return view, nil
}
