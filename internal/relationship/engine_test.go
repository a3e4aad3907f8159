package relationship

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"pingup/backend/internal/apperr"
	"pingup/backend/internal/jobs"
	"pingup/backend/internal/models"
	"pingup/backend/internal/store"
	"pingup/backend/internal/store/storetest"
	"pingup/backend/internal/users"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type enqueued struct {
	name    string
	payload interface{}
}

type recordingQueue struct {
	mu   sync.Mutex
	jobs []enqueued
	err  error
}

func (q *recordingQueue) Enqueue(_ context.Context, name string, payload interface{}) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, enqueued{name: name, payload: payload})
	return q.err
}

func (q *recordingQueue) Schedule(ctx context.Context, name string, payload interface{}, _ time.Time) error {
	return q.Enqueue(ctx, name, payload)
}

type failingEdges struct {
	*store.Store
}

func (failingEdges) ApplyEdges(context.Context, ...store.EdgeOp) error {
	return apperr.Unavailable("apply edges", context.DeadlineExceeded)
}

type EngineTestSuite struct {
	suite.Suite

	store  *store.Store
	queue  *recordingQueue
	engine *Engine
	ctx    context.Context
	now    time.Time
}

func (self *EngineTestSuite) SetupTest() {
	log := logrus.New()
	log.SetOutput(io.Discard)

	self.ctx = context.Background()
	self.now = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	self.store, _ = storetest.New(self.T())
	self.queue = &recordingQueue{}
	self.engine = &Engine{
		Store:     self.store,
		Jobs:      self.queue,
		Summaries: users.NewResolver(self.store, time.Minute, log),
		Logger:    log,
		Now:       func() time.Time { return self.now },
	}

	self.user("alice", models.AccountPublic)
	self.user("bob", models.AccountPrivate)
	self.user("carol", models.AccountPublic)
}

func (self *EngineTestSuite) user(id string, account models.AccountType) {
	require.NoError(self.T(), self.store.CreateUser(self.ctx, &models.User{
		ID: id, Username: id, FullName: id, AccountType: account,
	}))
}

func (self *EngineTestSuite) relations(id string) models.Relations {
	rel, err := self.store.Relations(self.ctx, id)
	require.NoError(self.T(), err)
	return rel
}

func (self *EngineTestSuite) TestFollowPublicWritesMirror() {
	res, err := self.engine.Follow(self.ctx, "alice", "carol")
	require.NoError(self.T(), err)
	assert.True(self.T(), res.Immediate)

	assert.True(self.T(), self.relations("alice").Following.Has("carol"))
	assert.True(self.T(), self.relations("carol").Followers.Has("alice"))
	assert.Empty(self.T(), self.relations("carol").Connections)

	_, err = self.engine.Follow(self.ctx, "alice", "carol")
	assert.ErrorIs(self.T(), err, apperr.ErrAlreadyFollowing)
}

func (self *EngineTestSuite) TestFollowErrors() {
	_, err := self.engine.Follow(self.ctx, "alice", "alice")
	assert.ErrorIs(self.T(), err, apperr.ErrSelfFollow)

	_, err = self.engine.Follow(self.ctx, "alice", "ghost")
	assert.ErrorIs(self.T(), err, apperr.ErrUserNotFound)

	_, err = self.engine.Follow(self.ctx, "alice", "bob")
	require.NoError(self.T(), err)
	_, err = self.engine.Follow(self.ctx, "alice", "bob")
	assert.ErrorIs(self.T(), err, apperr.ErrRequestAlreadyPending)
	assert.Equal(self.T(), apperr.KindConflict, apperr.KindOf(err))
}

func (self *EngineTestSuite) TestPrivateFollowThenAccept() {
	res, err := self.engine.Follow(self.ctx, "alice", "bob")
	require.NoError(self.T(), err)
	assert.False(self.T(), res.Immediate)
	assert.True(self.T(), self.relations("bob").PendingFollowers.Has("alice"))
	assert.False(self.T(), self.relations("alice").Following.Has("bob"))

	require.NoError(self.T(), self.engine.AcceptFollowRequest(self.ctx, "bob", "alice"))

	bob := self.relations("bob")
	alice := self.relations("alice")
	assert.False(self.T(), bob.PendingFollowers.Has("alice"))
	assert.True(self.T(), bob.Followers.Has("alice"))
	assert.True(self.T(), bob.Connections.Has("alice"))
	assert.True(self.T(), alice.Connections.Has("bob"))
	assert.True(self.T(), alice.Following.Has("bob"))

	err = self.engine.AcceptFollowRequest(self.ctx, "bob", "alice")
	assert.ErrorIs(self.T(), err, apperr.ErrNoPendingRequest)
}

func (self *EngineTestSuite) TestRejectFollowRequest() {
	_, err := self.engine.Follow(self.ctx, "carol", "bob")
	require.NoError(self.T(), err)

	require.NoError(self.T(), self.engine.RejectFollowRequest(self.ctx, "bob", "carol"))
	require.NoError(self.T(), self.engine.RejectFollowRequest(self.ctx, "bob", "carol"))

	bob := self.relations("bob")
	assert.Empty(self.T(), bob.PendingFollowers)
	assert.Empty(self.T(), bob.Followers)
}

func (self *EngineTestSuite) TestUnfollowIsIdempotent() {
	_, err := self.engine.Follow(self.ctx, "alice", "carol")
	require.NoError(self.T(), err)

	require.NoError(self.T(), self.engine.Unfollow(self.ctx, "alice", "carol"))
	once := [2]models.Relations{self.relations("alice"), self.relations("carol")}

	require.NoError(self.T(), self.engine.Unfollow(self.ctx, "alice", "carol"))
	twice := [2]models.Relations{self.relations("alice"), self.relations("carol")}

	assert.Equal(self.T(), once, twice)
	assert.Empty(self.T(), twice[0].Following)
	assert.Empty(self.T(), twice[1].Followers)
}

func (self *EngineTestSuite) TestUnfollowWithdrawsPendingRequest() {
	_, err := self.engine.Follow(self.ctx, "alice", "bob")
	require.NoError(self.T(), err)

	require.NoError(self.T(), self.engine.Unfollow(self.ctx, "alice", "bob"))
	assert.Empty(self.T(), self.relations("bob").PendingFollowers)

	_, err = self.engine.Follow(self.ctx, "alice", "bob")
	assert.NoError(self.T(), err)
}

func (self *EngineTestSuite) TestSendConnectionRequest() {
	req, err := self.engine.SendConnectionRequest(self.ctx, "alice", "carol")
	require.NoError(self.T(), err)
	assert.Equal(self.T(), models.StatusPending, req.Status)

	require.Len(self.T(), self.queue.jobs, 1)
	assert.Equal(self.T(), jobs.ConnectionRequested, self.queue.jobs[0].name)
	assert.Equal(self.T(), jobs.ConnectionRequestedPayload{RequestID: req.ID, FromUserID: "alice", ToUserID: "carol"}, self.queue.jobs[0].payload)

	_, err = self.engine.SendConnectionRequest(self.ctx, "alice", "carol")
	assert.ErrorIs(self.T(), err, apperr.ErrRequestPending)

	_, err = self.engine.SendConnectionRequest(self.ctx, "carol", "alice")
	assert.ErrorIs(self.T(), err, apperr.ErrRequestPending, "either direction counts")

	_, err = self.engine.AcceptConnectionRequest(self.ctx, "carol", "alice")
	require.NoError(self.T(), err)

	_, err = self.engine.SendConnectionRequest(self.ctx, "carol", "alice")
	assert.ErrorIs(self.T(), err, apperr.ErrAlreadyConnected)
}

func (self *EngineTestSuite) TestSendConnectionRequestErrors() {
	_, err := self.engine.SendConnectionRequest(self.ctx, "alice", "alice")
	assert.ErrorIs(self.T(), err, apperr.ErrSelfConnect)

	_, err = self.engine.SendConnectionRequest(self.ctx, "alice", "ghost")
	assert.ErrorIs(self.T(), err, apperr.ErrUserNotFound)
	assert.Empty(self.T(), self.queue.jobs)
}

func (self *EngineTestSuite) TestEnqueueFailureDoesNotFailRequest() {
	self.queue.err = fmt.Errorf("redis down")

	req, err := self.engine.SendConnectionRequest(self.ctx, "alice", "carol")
	require.NoError(self.T(), err)

	stored, err := self.store.FindConnectionRequest(self.ctx, "alice", "carol")
	require.NoError(self.T(), err)
	assert.Equal(self.T(), req.ID, stored.ID)
}

func (self *EngineTestSuite) TestConnectionRequestRateLimit() {
	for i := 0; i < 21; i++ {
		self.user(fmt.Sprintf("target-%02d", i), models.AccountPublic)
	}

	for i := 0; i < 20; i++ {
		_, err := self.engine.SendConnectionRequest(self.ctx, "alice", fmt.Sprintf("target-%02d", i))
		require.NoError(self.T(), err, "request %d", i+1)
	}

	_, err := self.engine.SendConnectionRequest(self.ctx, "alice", "target-20")
	assert.ErrorIs(self.T(), err, apperr.ErrRateLimited)
	assert.Equal(self.T(), apperr.KindRateLimited, apperr.KindOf(err))

	// Requests older than a day no longer count.
	self.now = self.now.Add(24*time.Hour + time.Second)
	_, err = self.engine.SendConnectionRequest(self.ctx, "alice", "target-20")
	assert.NoError(self.T(), err)
}

func (self *EngineTestSuite) TestDeclinedRequestsStillCountTowardsLimit() {
	for i := 0; i < 20; i++ {
		self.user(fmt.Sprintf("target-%02d", i), models.AccountPublic)
	}

	for i := 0; i < 20; i++ {
		target := fmt.Sprintf("target-%02d", i)
		_, err := self.engine.SendConnectionRequest(self.ctx, "alice", target)
		require.NoError(self.T(), err, "request %d", i+1)
		require.NoError(self.T(), self.engine.DeclineConnectionRequest(self.ctx, target, "alice"))
	}

	sent, err := self.store.CountConnectionRequestsSince(self.ctx, "alice", self.now.Add(-24*time.Hour))
	require.NoError(self.T(), err)
	assert.Equal(self.T(), int64(20), sent)

	// Resending to a target who declined is still limited.
	_, err = self.engine.SendConnectionRequest(self.ctx, "alice", "target-00")
	assert.ErrorIs(self.T(), err, apperr.ErrRateLimited)
	_, err = self.engine.SendConnectionRequest(self.ctx, "alice", "carol")
	assert.ErrorIs(self.T(), err, apperr.ErrRateLimited)

	// A declined request no longer blocks a new one once the window has passed.
	self.now = self.now.Add(24*time.Hour + time.Second)
	_, err = self.engine.SendConnectionRequest(self.ctx, "alice", "target-00")
	assert.NoError(self.T(), err)
}

func (self *EngineTestSuite) TestAcceptConnectionRequest() {
	_, err := self.engine.AcceptConnectionRequest(self.ctx, "carol", "alice")
	assert.ErrorIs(self.T(), err, apperr.ErrNoRequestFound)

	_, err = self.engine.SendConnectionRequest(self.ctx, "alice", "carol")
	require.NoError(self.T(), err)

	// Only the addressee can accept.
	_, err = self.engine.AcceptConnectionRequest(self.ctx, "alice", "carol")
	assert.ErrorIs(self.T(), err, apperr.ErrNoRequestFound)

	req, err := self.engine.AcceptConnectionRequest(self.ctx, "carol", "alice")
	require.NoError(self.T(), err)
	assert.Equal(self.T(), models.StatusAccepted, req.Status)
	assert.True(self.T(), self.relations("carol").Connections.Has("alice"))
	assert.True(self.T(), self.relations("alice").Connections.Has("carol"))

	_, err = self.engine.AcceptConnectionRequest(self.ctx, "carol", "alice")
	assert.NoError(self.T(), err)
	assert.Len(self.T(), self.relations("carol").Connections, 1)
}

func (self *EngineTestSuite) TestDeclineConnectionRequest() {
	_, err := self.engine.SendConnectionRequest(self.ctx, "alice", "carol")
	require.NoError(self.T(), err)

	require.NoError(self.T(), self.engine.DeclineConnectionRequest(self.ctx, "carol", "alice"))
	assert.ErrorIs(self.T(), self.engine.DeclineConnectionRequest(self.ctx, "carol", "alice"), apperr.ErrNoRequestFound)

	_, err = self.engine.AcceptConnectionRequest(self.ctx, "carol", "alice")
	assert.ErrorIs(self.T(), err, apperr.ErrNoRequestFound)

	_, err = self.engine.SendConnectionRequest(self.ctx, "alice", "carol")
	assert.NoError(self.T(), err)
}

func (self *EngineTestSuite) TestConnectionsViewResolvesPlaceholders() {
	_, err := self.engine.Follow(self.ctx, "alice", "bob")
	require.NoError(self.T(), err)
	_, err = self.engine.Follow(self.ctx, "carol", "bob")
	require.NoError(self.T(), err)
	require.NoError(self.T(), self.engine.AcceptFollowRequest(self.ctx, "bob", "carol"))
	_, err = self.engine.SendConnectionRequest(self.ctx, "alice", "bob")
	require.NoError(self.T(), err)

	require.NoError(self.T(), self.store.ApplyEdges(self.ctx, store.AddEdge("bob", models.RelationFollowers, "deleted-user")))

	view, err := self.engine.ConnectionsView(self.ctx, "bob")
	require.NoError(self.T(), err)

	assert.Equal(self.T(), []users.Summary{users.SummaryOf(models.User{ID: "carol", Username: "carol", FullName: "carol"})}, view.Connections)
	require.Len(self.T(), view.Followers, 2)
	assert.Equal(self.T(), "carol", view.Followers[0].Username)
	assert.Equal(self.T(), users.Placeholder("deleted-user"), view.Followers[1])
	require.Len(self.T(), view.PendingFollowers, 1)
	assert.Equal(self.T(), "alice", view.PendingFollowers[0].ID)
	assert.Empty(self.T(), view.Following)
	require.Len(self.T(), view.PendingConnections, 1)
	assert.Equal(self.T(), "alice", view.PendingConnections[0].From.Username)

	_, err = self.engine.ConnectionsView(self.ctx, "ghost")
	assert.ErrorIs(self.T(), err, apperr.ErrUserNotFound)
}

func (self *EngineTestSuite) TestStoreFailureSurfacesRetryable() {
	self.engine.Store = failingEdges{self.store}

	_, err := self.engine.Follow(self.ctx, "alice", "carol")
	require.Error(self.T(), err)
	assert.True(self.T(), apperr.Retryable(err))
	assert.Empty(self.T(), self.relations("alice").Following)
}

func TestEngine(t *testing.T) {
	suite.Run(t, &EngineTestSuite{})
}

func (self *EngineTestSuite) TestStatusReflectsTransitions() {
	st, err := self.engine.Status(self.ctx, "alice", "bob")
	require.NoError(self.T(), err)
	assert.Equal(self.T(), Status{}, st)

	_, err = self.engine.Follow(self.ctx, "alice", "bob")
	require.NoError(self.T(), err)
	st, err = self.engine.Status(self.ctx, "alice", "bob")
	require.NoError(self.T(), err)
	assert.Equal(self.T(), Status{FollowPending: true}, st)

	require.NoError(self.T(), self.engine.AcceptFollowRequest(self.ctx, "bob", "alice"))
	st, err = self.engine.Status(self.ctx, "alice", "bob")
	require.NoError(self.T(), err)
	assert.Equal(self.T(), Status{Following: true, Connected: true}, st)

	st, err = self.engine.Status(self.ctx, "bob", "alice")
	require.NoError(self.T(), err)
	assert.Equal(self.T(), Status{FollowsYou: true, Connected: true}, st)
}
