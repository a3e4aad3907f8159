package messaging

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"pingup/backend/internal/apperr"
	"pingup/backend/internal/hub"
	"pingup/backend/internal/models"
	"pingup/backend/internal/store"
	"pingup/backend/internal/store/storetest"
	"pingup/backend/internal/users"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MessagingTestSuite struct {
	suite.Suite

	store *store.Store
	db    *gorm.DB
	hub   *hub.Hub
	svc   *Service
	ctx   context.Context
	now   time.Time
}

func (self *MessagingTestSuite) SetupTest() {
	log := logrus.New()
	log.SetOutput(io.Discard)

	self.ctx = context.Background()
	self.now = time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)
	self.store, self.db = storetest.New(self.T())
	self.hub = hub.New(log)
	self.svc = &Service{
		Messages:  self.store,
		Live:      self.hub,
		Summaries: users.NewResolver(self.store, time.Minute, log),
		Logger:    log,
		Now: func() time.Time {
			self.now = self.now.Add(time.Second)
			return self.now
		},
	}

	for _, id := range []string{"alice", "bob"} {
		require.NoError(self.T(), self.store.CreateUser(self.ctx, &models.User{ID: id, Username: id, FullName: id}))
	}
}

func (self *MessagingTestSuite) countMessages() int64 {
	var n int64
	require.NoError(self.T(), self.db.Model(&models.Message{}).Count(&n).Error)
	return n
}

func (self *MessagingTestSuite) TestSendPushesToOpenChannel() {
	ch := make(hub.Client, 4)
	self.hub.Register("bob", ch)

	res, err := self.svc.Send(self.ctx, "alice", "bob", "hi", "")
	require.NoError(self.T(), err)
	assert.True(self.T(), res.Delivered)

	var event struct {
		Type    string  `json:"type"`
		Payload Message `json:"payload"`
	}
	select {
	case data := <-ch:
		require.NoError(self.T(), json.Unmarshal(data, &event))
	default:
		self.T().Fatal("no event on recipient channel")
	}
	assert.Equal(self.T(), hub.EventMessage, event.Type)
	assert.Equal(self.T(), "hi", event.Payload.Text)
	assert.Equal(self.T(), "alice", event.Payload.FromUserID)
	assert.Equal(self.T(), "alice", event.Payload.From.Username)

	msgs, err := self.store.ListMessagesTo(self.ctx, "bob")
	require.NoError(self.T(), err)
	require.Len(self.T(), msgs, 1)
	assert.False(self.T(), msgs[0].Seen)
	assert.Equal(self.T(), models.MessageTypeText, msgs[0].MessageType)
}

func (self *MessagingTestSuite) TestSendWithoutChannelStillSucceeds() {
	res, err := self.svc.Send(self.ctx, "alice", "bob", "", "https://cdn.example.com/a.png")
	require.NoError(self.T(), err)
	assert.False(self.T(), res.Delivered)
	assert.Equal(self.T(), models.MessageTypeImage, res.Message.MessageType)
	assert.EqualValues(self.T(), 1, self.countMessages())
}

func (self *MessagingTestSuite) TestSendEmptyMessagePersistsNothing() {
	_, err := self.svc.Send(self.ctx, "alice", "bob", "   ", "")
	assert.ErrorIs(self.T(), err, apperr.ErrEmptyMessage)
	assert.Equal(self.T(), apperr.KindValidation, apperr.KindOf(err))

	_, err = self.svc.Send(self.ctx, "alice", "", "hi", "")
	assert.Equal(self.T(), apperr.KindValidation, apperr.KindOf(err))

	assert.Zero(self.T(), self.countMessages())
}

func (self *MessagingTestSuite) TestSendToUnknownUserPersistsNothing() {
	live := make(hub.Client, 1)
	require.True(self.T(), self.hub.Register("ghost", live))

	_, err := self.svc.Send(self.ctx, "alice", "ghost", "hi", "")
	assert.ErrorIs(self.T(), err, apperr.ErrUserNotFound)
	assert.Equal(self.T(), apperr.KindNotFound, apperr.KindOf(err))
	assert.Zero(self.T(), self.countMessages())
	assert.Empty(self.T(), live)
}

func (self *MessagingTestSuite) TestThreadMarksIncomingSeen() {
	_, err := self.svc.Send(self.ctx, "alice", "bob", "one", "")
	require.NoError(self.T(), err)
	_, err = self.svc.Send(self.ctx, "alice", "bob", "two", "")
	require.NoError(self.T(), err)
	_, err = self.svc.Send(self.ctx, "bob", "alice", "reply", "")
	require.NoError(self.T(), err)

	thread, err := self.svc.Thread(self.ctx, "bob", "alice")
	require.NoError(self.T(), err)
	require.Len(self.T(), thread, 3)
	assert.Equal(self.T(), "reply", thread[0].Text)
	assert.Equal(self.T(), "one", thread[2].Text)

	received, err := self.store.ListMessagesTo(self.ctx, "bob")
	require.NoError(self.T(), err)
	require.Len(self.T(), received, 2)
	for _, m := range received {
		assert.True(self.T(), m.Seen, m.Text)
	}

	sent, err := self.store.ListMessagesTo(self.ctx, "alice")
	require.NoError(self.T(), err)
	require.Len(self.T(), sent, 1)
	assert.False(self.T(), sent[0].Seen)
}

func (self *MessagingTestSuite) TestRecentUsesPlaceholderForDeletedSender() {
	require.NoError(self.T(), self.store.CreateUser(self.ctx, &models.User{ID: "carol", Username: "carol"}))
	_, err := self.svc.Send(self.ctx, "carol", "bob", "bye", "")
	require.NoError(self.T(), err)
	_, err = self.svc.Send(self.ctx, "alice", "bob", "hello", "")
	require.NoError(self.T(), err)

	require.NoError(self.T(), self.store.DeleteUser(self.ctx, "carol"))
	self.svc.Summaries = users.NewResolver(self.store, time.Minute, logrus.New())

	recent, err := self.svc.Recent(self.ctx, "bob")
	require.NoError(self.T(), err)
	require.Len(self.T(), recent, 2)
	assert.Equal(self.T(), "hello", recent[0].Text)
	assert.Equal(self.T(), users.Placeholder("carol"), recent[1].From)
}

func TestMessaging(t *testing.T) {
	suite.Run(t, &MessagingTestSuite{})
}
