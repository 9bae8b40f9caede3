package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"vecino/internal/domain"
	"vecino/pkg/preview"
)

type messageFixture struct {
	svc         *MessageService
	channelRepo *fakeChannelRepo
	messageRepo *fakeMessageRepo
	notifRepo   *fakeNotificationRepo
	broadcaster *fakeBroadcaster
	channelID   uuid.UUID
	alice       uuid.UUID
	bob         uuid.UUID
}

// newMessageFixture sets up a channel shared by alice and bob, with alice's
// username known to the message store for the sender join.
func newMessageFixture(t *testing.T) *messageFixture {
	t.Helper()
	channelRepo := newFakeChannelRepo()
	messageRepo := newFakeMessageRepo()
	notifRepo := newFakeNotificationRepo()
	access := NewAccess(channelRepo, messageRepo, newFakeCommunityRepo())

	f := &messageFixture{
		channelRepo: channelRepo,
		messageRepo: messageRepo,
		notifRepo:   notifRepo,
		broadcaster: &fakeBroadcaster{},
		channelID:   uuid.New(),
		alice:       uuid.New(),
		bob:         uuid.New(),
	}
	f.svc = NewMessageService(messageRepo, channelRepo, notifRepo, access)
	f.svc.SetBroadcaster(f.broadcaster)

	name := "General"
	require.NoError(t, channelRepo.Create(context.Background(), &domain.Channel{
		ID: f.channelID, CommunityID: uuid.New(), Name: &name, CreatedAt: time.Now(),
	}))
	for _, userID := range []uuid.UUID{f.alice, f.bob} {
		require.NoError(t, channelRepo.AddParticipant(context.Background(), &domain.ChannelParticipant{
			ChannelID: f.channelID, UserID: userID, JoinedAt: time.Now(),
		}))
	}
	messageRepo.usernames[f.alice] = "alice"
	messageRepo.usernames[f.bob] = "bob"
	return f
}

func TestSend(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	msg, err := f.svc.Send(ctx, f.channelID, f.alice, "Hello")
	require.NoError(t, err)
	require.Equal(t, f.alice, msg.SenderID)
	require.Equal(t, "Hello", msg.Content)
	require.False(t, msg.IsEdited)
	require.Equal(t, "alice", msg.SenderUsername)

	// Bob got exactly one alert referencing the message; alice got none.
	bobAlerts, err := f.notifRepo.ListByUser(ctx, f.bob)
	require.NoError(t, err)
	require.Len(t, bobAlerts, 1)
	require.Equal(t, "New message from alice", bobAlerts[0].Title)
	require.Equal(t, "Hello", bobAlerts[0].Content)
	require.False(t, bobAlerts[0].IsRead)
	require.NotNil(t, bobAlerts[0].ReferenceID)
	require.Equal(t, msg.ID, *bobAlerts[0].ReferenceID)

	aliceAlerts, err := f.notifRepo.ListByUser(ctx, f.alice)
	require.NoError(t, err)
	require.Empty(t, aliceAlerts)

	// One created event went out on the channel.
	require.Len(t, f.broadcaster.created, 1)
	require.Equal(t, msg.ID, f.broadcaster.created[0].ID)
}

func TestSend_AccessDenied(t *testing.T) {
	f := newMessageFixture(t)

	_, err := f.svc.Send(context.Background(), f.channelID, uuid.New(), "Hello")
	require.ErrorIs(t, err, ErrAccessDenied)
	require.Empty(t, f.broadcaster.created)
	require.Empty(t, f.messageRepo.messages)
}

func TestSend_LongContentTruncatedInAlert(t *testing.T) {
	f := newMessageFixture(t)
	content := strings.Repeat("x", preview.Limit+1)

	msg, err := f.svc.Send(context.Background(), f.channelID, f.alice, content)
	require.NoError(t, err)
	// The message itself keeps the full content.
	require.Equal(t, content, msg.Content)

	alerts, err := f.notifRepo.ListByUser(context.Background(), f.bob)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	require.Equal(t, strings.Repeat("x", preview.Limit)+preview.Ellipsis, alerts[0].Content)
}

func TestSend_AlertFailureIsSwallowed(t *testing.T) {
	f := newMessageFixture(t)
	f.notifRepo.failWrites = true

	msg, err := f.svc.Send(context.Background(), f.channelID, f.alice, "Hello")
	require.NoError(t, err)
	require.NotNil(t, msg)
	// Broadcast still happens; the write itself succeeded.
	require.Len(t, f.broadcaster.created, 1)
}

func TestEdit(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	msg, err := f.svc.Send(ctx, f.channelID, f.alice, "Hello")
	require.NoError(t, err)

	updated, err := f.svc.Edit(ctx, msg.ID, f.channelID, f.alice, "Hello!")
	require.NoError(t, err)
	require.Equal(t, "Hello!", updated.Content)
	require.True(t, updated.IsEdited)
	require.NotNil(t, updated.UpdatedAt)

	// Bob's alert body follows the edit.
	alerts, err := f.notifRepo.ListByUser(ctx, f.bob)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	require.Equal(t, "Hello!", alerts[0].Content)

	require.Len(t, f.broadcaster.edited, 1)
	require.Equal(t, msg.ID, f.broadcaster.edited[0].ID)
}

func TestEdit_OnlySender(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	msg, err := f.svc.Send(ctx, f.channelID, f.alice, "Hello")
	require.NoError(t, err)

	_, err = f.svc.Edit(ctx, msg.ID, f.channelID, f.bob, "hijacked")
	require.ErrorIs(t, err, ErrNotMessageOwner)

	_, err = f.svc.Edit(ctx, uuid.New(), f.channelID, f.alice, "nope")
	require.ErrorIs(t, err, ErrMessageNotFound)
}

func TestDelete(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	msg, err := f.svc.Send(ctx, f.channelID, f.alice, "Hello")
	require.NoError(t, err)

	require.ErrorIs(t, f.svc.Delete(ctx, msg.ID, f.channelID, f.bob), ErrNotMessageOwner)

	require.NoError(t, f.svc.Delete(ctx, msg.ID, f.channelID, f.alice))

	// Message and its alert are both gone.
	got, err := f.messageRepo.GetByID(ctx, msg.ID)
	require.NoError(t, err)
	require.Nil(t, got)
	alerts, err := f.notifRepo.ListByUser(ctx, f.bob)
	require.NoError(t, err)
	require.Empty(t, alerts)

	require.Len(t, f.broadcaster.deleted, 1)
	require.Equal(t, [2]uuid.UUID{f.channelID, msg.ID}, f.broadcaster.deleted[0])
}

func TestHistory(t *testing.T) {
	f := newMessageFixture(t)
	ctx := context.Background()

	first, err := f.svc.Send(ctx, f.channelID, f.alice, "first")
	require.NoError(t, err)
	second, err := f.svc.Send(ctx, f.channelID, f.bob, "second")
	require.NoError(t, err)

	messages, err := f.svc.History(ctx, f.channelID, f.bob)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	require.Equal(t, first.ID, messages[0].ID)
	require.Equal(t, second.ID, messages[1].ID)
	require.Equal(t, "alice", messages[0].SenderUsername)
	require.Equal(t, "bob", messages[1].SenderUsername)

	_, err = f.svc.History(ctx, f.channelID, uuid.New())
	require.ErrorIs(t, err, ErrAccessDenied)
}
