package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"vecino/internal/domain"
)

// In-memory repository fakes used across the service tests.

type fakeChannelRepo struct {
	channels map[uuid.UUID]*domain.Channel
	order    []uuid.UUID
	parts    []domain.ChannelParticipant
}

func newFakeChannelRepo() *fakeChannelRepo {
	return &fakeChannelRepo{channels: make(map[uuid.UUID]*domain.Channel)}
}

func (f *fakeChannelRepo) Create(_ context.Context, ch *domain.Channel) error {
	cp := *ch
	f.channels[ch.ID] = &cp
	f.order = append(f.order, ch.ID)
	return nil
}

func (f *fakeChannelRepo) CreateWithParticipants(ctx context.Context, ch *domain.Channel, userIDs []uuid.UUID) error {
	if err := f.Create(ctx, ch); err != nil {
		return err
	}
	for _, userID := range userIDs {
		f.parts = append(f.parts, domain.ChannelParticipant{ChannelID: ch.ID, UserID: userID, JoinedAt: ch.CreatedAt})
	}
	return nil
}

func (f *fakeChannelRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Channel, error) {
	ch, ok := f.channels[id]
	if !ok {
		return nil, nil
	}
	cp := *ch
	return &cp, nil
}

func (f *fakeChannelRepo) GetDefaultChannel(_ context.Context, communityID uuid.UUID) (*domain.Channel, error) {
	for _, id := range f.order {
		ch := f.channels[id]
		if ch.CommunityID == communityID && !ch.IsDirectMessage {
			cp := *ch
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeChannelRepo) Update(_ context.Context, ch *domain.Channel) error {
	if _, ok := f.channels[ch.ID]; !ok {
		return errors.New("channel does not exist")
	}
	cp := *ch
	f.channels[ch.ID] = &cp
	return nil
}

func (f *fakeChannelRepo) ListByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Channel, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []domain.Channel
	for _, id := range f.order {
		if want[id] {
			out = append(out, *f.channels[id])
		}
	}
	return out, nil
}

func (f *fakeChannelRepo) ListIDsByUser(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var out []uuid.UUID
	for _, p := range f.parts {
		if p.UserID == userID {
			out = append(out, p.ChannelID)
		}
	}
	return out, nil
}

func (f *fakeChannelRepo) AddParticipant(_ context.Context, p *domain.ChannelParticipant) error {
	for _, existing := range f.parts {
		if existing.ChannelID == p.ChannelID && existing.UserID == p.UserID {
			return nil
		}
	}
	f.parts = append(f.parts, *p)
	return nil
}

func (f *fakeChannelRepo) GetParticipant(_ context.Context, channelID, userID uuid.UUID) (*domain.ChannelParticipant, error) {
	for _, p := range f.parts {
		if p.ChannelID == channelID && p.UserID == userID {
			cp := p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeChannelRepo) ListParticipants(_ context.Context, channelID uuid.UUID) ([]domain.ChannelParticipant, error) {
	var out []domain.ChannelParticipant
	for _, p := range f.parts {
		if p.ChannelID == channelID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeChannelRepo) participantCount(channelID uuid.UUID) int {
	n := 0
	for _, p := range f.parts {
		if p.ChannelID == channelID {
			n++
		}
	}
	return n
}

type fakeMessageRepo struct {
	messages  []*domain.Message
	usernames map[uuid.UUID]string
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{usernames: make(map[uuid.UUID]string)}
}

func (f *fakeMessageRepo) withSender(msg domain.Message) *domain.Message {
	msg.SenderUsername = f.usernames[msg.SenderID]
	return &msg
}

func (f *fakeMessageRepo) Create(_ context.Context, msg *domain.Message) error {
	cp := *msg
	f.messages = append(f.messages, &cp)
	return nil
}

func (f *fakeMessageRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Message, error) {
	for _, m := range f.messages {
		if m.ID == id {
			return f.withSender(*m), nil
		}
	}
	return nil, nil
}

func (f *fakeMessageRepo) GetInChannel(_ context.Context, id, channelID uuid.UUID) (*domain.Message, error) {
	for _, m := range f.messages {
		if m.ID == id && m.ChannelID == channelID {
			return f.withSender(*m), nil
		}
	}
	return nil, nil
}

func (f *fakeMessageRepo) ListByChannel(_ context.Context, channelID uuid.UUID) ([]domain.Message, error) {
	var out []domain.Message
	for _, m := range f.messages {
		if m.ChannelID == channelID {
			out = append(out, *f.withSender(*m))
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) Update(_ context.Context, msg *domain.Message) error {
	for i, m := range f.messages {
		if m.ID == msg.ID {
			cp := *msg
			f.messages[i] = &cp
			return nil
		}
	}
	return errors.New("message does not exist")
}

func (f *fakeMessageRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, m := range f.messages {
		if m.ID == id {
			f.messages = append(f.messages[:i], f.messages[i+1:]...)
			return nil
		}
	}
	return nil
}

type memberKey struct {
	communityID uuid.UUID
	userID      uuid.UUID
}

type fakeCommunityRepo struct {
	communities map[uuid.UUID]*domain.Community
	members     map[memberKey]*domain.CommunityMember
}

func newFakeCommunityRepo() *fakeCommunityRepo {
	return &fakeCommunityRepo{
		communities: make(map[uuid.UUID]*domain.Community),
		members:     make(map[memberKey]*domain.CommunityMember),
	}
}

func (f *fakeCommunityRepo) Create(_ context.Context, c *domain.Community) error {
	cp := *c
	f.communities[c.ID] = &cp
	return nil
}

func (f *fakeCommunityRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Community, error) {
	c, ok := f.communities[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCommunityRepo) AddMember(_ context.Context, m *domain.CommunityMember) error {
	cp := *m
	f.members[memberKey{m.CommunityID, m.UserID}] = &cp
	return nil
}

func (f *fakeCommunityRepo) GetMember(_ context.Context, communityID, userID uuid.UUID) (*domain.CommunityMember, error) {
	m, ok := f.members[memberKey{communityID, userID}]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

type fakeNotificationRepo struct {
	notifications []domain.Notification
	failWrites    bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{}
}

func (f *fakeNotificationRepo) CreateBatch(_ context.Context, notifications []domain.Notification) error {
	if f.failWrites {
		return errors.New("alert store unavailable")
	}
	f.notifications = append(f.notifications, notifications...)
	return nil
}

func (f *fakeNotificationRepo) UpdateByReference(_ context.Context, referenceID uuid.UUID, content string) error {
	if f.failWrites {
		return errors.New("alert store unavailable")
	}
	for i, n := range f.notifications {
		if n.ReferenceID != nil && *n.ReferenceID == referenceID {
			f.notifications[i].Content = content
		}
	}
	return nil
}

func (f *fakeNotificationRepo) DeleteByReference(_ context.Context, referenceID uuid.UUID) error {
	if f.failWrites {
		return errors.New("alert store unavailable")
	}
	kept := f.notifications[:0]
	for _, n := range f.notifications {
		if n.ReferenceID == nil || *n.ReferenceID != referenceID {
			kept = append(kept, n)
		}
	}
	f.notifications = kept
	return nil
}

func (f *fakeNotificationRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]domain.Notification, error) {
	var out []domain.Notification
	for _, n := range f.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Notification, error) {
	for _, n := range f.notifications {
		if n.ID == id {
			cp := n
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeNotificationRepo) MarkRead(_ context.Context, id uuid.UUID) error {
	for i, n := range f.notifications {
		if n.ID == id {
			f.notifications[i].IsRead = true
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

// fakeBroadcaster records the events the messaging service pushes out.
type fakeBroadcaster struct {
	created []domain.Message
	edited  []domain.Message
	deleted [][2]uuid.UUID // channelID, messageID
}

func (f *fakeBroadcaster) MessageCreated(msg *domain.Message) {
	f.created = append(f.created, *msg)
}

func (f *fakeBroadcaster) MessageEdited(msg *domain.Message) {
	f.edited = append(f.edited, *msg)
}

func (f *fakeBroadcaster) MessageDeleted(channelID, messageID uuid.UUID) {
	f.deleted = append(f.deleted, [2]uuid.UUID{channelID, messageID})
}
