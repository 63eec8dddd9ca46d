package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"Gather_Hub/internal/model"
	"Gather_Hub/internal/repository/mysql"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memSubStore 复刻存储层的冲突语义：同一 (user, gathering) 或同一 (user, slot) 拒绝
type memSubStore struct {
	subs map[uint64][]model.Subscription
}

func newMemSubStore() *memSubStore {
	return &memSubStore{subs: map[uint64][]model.Subscription{}}
}

func (m *memSubStore) Subscribe(ctx context.Context, userID uint64, g *model.Gathering) error {
	slot := g.HourStart()
	for _, s := range m.subs[userID] {
		if s.GatheringID == g.ID || s.Slot.Equal(slot) {
			return mysql.ErrSlotConflict
		}
	}
	m.subs[userID] = append(m.subs[userID], model.Subscription{
		UserID:      userID,
		GatheringID: g.ID,
		Slot:        slot,
	})
	return nil
}

func (m *memSubStore) Unsubscribe(ctx context.Context, userID, gatheringID uint64) (bool, error) {
	list := m.subs[userID]
	for i, s := range list {
		if s.GatheringID == gatheringID {
			m.subs[userID] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memSubStore) ListGatheringsForUser(ctx context.Context, userID uint64) ([]model.Gathering, error) {
	var out []model.Gathering
	for _, s := range m.subs[userID] {
		out = append(out, model.Gathering{ID: s.GatheringID, Date: s.Slot})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

type mapGatherings map[uint64]model.Gathering

func (m mapGatherings) FindByID(id uint64) (*model.Gathering, error) {
	g, ok := m[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &g, nil
}

type mapUsers map[uint64]model.User

func (m mapUsers) FindByID(id uint64) (*model.User, error) {
	u, ok := m[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

type sentMail struct {
	toName, toEmail, subject, body string
}

type recordingNotifier struct {
	sent    []sentMail
	sendErr error
}

func (n *recordingNotifier) Send(toName, toEmail, subject, body string) error {
	n.sent = append(n.sent, sentMail{toName, toEmail, subject, body})
	return n.sendErr
}

type subFixture struct {
	svc      *SubscriptionService
	store    *memSubStore
	notifier *recordingNotifier
}

// 明天 18:00 的活动、同一时段的另一场、晚一小时的一场、昨天的一场
var (
	tomorrow18 = time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	organizer  = model.User{ID: 1, Name: "Ana", Email: "ana@example.com"}
	attendee   = model.User{ID: 2, Name: "Bruno", Email: "bruno@example.com"}
)

func newSubFixture() *subFixture {
	store := newMemSubStore()
	notifier := &recordingNotifier{}
	gatherings := mapGatherings{
		10: {ID: 10, Title: "Go Meetup", Date: tomorrow18, ProviderID: organizer.ID},
		11: {ID: 11, Title: "Docker Night", Date: tomorrow18.Add(30 * time.Minute), ProviderID: 3},
		12: {ID: 12, Title: "Rust Intro", Date: tomorrow18.Add(time.Hour), ProviderID: 3},
		13: {ID: 13, Title: "Old One", Date: testNow.Add(-24 * time.Hour), ProviderID: 3},
	}
	users := mapUsers{organizer.ID: organizer, attendee.ID: attendee, 3: {ID: 3, Name: "Caio", Email: "caio@example.com"}}
	svc := NewSubscriptionService(store, gatherings, users, notifier, fixedClock{now: testNow})
	return &subFixture{svc: svc, store: store, notifier: notifier}
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("success notifies organizer once", func(t *testing.T) {
		f := newSubFixture()
		g, err := f.svc.Subscribe(ctx, attendee.ID, 10)
		require.NoError(t, err)
		assert.Equal(t, uint64(10), g.ID)

		require.Len(t, f.notifier.sent, 1)
		assert.Equal(t, organizer.Email, f.notifier.sent[0].toEmail)
		assert.Equal(t, organizer.Name, f.notifier.sent[0].toName)
		assert.Contains(t, f.notifier.sent[0].body, attendee.Name)
	})

	t.Run("gathering absent", func(t *testing.T) {
		f := newSubFixture()
		_, err := f.svc.Subscribe(ctx, attendee.ID, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("organizer cannot subscribe to own gathering", func(t *testing.T) {
		f := newSubFixture()
		_, err := f.svc.Subscribe(ctx, organizer.ID, 10)
		assert.ErrorIs(t, err, ErrNotOrganizer)
		assert.Empty(t, f.notifier.sent)
	})

	t.Run("already held gathering", func(t *testing.T) {
		f := newSubFixture()
		_, err := f.svc.Subscribe(ctx, attendee.ID, 13)
		assert.ErrorIs(t, err, ErrPastDate)
	})

	t.Run("same day and hour conflicts", func(t *testing.T) {
		f := newSubFixture()
		_, err := f.svc.Subscribe(ctx, attendee.ID, 10)
		require.NoError(t, err)

		// 18:30 和 18:00 取整到同一小时
		_, err = f.svc.Subscribe(ctx, attendee.ID, 11)
		assert.ErrorIs(t, err, ErrSlotTaken)

		// 19:00 不冲突
		_, err = f.svc.Subscribe(ctx, attendee.ID, 12)
		assert.NoError(t, err)
	})

	t.Run("duplicate pair is a conflict, never a second row", func(t *testing.T) {
		f := newSubFixture()
		_, err := f.svc.Subscribe(ctx, attendee.ID, 10)
		require.NoError(t, err)

		_, err = f.svc.Subscribe(ctx, attendee.ID, 10)
		assert.ErrorIs(t, err, ErrSlotTaken)
		assert.Len(t, f.store.subs[attendee.ID], 1)
	})

	t.Run("notifier failure does not undo the subscription", func(t *testing.T) {
		f := newSubFixture()
		f.notifier.sendErr = errors.New("smtp down")

		_, err := f.svc.Subscribe(ctx, attendee.ID, 10)
		require.NoError(t, err)
		assert.Len(t, f.store.subs[attendee.ID], 1)
	})
}

func TestSubscriptionInvariant(t *testing.T) {
	// 任意成功订阅序列之后，订阅集中不存在两场同天同小时的活动
	ctx := context.Background()
	f := newSubFixture()

	for _, id := range []uint64{10, 11, 12, 10, 11, 12} {
		_, _ = f.svc.Subscribe(ctx, attendee.ID, id)
	}

	seen := map[time.Time]bool{}
	for _, s := range f.store.subs[attendee.ID] {
		assert.False(t, seen[s.Slot], "two subscriptions share slot %v", s.Slot)
		seen[s.Slot] = true
	}
}

func TestUnsubscribe(t *testing.T) {
	ctx := context.Background()

	t.Run("idempotent delete", func(t *testing.T) {
		f := newSubFixture()
		_, err := f.svc.Subscribe(ctx, attendee.ID, 10)
		require.NoError(t, err)

		_, err = f.svc.Unsubscribe(ctx, attendee.ID, 10)
		require.NoError(t, err)
		assert.Empty(t, f.store.subs[attendee.ID])

		// 关系已不存在，再退订一次也成功
		_, err = f.svc.Unsubscribe(ctx, attendee.ID, 10)
		assert.NoError(t, err)
	})

	t.Run("gathering absent", func(t *testing.T) {
		f := newSubFixture()
		_, err := f.svc.Unsubscribe(ctx, attendee.ID, 999)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("organizer excluded", func(t *testing.T) {
		f := newSubFixture()
		_, err := f.svc.Unsubscribe(ctx, organizer.ID, 10)
		assert.ErrorIs(t, err, ErrNotOrganizer)
	})
}

func TestListForUser(t *testing.T) {
	ctx := context.Background()
	f := newSubFixture()

	_, err := f.svc.Subscribe(ctx, attendee.ID, 12)
	require.NoError(t, err)
	_, err = f.svc.Subscribe(ctx, attendee.ID, 10)
	require.NoError(t, err)

	list, err := f.svc.ListForUser(ctx, attendee.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.True(t, list[0].Date.Before(list[1].Date))
}
