package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "vedo/pkg/domain"
)

func TestEmit_StampsTimestampAndPersists(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	creatorID := id.CreatorID(uuid.New())
	pub.Emit(context.Background(), NewEntry(ActionRegistration, "new creator registration", id.UserID{}, creatorID, nil))

	entries, err := store.ListByCreator(context.Background(), creatorID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.False(t, entries[0].CreatedAt.IsZero())
	assert.Equal(t, ActionRegistration, entries[0].Action)
}

func TestEmit_AsyncDrainsOnClose(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store, WithAsyncBuffer(16))

	creatorID := id.CreatorID(uuid.New())
	for range 5 {
		pub.Emit(context.Background(), NewEntry(ActionApproval, "approved", id.UserID{}, creatorID, nil))
	}
	pub.Close()

	entries, err := store.ListByCreator(context.Background(), creatorID)
	require.NoError(t, err)
	assert.Len(t, entries, 5)
}

type failingSink struct {
	mu    sync.Mutex
	calls int
}

func (s *failingSink) Publish(context.Context, *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return errors.New("broker unreachable")
}

func TestEmit_SinkFailureDoesNotBlockStore(t *testing.T) {
	store := NewInMemoryStore()
	sink := &failingSink{}
	pub := NewPublisher(store, WithSink(sink))

	creatorID := id.CreatorID(uuid.New())
	pub.Emit(context.Background(), NewEntry(ActionRejection, "rejected", id.UserID{}, creatorID, map[string]string{"rejection_reason": "incomplete"}))

	entries, err := store.ListByCreator(context.Background(), creatorID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "incomplete", entries[0].Metadata["rejection_reason"])
	assert.Equal(t, 1, sink.calls)
}

func TestListRecent_NewestFirst(t *testing.T) {
	store := NewInMemoryStore()
	pub := NewPublisher(store)

	first := NewEntry(ActionRegistration, "first", id.UserID{}, id.CreatorID(uuid.New()), nil)
	second := NewEntry(ActionApproval, "second", id.UserID{}, id.CreatorID(uuid.New()), nil)
	pub.Emit(context.Background(), first)
	pub.Emit(context.Background(), second)

	recent, err := store.ListRecent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "second", recent[0].Description)
	assert.Equal(t, "first", recent[1].Description)
}
