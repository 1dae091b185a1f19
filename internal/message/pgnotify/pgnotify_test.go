package pgnotify

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/haggle/internal/message"
)

func TestEncodeDecode(t *testing.T) {
	small := &message.Message{
		ID:            uuid.New(),
		NegotiationID: uuid.New(),
		SenderID:      uuid.New(),
		ReceiverID:    uuid.New(),
		Content:       "would you do $40?",
		CreatedAt:     time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC),
	}

	large := *small
	large.ID = uuid.New()
	large.Content = strings.Repeat("x", maxPayload)

	t.Run("Inline", func(t *testing.T) {
		payload, err := encode(small)
		require.NoError(t, err)
		assert.Contains(t, payload, `"message"`)

		b := &Broker{}

		got, err := b.decode(context.Background(), payload)
		require.NoError(t, err)
		assert.Equal(t, small.ID, got.ID)
		assert.Equal(t, small.Content, got.Content)
		assert.True(t, small.CreatedAt.Equal(got.CreatedAt))
	})

	t.Run("ByReference", func(t *testing.T) {
		payload, err := encode(&large)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(payload), maxPayload)
		assert.Contains(t, payload, `"ref"`)

		ctrl := gomock.NewController(t)
		loader := message.NewMockRepository(ctrl)
		loader.EXPECT().GetMessage(gomock.Any(), large.ID).Return(&large, nil)

		b := &Broker{loader: loader}

		got, err := b.decode(context.Background(), payload)
		require.NoError(t, err)
		assert.Equal(t, large.ID, got.ID)
	})

	t.Run("Garbage", func(t *testing.T) {
		b := &Broker{}

		_, err := b.decode(context.Background(), "{}")
		assert.Error(t, err)

		_, err = b.decode(context.Background(), "not json")
		assert.Error(t, err)
	})
}

func TestBroker_FeedsEndWhileListenerDown(t *testing.T) {
	b := New(nil, "", "haggle_messages", nil)
	neg := uuid.New()

	t.Run("NotYetListening", func(t *testing.T) {
		sub := b.Subscribe(neg)

		_, open := <-sub.C()
		assert.False(t, open)
		assert.ErrorIs(t, sub.Err(), message.ErrLagged)
	})

	t.Run("ListenerDrops", func(t *testing.T) {
		b.live.Store(true)

		sub := b.Subscribe(neg)
		m := &message.Message{ID: uuid.New(), NegotiationID: neg}
		require.NoError(t, b.hub.Publish(context.Background(), m))

		b.interrupt()

		got, open := <-sub.C()
		require.True(t, open)
		assert.Equal(t, m.ID, got.ID)

		_, open = <-sub.C()
		assert.False(t, open)
		assert.ErrorIs(t, sub.Err(), message.ErrLagged)

		late := b.Subscribe(neg)
		_, open = <-late.C()
		assert.False(t, open)
	})
}
