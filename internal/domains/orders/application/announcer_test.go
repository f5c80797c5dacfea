package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInlineAnnouncer_BothSinksSucceed(t *testing.T) {
	topic := &fakeTopic{}
	bus := &fakeBus{}
	announcer := NewInlineAnnouncer(topic, bus)

	require.NoError(t, announcer.AnnounceCreated(context.Background(), `{"amount":1,"quantity":1}`))
	require.Len(t, topic.published, 1)
	require.Len(t, bus.events, 1)
}

func TestInlineAnnouncer_JoinsBothFailures(t *testing.T) {
	topicErr := errors.New("topic unavailable")
	busErr := errors.New("bus unavailable")
	announcer := NewInlineAnnouncer(&fakeTopic{err: topicErr}, &fakeBus{err: busErr})

	err := announcer.AnnounceCreated(context.Background(), "{}")
	require.ErrorIs(t, err, topicErr)
	require.ErrorIs(t, err, busErr)
}

func TestInlineAnnouncer_BusAttemptedAfterTopicFailure(t *testing.T) {
	bus := &fakeBus{}
	announcer := NewInlineAnnouncer(&fakeTopic{err: errors.New("boom")}, bus)

	err := announcer.AnnounceCreated(context.Background(), "{}")
	require.Error(t, err)
	require.Len(t, bus.events, 1)
}
