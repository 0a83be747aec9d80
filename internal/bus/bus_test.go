package bus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPromptRoundTrip(t *testing.T) {
	b, err := Start()
	require.NoError(t, err)
	defer func() { require.NoError(t, b.Shutdown()) }()

	got := make(chan string, 1)
	sub, err := b.SubscribePrompt(func(text string) { got <- text })
	require.NoError(t, err)
	defer sub.Unsubscribe() //nolint:errcheck

	require.NoError(t, b.PublishPrompt("hi there"))

	select {
	case text := <-got:
		require.Equal(t, "hi there", text)
	case <-time.After(2 * time.Second):
		t.Fatal("prompt not delivered")
	}
}

func TestReplyRoundTrip(t *testing.T) {
	b, err := Start()
	require.NoError(t, err)
	defer func() { require.NoError(t, b.Shutdown()) }()

	got := make(chan string, 1)
	sub, err := b.SubscribeReply(func(text string) { got <- text })
	require.NoError(t, err)
	defer sub.Unsubscribe() //nolint:errcheck

	require.NoError(t, b.PublishReply("hello back"))

	select {
	case text := <-got:
		require.Equal(t, "hello back", text)
	case <-time.After(2 * time.Second):
		t.Fatal("reply not delivered")
	}
}

func TestShutdownIsCleanWithoutTraffic(t *testing.T) {
	b, err := Start()
	require.NoError(t, err)
	require.NoError(t, b.Shutdown())
}
