package tui

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/require"

	"github.com/parleychat/parley/internal/chat"
)

type capturedPrompt struct {
	prompts []string
}

func (c *capturedPrompt) PublishPrompt(text string) error {
	c.prompts = append(c.prompts, text)
	return nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	a := NewApp(testConfig(), nil)
	a.Init()
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return a
}

func drainStream(t *testing.T, a *App) {
	t.Helper()
	for i := 0; i < 10000 && a.IsStreaming(); i++ {
		a.handleStreamTick(streamTickMsg{Handle: a.streamHandle})
	}
	require.False(t, a.IsStreaming(), "stream did not finish")
}

func TestSubmitAppendsUserMessage(t *testing.T) {
	pub := &capturedPrompt{}
	a := NewApp(testConfig(), pub)
	a.Init()
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	a.composer.textarea.SetValue("hi")
	cmd := a.submit()
	require.NotNil(t, cmd)
	cmd() // runs the publish

	msgs := a.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, chat.RoleUser, msgs[0].Role)
	require.Equal(t, "hi", msgs[0].Content)
	require.Equal(t, []string{"hi"}, pub.prompts)
	require.Empty(t, a.composer.Value(), "composer clears on submit")
}

func TestSubmitWhitespaceIsNoOp(t *testing.T) {
	a := newTestApp(t)

	a.composer.textarea.SetValue("   \n\t ")
	require.Nil(t, a.submit())
	require.Empty(t, a.Messages())
}

func TestReplyStreamsRuneByRune(t *testing.T) {
	a := newTestApp(t)

	a.startStream("hey")
	msgs := a.Messages()
	require.Len(t, msgs, 1)
	require.Equal(t, chat.RoleAgent, msgs[0].Role)
	require.Equal(t, "", msgs[0].Content, "agent message starts empty")
	require.True(t, a.IsStreaming())

	a.handleStreamTick(streamTickMsg{Handle: a.streamHandle})
	require.Equal(t, "h", a.Messages()[0].Content)
	a.handleStreamTick(streamTickMsg{Handle: a.streamHandle})
	require.Equal(t, "he", a.Messages()[0].Content)
	a.handleStreamTick(streamTickMsg{Handle: a.streamHandle})
	require.Equal(t, "hey", a.Messages()[0].Content)
	require.False(t, a.IsStreaming())
}

func TestReplyWhileStreamingIsDropped(t *testing.T) {
	a := newTestApp(t)

	a.startStream("first reply")
	a.handleStreamTick(streamTickMsg{Handle: a.streamHandle})
	firstHandle := a.streamHandle

	a.startStream("second reply")
	require.Equal(t, firstHandle, a.streamHandle, "active stream keeps its handle")

	drainStream(t, a)
	msgs := a.Messages()
	// The second reply's placeholder exists but stays empty forever.
	require.Len(t, msgs, 2)
	require.Equal(t, "first reply", msgs[0].Content)
	require.Equal(t, "", msgs[1].Content)
}

func TestQuitCancelsActiveStream(t *testing.T) {
	a := newTestApp(t)

	a.startStream("a long reply")
	a.handleStreamTick(streamTickMsg{Handle: a.streamHandle})
	handle := a.streamHandle

	_, cmd := a.handleKeyPress(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	require.True(t, a.quitting)

	// A timer already in flight fires after teardown; content must stay
	// frozen.
	a.handleStreamTick(streamTickMsg{Handle: handle})
	require.Equal(t, "a", a.Messages()[0].Content)
}

func TestGeometryFlowsIntoLayout(t *testing.T) {
	a := newTestApp(t)
	require.Equal(t, 40-HeaderHeight-StatusHeight-InputHeight, a.messages.Metrics().ViewExtent)

	a.Update(tea.WindowSizeMsg{Width: 120, Height: 25})
	require.Equal(t, 25-HeaderHeight-StatusHeight-InputHeight, a.messages.Metrics().ViewExtent)

	// Reapplying the same geometry is a no-op on the metrics.
	before := a.messages.Metrics()
	a.Update(tea.WindowSizeMsg{Width: 120, Height: 25})
	require.Equal(t, before, a.messages.Metrics())
}

func TestShrinkWhilePinnedStaysAtBottom(t *testing.T) {
	a := newTestApp(t)

	// Enough content to overflow the viewport.
	for i := 0; i < 30; i++ {
		a.store.Append(chat.RoleUser, "line one\nline two\nline three")
	}
	a.refreshMessages()
	a.ctrl.Reconcile(true)

	m := a.messages.Metrics()
	require.Greater(t, m.ContentExtent, m.ViewExtent)
	require.LessOrEqual(t, m.DistanceFromBottom(), 0, "pinned view sits on the bottom")

	a.Update(tea.WindowSizeMsg{Width: 120, Height: 24})
	m = a.messages.Metrics()
	require.LessOrEqual(t, m.DistanceFromBottom(), 0, "shrink keeps the bottom visible")
}

func TestSidebarToggleRelayout(t *testing.T) {
	a := newTestApp(t)
	require.Greater(t, a.layout.Sidebar.Dx(), 0)
	wide := a.layout.Messages.Dx()

	a.handleKeyPress(tea.KeyPressMsg{Code: 'b', Mod: tea.ModCtrl})
	require.Equal(t, 0, a.layout.Sidebar.Dx())
	require.Greater(t, a.layout.Messages.Dx(), wide)

	a.handleKeyPress(tea.KeyPressMsg{Code: 'b', Mod: tea.ModCtrl})
	require.Greater(t, a.layout.Sidebar.Dx(), 0)
}

func TestGestureSuppressesAutoPin(t *testing.T) {
	a := newTestApp(t)

	for i := 0; i < 30; i++ {
		a.store.Append(chat.RoleUser, "one\ntwo\nthree")
	}
	a.refreshMessages()
	a.ctrl.Reconcile(false)

	// Scroll away from the bottom, then hold a gesture.
	a.messages.SetScrollPosition(a.messages.Metrics().ContentExtent - a.messages.Metrics().ViewExtent - 1)
	a.tracker.Press()

	pos := a.messages.Metrics().ScrollPosition
	a.ctrl.Reconcile(false)
	require.Equal(t, pos, a.messages.Metrics().ScrollPosition, "gesture blocks the jump")

	a.tracker.Release()
	a.ctrl.Reconcile(false)
	m := a.messages.Metrics()
	require.LessOrEqual(t, m.DistanceFromBottom(), 0, "release lets the pin catch up")
}

func TestDeliverReplyReachesUpdateLoop(t *testing.T) {
	a := newTestApp(t)

	a.DeliverReply("hello from the bus")
	msg := a.waitForReply()()
	reply, ok := msg.(replyMsg)
	require.True(t, ok)
	require.Equal(t, "hello from the bus", reply.Text)
}
