package tui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/parleychat/parley/internal/anchor"
	"github.com/parleychat/parley/internal/chat"
	"github.com/parleychat/parley/internal/config"
	"github.com/parleychat/parley/internal/geometry"
	"github.com/parleychat/parley/internal/gesture"
	"github.com/parleychat/parley/internal/logger"
	"github.com/parleychat/parley/internal/stream"
	"github.com/parleychat/parley/internal/viewsync"
)

// PromptPublisher hands submitted prompts to the responder side of the bus.
type PromptPublisher interface {
	PublishPrompt(text string) error
}

// defaultHistory fills the sidebar. The list is display-only for now; slug
// ids come from the titles.
var defaultHistory = []string{
	"Getting started with parley",
	"Terminal resize edge cases",
	"Streaming replies design",
}

// App is the main Bubbletea model. The Update loop is the single event
// queue: geometry reports, key and mouse input, stream ticks, and reply
// delivery all pass through it one at a time.
type App struct {
	header   *Header
	messages *MessageList
	composer *Composer
	sidebar  *Sidebar
	status   *StatusBar

	probe   *geometry.FeedProbe
	tracker *gesture.Tracker
	ctrl    *viewsync.Controller
	store   *chat.Store
	engine  *stream.Engine

	publisher PromptPublisher
	cfg       *config.Config

	layout         Layout
	layoutDirty    bool
	width          int
	geom           geometry.Geometry
	sidebarVisible bool

	streamingID  string
	streamHandle stream.Handle

	quitting  bool
	replyChan chan string
}

// NewApp wires the chat surface together. pub may be nil, in which case
// submitted prompts go nowhere (useful in tests that drive replies
// directly).
func NewApp(cfg *config.Config, pub PromptPublisher) *App {
	a := &App{
		header:         NewHeader("parley"),
		messages:       NewMessageList(),
		composer:       NewComposer(),
		sidebar:        NewSidebar(defaultHistory),
		status:         NewStatusBar(),
		probe:          geometry.NewFeedProbe(geometry.Geometry{}),
		tracker:        gesture.NewTracker(),
		store:          chat.NewStore(),
		publisher:      pub,
		cfg:            cfg,
		sidebarVisible: cfg.SidebarVisible,
		layoutDirty:    true,
		replyChan:      make(chan string, 16),
	}

	anc := anchor.New(cfg.PinThreshold, a.tracker)
	a.ctrl = viewsync.New(a.probe, a, anc, a.messages, time.Duration(cfg.FocusSettleMs)*time.Millisecond)
	a.engine = stream.New(a.store, func() {
		a.refreshMessages()
		a.ctrl.Reconcile(false)
	})

	return a
}

// Init starts the geometry subscription and focuses the composer. The
// settle timer covers geometry reports that arrive while the platform is
// still resizing around the newly focused input.
func (a *App) Init() tea.Cmd {
	a.ctrl.Start()
	return tea.Batch(
		a.composer.Focus(),
		a.focusSettle(),
		a.waitForReply(),
	)
}

// Apply moves the layout to the reported visible area, height and offset in
// one step. This is the viewsync panel contract.
func (a *App) Apply(g geometry.Geometry) {
	a.geom = g
	a.applyLayout()
}

// DeliverReply feeds a reply from the bus into the update loop. Safe to
// call from subscription goroutines; a full channel drops the reply.
func (a *App) DeliverReply(text string) {
	select {
	case a.replyChan <- text:
	default:
		logger.Warn("reply channel full, reply dropped")
	}
}

// Update handles incoming messages and updates the model state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return a.handleKeyPress(msg)

	case tea.PasteMsg:
		return a, a.composer.Update(msg)

	case tea.MouseClickMsg:
		return a.handleMouseClick(msg)

	case tea.MouseReleaseMsg:
		a.tracker.Release()
		return a, nil

	case tea.MouseWheelMsg:
		return a.handleMouseWheel(msg)

	case tea.BlurMsg:
		// Terminal focus loss cancels any in-flight gesture; a release we
		// never see must not suppress pinning forever.
		a.tracker.CancelAll()
		return a, nil

	case tea.WindowSizeMsg:
		a.width = msg.Width
		// The probe fans the report out to the sync controller, which
		// applies the layout and reconciles the scroll position.
		a.probe.Set(geometry.Geometry{VisibleHeight: msg.Height})
		return a, nil

	case replyMsg:
		return a, a.startStream(msg.Text)

	case streamTickMsg:
		return a, a.handleStreamTick(msg)

	case focusSettledMsg:
		a.ctrl.Reconcile(true)
		return a, nil
	}

	return a, a.composer.Update(msg)
}

// handleKeyPress routes keyboard input: app-level chords first, then
// viewport scrolling, then the composer.
func (a *App) handleKeyPress(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		a.engine.Cancel(a.streamHandle)
		a.quitting = true
		return a, tea.Quit

	case "ctrl+b":
		a.sidebarVisible = !a.sidebarVisible
		a.applyLayout()
		return a, nil

	case "enter":
		return a, a.submit()

	case "alt+enter":
		a.composer.InsertNewline()
		return a, nil

	case "pgup", "pgdown", "home", "end":
		// Scrolling off the bottom moves the metrics past the pin
		// threshold, which is all "unpinning" means here.
		return a, a.messages.Update(msg)
	}

	return a, a.composer.Update(msg)
}

// handleMouseClick tracks the gesture and moves focus to the clicked region.
func (a *App) handleMouseClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()
	if mouse.Button != tea.MouseLeft {
		return a, nil
	}

	a.tracker.Press()

	if a.composer.IsInputArea(mouse.X, mouse.Y) && !a.composer.IsFocused() {
		cmd := a.composer.Focus()
		// Focus can trigger a platform resize; schedule the settled
		// forced reconcile just like startup focus.
		return a, tea.Batch(cmd, a.focusSettle())
	}

	if a.messages.IsViewportArea(mouse.X, mouse.Y) {
		a.composer.Blur()
	}

	return a, nil
}

// handleMouseWheel scrolls the message viewport under the cursor.
func (a *App) handleMouseWheel(msg tea.MouseWheelMsg) (tea.Model, tea.Cmd) {
	mouse := msg.Mouse()

	const scrollLines = 3

	var lines int
	switch mouse.Button {
	case tea.MouseWheelUp:
		lines = -scrollLines
	case tea.MouseWheelDown:
		lines = scrollLines
	default:
		return a, nil
	}

	if a.messages.IsViewportArea(mouse.X, mouse.Y) {
		a.messages.ScrollBy(lines)
	}

	return a, nil
}

// submit appends the composed text as a user message and hands it to the
// responder. Whitespace-only input is silently ignored.
func (a *App) submit() tea.Cmd {
	text := a.composer.Value()
	if strings.TrimSpace(text) == "" {
		return nil
	}

	a.store.Append(chat.RoleUser, text)
	a.composer.Reset()
	a.refreshMessages()
	a.ctrl.Reconcile(false)

	if a.publisher == nil {
		return nil
	}
	return func() tea.Msg {
		if err := a.publisher.PublishPrompt(text); err != nil {
			logger.Error("failed to publish prompt: %v", err)
		}
		return nil
	}
}

// startStream creates the empty agent message and begins revealing the
// reply. A reply that arrives while another stream is active is dropped;
// the active stream keeps going.
func (a *App) startStream(text string) tea.Cmd {
	id := a.store.Append(chat.RoleAgent, "")

	interval := time.Duration(a.cfg.TickIntervalMs) * time.Millisecond
	handle, err := a.engine.Start(id, text, interval)
	if err != nil {
		logger.Warn("reply dropped, stream already active: %v", err)
		a.refreshMessages()
		return a.waitForReply()
	}

	a.streamingID = id
	a.streamHandle = handle
	a.status.SetStreaming(true)
	a.refreshMessages()
	a.ctrl.Reconcile(false)

	return tea.Batch(a.scheduleTick(handle), a.waitForReply())
}

// handleStreamTick reveals the next rune and reschedules. A stale tick
// lands in a no-op inside the engine.
func (a *App) handleStreamTick(msg streamTickMsg) tea.Cmd {
	more := a.engine.Tick(msg.Handle)
	if more {
		return a.scheduleTick(msg.Handle)
	}

	if msg.Handle == a.streamHandle {
		a.streamingID = ""
		a.status.SetStreaming(false)
		// Re-render the finished message through the markdown pipeline.
		a.refreshMessages()
		a.ctrl.Reconcile(false)
	}
	return nil
}

// scheduleTick arms the timer for the next stream tick.
func (a *App) scheduleTick(h stream.Handle) tea.Cmd {
	return tea.Tick(a.engine.Interval(), func(time.Time) tea.Msg {
		return streamTickMsg{Handle: h}
	})
}

// focusSettle schedules the forced reconcile for after the post-focus
// resize has settled.
func (a *App) focusSettle() tea.Cmd {
	return tea.Tick(a.ctrl.SettleDelay(), func(time.Time) tea.Msg {
		return focusSettledMsg{}
	})
}

// waitForReply blocks on the reply channel and converts the next reply to a
// message. It reschedules itself from the reply handler.
func (a *App) waitForReply() tea.Cmd {
	return func() tea.Msg {
		text, ok := <-a.replyChan
		if !ok {
			return nil
		}
		return replyMsg{Text: text}
	}
}

// refreshMessages pushes the store's current state into the list view.
func (a *App) refreshMessages() {
	a.messages.SetMessages(a.store.Messages(), a.streamingID)
}

// IsStreaming reports whether a reply is currently being revealed.
func (a *App) IsStreaming() bool {
	return a.engine.Streaming()
}

// Messages returns the conversation in order.
func (a *App) Messages() []chat.Message {
	return a.store.Messages()
}

// applyLayout recomputes the layout for the current width, geometry, and
// sidebar state, and propagates sizes to the components.
func (a *App) applyLayout() {
	a.layout = CalculateLayout(a.width, a.geom, !a.sidebarVisible)
	a.propagateSizes()
	a.layoutDirty = false
}

// propagateSizes updates component sizes from the current layout.
func (a *App) propagateSizes() {
	a.messages.SetSize(a.layout.Messages.Dx(), a.layout.Messages.Dy())
	a.composer.SetSize(a.layout.Input.Dx(), a.layout.Input.Dy())
	a.status.SetSize(a.layout.Status.Dx(), a.layout.Status.Dy())
	a.status.SetCompact(a.layout.IsCompact())
	if a.layout.Sidebar.Dx() > 0 {
		a.sidebar.SetSize(a.layout.Sidebar.Dx(), a.layout.Sidebar.Dy())
	}
}

// View renders the current view. In Bubbletea v2, this returns tea.View
// with display options like AltScreen and MouseMode.
func (a *App) View() tea.View {
	var view tea.View
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.ReportFocus = true

	if a.quitting {
		// Exit alt screen for proper terminal restoration.
		view.AltScreen = false
		view.MouseMode = 0
		view.ReportFocus = false
		view.Content = lipgloss.NewLayer("")
		return view
	}

	if a.layoutDirty {
		a.applyLayout()
	}

	height := a.geom.VisibleOffset + a.geom.VisibleHeight
	canvas := uv.NewScreenBuffer(a.width, height)
	view.Cursor = a.Draw(canvas, canvas.Bounds())
	view.Content = lipgloss.NewLayer(canvas.Render())
	view.BackgroundColor = colorCrust

	return view
}

// Draw renders all components to the screen buffer.
func (a *App) Draw(scr uv.Screen, area uv.Rectangle) *tea.Cursor {
	a.header.Draw(scr, a.layout.Header)
	a.messages.Draw(scr, a.layout.Messages)
	a.composer.Draw(scr, a.layout.Input)
	a.status.Draw(scr, a.layout.Status)

	if a.layout.Sidebar.Dx() > 0 {
		a.sidebar.Draw(scr, a.layout.Sidebar)
	}

	return nil
}

// Message types for the update loop.

// replyMsg carries reply text delivered from the bus.
type replyMsg struct {
	Text string
}

// streamTickMsg fires one reveal step for the stream it was armed for.
type streamTickMsg struct {
	Handle stream.Handle
}

// focusSettledMsg fires once the post-focus settle delay has elapsed.
type focusSettledMsg struct{}
