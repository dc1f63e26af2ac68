// Package tui is the bubbletea application for the AstroMind workspace.
// The update loop is the single writer of the workspace engine: stream
// events and resolved fetches all pass through it, so the engine's
// staleness checks always see the freshest selection.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/sashaai2006/AstroMind/internal/workspace"
	"github.com/sashaai2006/AstroMind/pkg/backend"
	pkgtui "github.com/sashaai2006/AstroMind/pkg/tui"
)

// Cross-cutting view capabilities. The app broadcasts snapshots to
// whichever views implement them.

// FilesSetter receives listing snapshots.
type FilesSetter interface {
	SetFiles([]backend.FileEntry)
}

// StatusSetter receives {status, steps} snapshots.
type StatusSetter interface {
	SetStatus(status string, steps []backend.PipelineStep)
}

// LogSetter receives the retained event feed.
type LogSetter interface {
	SetLog([]backend.LogEvent)
}

// TranscriptSetter receives the fix transcript after it grows.
type TranscriptSetter interface {
	SetTranscript([]backend.ChatMessage)
}

// ContentSetter receives freshly applied file content.
type ContentSetter interface {
	SetContent(path, content string)
	ClearContent()
}

// BufferProvider exposes the editor buffer for save and fix.
type BufferProvider interface {
	Buffer() (path, content string)
	MarkSaved()
	TogglePreview()
	// Editing reports whether keystrokes currently land in the text
	// buffer, so global single-rune bindings can defer to it.
	Editing() bool
}

// App is the workspace application model.
type App struct {
	engine     *workspace.Engine
	store      *workspace.Store
	dispatcher *workspace.Dispatcher
	client     *backend.Client
	events     <-chan backend.LogEvent

	tabs   *TabBar
	views  []View
	finder *pkgtui.Finder
	keys   pkgtui.Keys

	transcript []backend.ChatMessage
	verdict    *backend.ReviewVerdict
	verdictErr error
	showHelp   bool
	statusLine string
	fixing     bool
	fixID      string
	reviewing  bool

	width  int
	height int
}

// NewApp assembles the application.
func NewApp(client *backend.Client, store *workspace.Store, dispatcher *workspace.Dispatcher, events <-chan backend.LogEvent, views ...View) *App {
	names := make([]string, len(views))
	for i, v := range views {
		names[i] = v.Name()
	}

	return &App{
		engine:     workspace.NewEngine(),
		store:      store,
		dispatcher: dispatcher,
		client:     client,
		events:     events,
		tabs:       NewTabBar(names),
		views:      views,
		finder:     pkgtui.NewFinder(),
		keys:       pkgtui.NewKeys(),
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	cmds := a.runEffects(a.engine.RefreshAll())
	cmds = append(cmds, a.waitForEvent())
	if active := a.tabs.Active(); active < len(a.views) {
		cmds = append(cmds, a.views[active].Focus())
	}
	return tea.Batch(cmds...)
}

func (a *App) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-a.events
		if !ok {
			return StreamClosedMsg{}
		}
		return StreamEventMsg{Event: evt}
	}
}

func (a *App) runEffects(effects []workspace.Effect) []tea.Cmd {
	var cmds []tea.Cmd
	for _, eff := range effects {
		if cmd := a.runEffect(eff); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return cmds
}

func (a *App) runEffect(eff workspace.Effect) tea.Cmd {
	switch eff := eff.(type) {
	case workspace.FetchListing:
		return func() tea.Msg {
			files, err := a.store.FetchListing(context.Background())
			return ListingLoadedMsg{Files: files, Err: err}
		}
	case workspace.FetchStatus:
		return func() tea.Msg {
			status, err := a.client.Status(context.Background())
			return StatusLoadedMsg{Status: status, Err: err}
		}
	case workspace.FetchContent:
		path, version := eff.Path, eff.Version
		return func() tea.Msg {
			content, err := a.store.FetchContent(context.Background(), path, version)
			return ContentLoadedMsg{Path: path, Version: version, Content: content, Err: err}
		}
	}
	return nil
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.tabs.SetWidth(msg.Width)
		a.finder.SetWidth(msg.Width / 2)
		for i := range a.views {
			var cmd tea.Cmd
			a.views[i], cmd = a.views[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return a, tea.Batch(cmds...)

	case StreamEventMsg:
		return a, tea.Batch(a.handleStreamEvent(msg.Event)...)

	case StreamClosedMsg:
		a.statusLine = "event stream disconnected"
		return a, nil

	case pkgtui.TreeSelectMsg:
		return a, tea.Batch(a.selectFile(msg.Path)...)

	case pkgtui.FinderSelectMsg:
		return a, tea.Batch(a.selectFile(msg.Path)...)

	case ListingLoadedMsg:
		if msg.Err != nil {
			a.statusLine = "listing refresh failed: " + msg.Err.Error()
			return a, nil
		}
		a.engine.ApplyListing(msg.Files)
		paths := make([]string, 0, len(msg.Files))
		for _, f := range msg.Files {
			if !f.IsDir() {
				paths = append(paths, f.Path)
			}
		}
		a.finder.SetPaths(paths)
		for _, v := range a.views {
			if setter, ok := v.(FilesSetter); ok {
				setter.SetFiles(a.engine.Files())
			}
		}
		return a, nil

	case StatusLoadedMsg:
		if msg.Err != nil {
			a.statusLine = "status refresh failed: " + msg.Err.Error()
			return a, nil
		}
		a.engine.ApplyStatus(msg.Status)
		for _, v := range a.views {
			if setter, ok := v.(StatusSetter); ok {
				setter.SetStatus(a.engine.Status(), a.engine.Steps())
			}
		}
		return a, nil

	case ContentLoadedMsg:
		if msg.Err != nil {
			a.statusLine = "content fetch failed: " + msg.Err.Error()
			return a, nil
		}
		if !a.engine.ApplyContent(msg.Path, msg.Version, msg.Content) {
			// Stale result for a superseded selection; drop it.
			return a, nil
		}
		for _, v := range a.views {
			if setter, ok := v.(ContentSetter); ok {
				setter.SetContent(msg.Path, msg.Content)
			}
		}
		return a, nil

	case SaveDoneMsg:
		if msg.Err != nil {
			a.statusLine = "save failed: " + msg.Err.Error()
		} else {
			a.statusLine = "saved " + msg.Path
			for _, v := range a.views {
				if buf, ok := v.(BufferProvider); ok {
					buf.MarkSaved()
				}
			}
		}
		// Consistency pass regardless of outcome: a save may have
		// created files via side effects.
		return a, a.runEffect(workspace.FetchListing{})

	case FixDoneMsg:
		if msg.ID != a.fixID {
			// Completion of a superseded request; drop it.
			return a, nil
		}
		a.fixing = false
		if msg.Err != nil {
			a.statusLine = "fix request failed: " + msg.Err.Error()
			return a, nil
		}
		a.transcript = append(a.transcript,
			backend.ChatMessage{Role: "user", Content: msg.Request},
			backend.ChatMessage{Role: "assistant", Content: msg.Response},
		)
		for _, v := range a.views {
			if setter, ok := v.(TranscriptSetter); ok {
				setter.SetTranscript(a.transcript)
			}
		}
		a.statusLine = "fix applied, refreshing"
		return a, a.runEffect(workspace.FetchListing{})

	case ReviewDoneMsg:
		a.reviewing = false
		if msg.Err != nil {
			a.verdictErr = msg.Err
			a.verdict = nil
		} else {
			verdict := msg.Verdict
			a.verdict = &verdict
			a.verdictErr = nil
		}
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a.forwardToActive(msg)
}

func (a *App) handleStreamEvent(evt backend.LogEvent) []tea.Cmd {
	if evt.ArtifactPath != "" {
		// The backend rewrote this file; cached content is void.
		a.store.Invalidate(evt.ArtifactPath)
	}

	effects := a.engine.HandleEvent(evt)
	cmds := a.runEffects(effects)
	for _, v := range a.views {
		if setter, ok := v.(LogSetter); ok {
			setter.SetLog(a.engine.Log())
		}
	}
	cmds = append(cmds, a.waitForEvent())
	return cmds
}

func (a *App) selectFile(path string) []tea.Cmd {
	effects := a.engine.SelectFile(path)
	if path == "" {
		for _, v := range a.views {
			if setter, ok := v.(ContentSetter); ok {
				setter.ClearContent()
			}
		}
	}
	return a.runEffects(effects)
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, a.keys.Quit) {
		return a, tea.Quit
	}

	if a.showHelp {
		a.showHelp = false
		return a, nil
	}
	if a.verdict != nil || a.verdictErr != nil {
		if key.Matches(msg, a.keys.Back) || key.Matches(msg, a.keys.Select) {
			a.verdict = nil
			a.verdictErr = nil
		}
		return a, nil
	}
	if a.finder.Visible() {
		return a, a.finder.Update(msg)
	}

	switch {
	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
		return a, nil
	case key.Matches(msg, a.keys.Finder):
		return a, a.finder.Show()
	case key.Matches(msg, a.keys.Save):
		return a, a.saveCmd()
	case key.Matches(msg, a.keys.Fix):
		return a, a.fixCmd()
	case key.Matches(msg, a.keys.Review):
		return a, a.reviewCmd()
	case key.Matches(msg, a.keys.Preview):
		for _, v := range a.views {
			if buf, ok := v.(BufferProvider); ok {
				buf.TogglePreview()
			}
		}
		return a, nil
	case key.Matches(msg, a.keys.VersionPrev):
		if a.editing() {
			break
		}
		return a, tea.Batch(a.runEffects(a.engine.ChangeVersion(a.engine.Version() - 1))...)
	case key.Matches(msg, a.keys.VersionNext):
		if a.editing() {
			break
		}
		return a, tea.Batch(a.runEffects(a.engine.ChangeVersion(a.engine.Version() + 1))...)
	case key.Matches(msg, a.keys.TabPrev):
		return a, a.switchTab((a.tabs.Active() - 1 + len(a.views)) % len(a.views))
	case key.Matches(msg, a.keys.TabNext):
		return a, a.switchTab((a.tabs.Active() + 1) % len(a.views))
	case key.Matches(msg, a.keys.Back):
		if a.editing() {
			break
		}
		// Deselect the open file; prior content becomes meaningless.
		return a, tea.Batch(a.selectFile("")...)
	}

	return a.forwardToActive(msg)
}

func (a *App) switchTab(index int) tea.Cmd {
	if index < 0 || index >= len(a.views) || index == a.tabs.Active() {
		return nil
	}
	a.views[a.tabs.Active()].Blur()
	a.tabs.SetActive(index)
	a.engine.SwitchTab(workspace.Tab(index))
	return a.views[index].Focus()
}

func (a *App) forwardToActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	if len(a.views) == 0 {
		return a, nil
	}
	active := a.tabs.Active()
	var cmd tea.Cmd
	a.views[active], cmd = a.views[active].Update(msg)
	return a, cmd
}

func (a *App) saveCmd() tea.Cmd {
	path, content := a.buffer()
	if path == "" {
		a.statusLine = "nothing open to save"
		return nil
	}
	return func() tea.Msg {
		err := a.dispatcher.Save(context.Background(), path, content)
		return SaveDoneMsg{Path: path, Err: err}
	}
}

func (a *App) fixCmd() tea.Cmd {
	if a.fixing {
		a.statusLine = "a fix request is already running"
		return nil
	}
	path, content := a.buffer()
	if path == "" || content == "" {
		a.statusLine = workspace.ErrNothingToFix.Error()
		return nil
	}

	a.fixing = true
	a.statusLine = "requesting fix for " + path
	history := append([]backend.ChatMessage(nil), a.transcript...)
	// Record the exact message the dispatcher sends, so replayed history
	// matches what the backend saw.
	request := workspace.FixRequest(path, content)
	id := uuid.NewString()
	a.fixID = id
	return func() tea.Msg {
		response, err := a.dispatcher.Fix(context.Background(), path, content, history)
		return FixDoneMsg{ID: id, Request: request, Response: response, Err: err}
	}
}

func (a *App) reviewCmd() tea.Cmd {
	if a.reviewing {
		a.statusLine = "a review is already running"
		return nil
	}
	var paths []string
	for _, f := range a.engine.Files() {
		if !f.IsDir() {
			paths = append(paths, f.Path)
		}
	}
	if len(paths) == 0 {
		a.statusLine = "no files to review"
		return nil
	}

	a.reviewing = true
	a.statusLine = "running deep review"
	return func() tea.Msg {
		verdict, err := a.dispatcher.DeepReview(context.Background(), paths)
		return ReviewDoneMsg{Verdict: verdict, Err: err}
	}
}

func (a *App) editing() bool {
	for _, v := range a.views {
		if buf, ok := v.(BufferProvider); ok {
			return buf.Editing()
		}
	}
	return false
}

func (a *App) buffer() (string, string) {
	for _, v := range a.views {
		if buf, ok := v.(BufferProvider); ok {
			return buf.Buffer()
		}
	}
	return "", ""
}

// View implements tea.Model.
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	if a.showHelp {
		return a.renderHelp()
	}
	if a.verdict != nil || a.verdictErr != nil {
		return a.renderVerdict()
	}

	var b strings.Builder
	b.WriteString(a.tabs.View())
	b.WriteString("\n")

	contentHeight := a.height - 4
	var content string
	if active := a.tabs.Active(); active < len(a.views) {
		content = a.views[active].View()
	}
	lines := strings.Split(content, "\n")
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}
	if len(lines) > contentHeight {
		lines = lines[:contentHeight]
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	b.WriteString(a.renderFooter())

	if a.finder.Visible() {
		return overlay(b.String(), a.finder.View(), a.width, a.height)
	}
	return b.String()
}

func (a *App) renderFooter() string {
	status := fmt.Sprintf("%s %s  v%d", pkgtui.StatusIcon(a.engine.Status()), a.engine.Status(), a.engine.Version())
	if selected := a.engine.Selected(); selected != "" {
		status += "  " + selected
	}
	if a.statusLine != "" {
		status += "  |  " + a.statusLine
	}

	help := "ctrl+←/→ tabs  ctrl+p find  F1 help  ctrl+c quit"
	if active := a.tabs.Active(); active < len(a.views) {
		if viewHelp := a.views[active].ShortHelp(); viewHelp != "" {
			help = viewHelp + "  " + help
		}
	}

	return pkgtui.FooterStyle.Width(a.width).Render(status + "\n" + help)
}

func (a *App) renderHelp() string {
	lines := []string{
		pkgtui.TitleStyle.Render("AstroMind workspace"),
		"",
		"enter        open file under cursor",
		"esc          deselect file",
		"tab          cycle tree/editor panes",
		"ctrl+s       save buffer",
		"ctrl+f       request AI fix for open file",
		"ctrl+r       deep review of all files",
		"ctrl+t       toggle fix transcript / log panel",
		"ctrl+g       toggle markdown preview",
		"[ / ]        older / newer version",
		"ctrl+p       fuzzy file finder",
		"ctrl+←/→     switch tabs",
		"",
		pkgtui.LabelStyle.Render("project  " + a.client.ProjectID()),
		pkgtui.LabelStyle.Render("archive  " + a.client.DownloadURL(a.engine.Version())),
		"",
		pkgtui.LabelStyle.Render("press any key to close"),
	}
	return pkgtui.OverlayStyle.Render(strings.Join(lines, "\n"))
}

func (a *App) renderVerdict() string {
	var lines []string
	if a.verdictErr != nil {
		lines = append(lines,
			pkgtui.ErrorStyle.Render("Deep review failed"),
			"",
			a.verdictErr.Error(),
		)
	} else {
		header := pkgtui.StatusDone.Render("Approved")
		if !a.verdict.Approved {
			header = pkgtui.ErrorStyle.Render("Changes requested")
		}
		lines = append(lines, pkgtui.TitleStyle.Render("Deep review"), "", header, "")
		for _, comment := range a.verdict.Comments {
			lines = append(lines, "• "+comment)
		}
		if len(a.verdict.Comments) == 0 {
			lines = append(lines, pkgtui.LabelStyle.Render("No comments"))
		}
	}
	lines = append(lines, "", pkgtui.LabelStyle.Render("esc/enter to close"))
	return pkgtui.OverlayStyle.Render(strings.Join(lines, "\n"))
}

// overlay centers top on base, line by line.
func overlay(base, top string, width, height int) string {
	baseLines := strings.Split(base, "\n")
	topLines := strings.Split(top, "\n")

	startRow := (height - len(topLines)) / 4
	if startRow < 0 {
		startRow = 0
	}
	for i, line := range topLines {
		row := startRow + i
		if row >= len(baseLines) {
			break
		}
		baseLines[row] = line
	}
	return strings.Join(baseLines, "\n")
}

// Run starts the workspace TUI on the given tab.
func Run(client *backend.Client, store *workspace.Store, dispatcher *workspace.Dispatcher, events <-chan backend.LogEvent, startTab int, views ...View) error {
	app := NewApp(client, store, dispatcher, events, views...)
	if startTab > 0 && startTab < len(views) {
		app.tabs.SetActive(startTab)
		app.engine.SwitchTab(workspace.Tab(startTab))
	}
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
