// Package ui provides the terminal user interface for browsing the gallery.
package ui

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/iconidentify/xgallery/cmd/xgallery-tui/internal/config"
	"github.com/iconidentify/xgallery/internal/domain"
)

// Snapshotter loads every view of the gallery at once.
type Snapshotter interface {
	Snapshot(ctx context.Context) ([]domain.UserSummary, map[string][]domain.TweetView)
	Source() string
}

// App is the main TUI application.
type App struct {
	app    *tview.Application
	cfg    *config.Config
	source Snapshotter
	ctx    context.Context
	cancel context.CancelFunc

	// UI components
	header    *tview.TextView
	footer    *tview.TextView
	statusBar *tview.TextView
	userList  *tview.List
	timeline  *tview.TextView

	// State
	dataMu    sync.RWMutex
	users     []domain.UserSummary
	timelines map[string][]domain.TweetView
	selected  string
}

// NewApp creates a new TUI application.
func NewApp(cfg *config.Config, source Snapshotter) *App {
	ctx, cancel := context.WithCancel(context.Background())

	a := &App{
		app:       tview.NewApplication(),
		cfg:       cfg,
		source:    source,
		ctx:       ctx,
		cancel:    cancel,
		timelines: make(map[string][]domain.TweetView),
	}

	a.setupUI()
	return a
}

// setupUI initializes all UI components.
func (a *App) setupUI() {
	a.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	a.header.SetBackgroundColor(tcell.ColorDarkBlue)
	a.header.SetText(fmt.Sprintf("\n[white::b]xgallery[white] | Source: [green]%s", tview.Escape(a.source.Source())))

	a.footer = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[yellow]Tab[white]:Switch pane [yellow]r[white]:Reload [yellow]q[white]:Quit")
	a.footer.SetBackgroundColor(tcell.ColorDarkBlue)

	a.statusBar = tview.NewTextView().
		SetDynamicColors(true)
	a.statusBar.SetBackgroundColor(tcell.ColorDarkGreen)

	a.userList = tview.NewList().
		ShowSecondaryText(true).
		SetHighlightFullLine(true)
	a.userList.SetBorder(true).SetTitle(" Users ")
	a.userList.SetChangedFunc(func(index int, _ string, _ string, _ rune) {
		a.showTimeline(index)
	})

	a.timeline = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWordWrap(true)
	a.timeline.SetBorder(true).SetTitle(" Timeline ")

	body := tview.NewFlex().
		AddItem(a.userList, 0, 1, true).
		AddItem(a.timeline, 0, 2, false)

	root := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(a.header, 3, 0, false).
		AddItem(body, 0, 1, true).
		AddItem(a.statusBar, 1, 0, false).
		AddItem(a.footer, 1, 0, false)

	a.app.SetInputCapture(a.handleGlobalKeys)
	a.app.SetRoot(root, true).SetFocus(a.userList)
}

// handleGlobalKeys handles global keyboard shortcuts.
func (a *App) handleGlobalKeys(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyRune:
		switch event.Rune() {
		case 'q', 'Q':
			a.Stop()
			return nil
		case 'r', 'R':
			go a.refresh()
			return nil
		}
	case tcell.KeyTab, tcell.KeyBacktab:
		a.switchPane()
		return nil
	}

	return event
}

// switchPane moves focus between the user list and the timeline.
func (a *App) switchPane() {
	if a.app.GetFocus() == a.userList {
		a.app.SetFocus(a.timeline)
		return
	}
	a.app.SetFocus(a.userList)
}

// updateStatusBar updates the status bar with current status.
func (a *App) updateStatusBar(msg string) {
	a.app.QueueUpdateDraw(func() {
		a.statusBar.SetText(fmt.Sprintf(" %s | Last refresh: %s", msg, time.Now().Format("15:04:05")))
	})
}

// Run starts the TUI application.
func (a *App) Run() error {
	if a.cfg.AutoRefresh > 0 {
		go a.startBackgroundRefresh()
	}
	go a.refresh()

	return a.app.Run()
}

// Stop stops the TUI application.
func (a *App) Stop() {
	a.cancel()
	a.app.Stop()
}

// startBackgroundRefresh reloads the document periodically.
func (a *App) startBackgroundRefresh() {
	ticker := time.NewTicker(a.cfg.AutoRefresh)
	defer ticker.Stop()

	for {
		select {
		case <-a.ctx.Done():
			return
		case <-ticker.C:
			a.refresh()
		}
	}
}

// refresh loads a fresh snapshot and redraws both panes.
func (a *App) refresh() {
	a.updateStatusBar("Loading...")

	ctx, cancel := context.WithTimeout(a.ctx, a.cfg.LoadTimeout)
	defer cancel()

	users, timelines := a.source.Snapshot(ctx)
	if a.ctx.Err() != nil {
		return
	}

	a.dataMu.Lock()
	a.users = users
	a.timelines = timelines
	a.dataMu.Unlock()

	a.app.QueueUpdateDraw(a.populateUsers)

	if len(users) == 0 {
		a.updateStatusBar("[yellow]No users found")
		return
	}
	a.updateStatusBar(fmt.Sprintf("[green]%d user(s) loaded", len(users)))
}

// populateUsers rebuilds the user list, keeping the previous selection when it still exists.
func (a *App) populateUsers() {
	a.dataMu.RLock()
	users := a.users
	selected := a.selected
	a.dataMu.RUnlock()

	a.userList.Clear()
	current := 0
	for i, u := range users {
		a.userList.AddItem(userLabel(u), userDetail(u), 0, nil)
		if u.ScreenName == selected {
			current = i
		}
	}

	if len(users) == 0 {
		a.showTimeline(-1)
		return
	}
	a.userList.SetCurrentItem(current)
	a.showTimeline(current)
}

// showTimeline renders the timeline of the user at index.
func (a *App) showTimeline(index int) {
	a.dataMu.Lock()
	if index < 0 || index >= len(a.users) {
		a.dataMu.Unlock()
		a.timeline.SetTitle(" Timeline ")
		a.timeline.SetText("")
		return
	}
	user := a.users[index]
	views := a.timelines[user.ScreenName]
	a.selected = user.ScreenName
	a.dataMu.Unlock()

	a.timeline.SetTitle(fmt.Sprintf(" @%s (%d) ", tview.Escape(user.ScreenName), len(views)))
	a.timeline.SetText(renderTimeline(views))
	a.timeline.ScrollToBeginning()
}
