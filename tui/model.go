// Package tui is the terminal news reader.
package tui

import (
	"context"
	"log/slog"
	"slices"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pevans/newspulse/bookmarks"
	"github.com/pevans/newspulse/config"
	"github.com/pevans/newspulse/feed"
	"github.com/pevans/newspulse/headlines"
	"github.com/pevans/newspulse/summarizer"
)

// Tab is a top-level screen of the reader.
type Tab int

const (
	TabHome Tab = iota
	TabBookmarks
	TabSettings
)

var tabNames = []string{"Home", "Bookmarks", "Settings"}

func (t Tab) String() string {
	return tabNames[t]
}

// Options wires the reader to its services. Preferences may be nil, in which
// case settings last only for the session.
type Options struct {
	Session     *feed.Session
	Summarizer  summarizer.Summarizer
	Bookmarks   *bookmarks.Store
	Preferences *config.PreferenceStore
	Logger      *slog.Logger
}

// Model represents the reader state
type Model struct {
	ctx     context.Context
	session *feed.Session
	summ    summarizer.Summarizer
	store   *bookmarks.Store
	prefs   *config.PreferenceStore
	logger  *slog.Logger
	styles  Styles

	Selected   []string
	DarkMode   bool
	Tab        Tab
	Cursor     int
	OpenID     string
	Bookmarked []string

	Summarizing bool
	SummaryErr  string
	Status      string

	Width  int
	Height int
}

// NewModel creates a reader with the stored preferences and bookmarks
func NewModel(ctx context.Context, opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	m := Model{
		ctx:     ctx,
		session: opts.Session,
		summ:    opts.Summarizer,
		store:   opts.Bookmarks,
		prefs:   opts.Preferences,
		logger:  logger,
	}

	prefs := config.DefaultPreferences()
	if m.prefs != nil {
		stored, err := m.prefs.GetPreferences()
		if err != nil {
			return Model{}, err
		}
		prefs = stored
	}
	m.Selected = prefs.SelectedCategories
	m.DarkMode = prefs.DarkMode
	m.styles = NewStyles(m.DarkMode)

	ids, err := m.store.List()
	if err != nil {
		return Model{}, err
	}
	m.Bookmarked = ids

	return m, nil
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// refresh starts a request for the current selection. The request becomes
// current before the command runs, so results of earlier requests are
// discarded when they arrive.
func (m Model) refresh() tea.Cmd {
	req := m.session.Begin(feed.RequestCategory(m.Selected))
	return fetchFeed(m.ctx, m.session, req)
}

// Articles returns the list shown on the current tab.
func (m Model) Articles() []headlines.Article {
	snap := m.session.Snapshot()
	if m.Tab == TabBookmarks {
		return feed.FilterBookmarked(snap.Articles, m.Bookmarked)
	}
	return feed.FilterVisible(snap.Articles, m.Selected, snap.Category)
}

// OpenArticle returns the article shown in the detail view, if any.
func (m Model) OpenArticle() (headlines.Article, bool) {
	if m.OpenID == "" {
		return headlines.Article{}, false
	}
	return m.session.Article(m.OpenID)
}

// IsBookmarked reports whether id is bookmarked.
func (m Model) IsBookmarked(id string) bool {
	return slices.Contains(m.Bookmarked, id)
}

// savePreferences persists the selection and theme when a store is wired
func (m Model) savePreferences() error {
	if m.prefs == nil {
		return nil
	}
	return m.prefs.UpdatePreferences(&config.Preferences{
		SelectedCategories: m.Selected,
		DarkMode:           m.DarkMode,
	})
}

// Run starts the reader and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	m, err := NewModel(ctx, opts)
	if err != nil {
		return err
	}

	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
