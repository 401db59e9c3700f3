package tui

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pevans/newspulse/config"
	"github.com/pevans/newspulse/headlines"
	"github.com/pevans/newspulse/summarizer"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		return m, nil
	case FetchedMsg:
		return m.handleFetched(msg)
	case SummaryMsg:
		return m.handleSummary(msg)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "1", "2", "3", "4", "5", "6":
		return m.toggleCategory(headlines.Categories[key[0]-'1'])
	case "j", "down":
		if m.OpenID == "" && m.Cursor < len(m.Articles())-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.OpenID == "" && m.Cursor > 0 {
			m.Cursor--
		}
	case "enter":
		if m.OpenID == "" && m.Tab != TabSettings {
			if articles := m.Articles(); m.Cursor < len(articles) {
				m.OpenID = articles[m.Cursor].ID
				m.SummaryErr = ""
			}
		}
	case "esc":
		m.OpenID = ""
		m.SummaryErr = ""
	case "b":
		return m.toggleBookmark()
	case "s":
		return m.summarize()
	case "tab":
		m.Tab = (m.Tab + 1) % Tab(len(tabNames))
		m.Cursor = 0
		m.OpenID = ""
	case "d":
		m.DarkMode = !m.DarkMode
		m.styles = NewStyles(m.DarkMode)
		m.Status = ""
		if err := m.savePreferences(); err != nil {
			m.logger.Error("failed to save preferences", "error", err)
			m.Status = "Failed to save settings"
		}
	case "r":
		m.Status = ""
		return m, m.refresh()
	}
	return m, nil
}

// toggleCategory applies a category bar selection and refetches
func (m Model) toggleCategory(category headlines.Category) (tea.Model, tea.Cmd) {
	m.Selected = config.ToggleCategory(m.Selected, string(category))
	m.Cursor = 0
	m.OpenID = ""
	m.Status = ""
	if err := m.savePreferences(); err != nil {
		m.logger.Error("failed to save preferences", "error", err)
		m.Status = "Failed to save settings"
	}
	return m, m.refresh()
}

// currentArticle returns the open article, or the one under the cursor
func (m Model) currentArticle() (headlines.Article, bool) {
	if a, ok := m.OpenArticle(); ok {
		return a, true
	}
	if m.Tab == TabSettings {
		return headlines.Article{}, false
	}
	articles := m.Articles()
	if m.Cursor < len(articles) {
		return articles[m.Cursor], true
	}
	return headlines.Article{}, false
}

// toggleBookmark bookmarks or unbookmarks the current article
func (m Model) toggleBookmark() (tea.Model, tea.Cmd) {
	article, ok := m.currentArticle()
	if !ok {
		return m, nil
	}

	if _, err := m.store.Toggle(article.ID); err != nil {
		m.logger.Error("failed to toggle bookmark", "id", article.ID, "error", err)
		m.Status = "Failed to update bookmarks"
		return m, nil
	}

	ids, err := m.store.List()
	if err != nil {
		m.logger.Error("failed to list bookmarks", "error", err)
		m.Status = "Failed to read bookmarks"
		return m, nil
	}
	m.Bookmarked = ids

	if n := len(m.Articles()); m.Cursor >= n && n > 0 {
		m.Cursor = n - 1
	}
	return m, nil
}

// summarize requests a summary of the open article
func (m Model) summarize() (tea.Model, tea.Cmd) {
	article, ok := m.OpenArticle()
	if !ok || m.Summarizing {
		return m, nil
	}

	m.Summarizing = true
	m.SummaryErr = ""
	return m, summarizeArticle(m.ctx, m.summ, article)
}

// handleFetched applies a fetch result unless a newer request replaced it
func (m Model) handleFetched(msg FetchedMsg) (tea.Model, tea.Cmd) {
	if !m.session.Complete(msg.Request, msg.Articles, msg.Err) {
		return m, nil
	}

	if msg.Err != nil {
		m.logger.Warn("failed to fetch headlines", "category", msg.Request.Category, "error", msg.Err)
	}

	if n := len(m.Articles()); m.Cursor >= n {
		m.Cursor = max(n-1, 0)
	}
	if _, ok := m.OpenArticle(); !ok {
		m.OpenID = ""
	}
	return m, nil
}

// handleSummary stores a finished summary on the article
func (m Model) handleSummary(msg SummaryMsg) (tea.Model, tea.Cmd) {
	m.Summarizing = false

	if msg.Err != nil {
		m.logger.Warn("failed to summarize article", "id", msg.ID, "error", msg.Err)
		if errors.Is(msg.Err, summarizer.ErrSummaryFailed) {
			m.SummaryErr = "Failed to generate summary. Try again."
		} else {
			m.SummaryErr = msg.Err.Error()
		}
		return m, nil
	}

	m.session.SetSummary(msg.ID, msg.Summary)
	return m, nil
}
