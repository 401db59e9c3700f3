package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pevans/newspulse/headlines"
)

const helpText = "1-6 categories • j/k move • enter open • esc back • b bookmark • s summarize • tab switch • d theme • r refresh • q quit"

// View implements tea.Model interface
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("NewsPulse"))
	b.WriteString("\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderCategoryBar())
	b.WriteString("\n\n")

	switch {
	case m.OpenID != "":
		b.WriteString(m.renderDetail())
	case m.Tab == TabSettings:
		b.WriteString(m.renderSettings())
	default:
		b.WriteString(m.renderList())
	}

	if m.Status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.Status))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(helpText))
	return b.String()
}

func (m Model) renderTabs() string {
	tabs := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.Tab {
			tabs[i] = m.styles.ActiveTab.Render(name)
		} else {
			tabs[i] = m.styles.Tab.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) renderCategoryBar() string {
	chips := make([]string, len(headlines.Categories))
	for i, c := range headlines.Categories {
		label := fmt.Sprintf("%d %s", i+1, c)
		if slices.Contains(m.Selected, string(c)) {
			chips[i] = m.styles.ActiveChip.Render("[" + label + "]")
		} else {
			chips[i] = m.styles.Chip.Render(" " + label + " ")
		}
	}
	return strings.Join(chips, " ")
}

func (m Model) renderList() string {
	snap := m.session.Snapshot()

	if snap.Loading {
		return m.styles.Status.Render("Loading headlines...")
	}

	var b strings.Builder
	if snap.Error != nil {
		b.WriteString(m.styles.Error.Render(snap.Error.Display))
		b.WriteString("\n\n")
	}

	articles := m.Articles()
	if len(articles) == 0 {
		empty := "No articles found."
		if m.Tab == TabBookmarks {
			empty = "No bookmarked articles yet. Press b on an article to save it."
		}
		b.WriteString(m.styles.Status.Render(empty))
		return b.String()
	}

	for i, a := range articles {
		title := a.Title
		if m.IsBookmarked(a.ID) {
			title = "★ " + title
		}
		if i == m.Cursor {
			b.WriteString(m.styles.Selected.Render(title))
		} else {
			b.WriteString(m.styles.Item.Render(title))
		}
		b.WriteString("\n")
		b.WriteString(m.styles.Meta.Render(a.Source + " • " + a.PublishedRelative))
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderDetail() string {
	a, ok := m.OpenArticle()
	if !ok {
		return m.styles.Status.Render("Article is no longer in the feed.")
	}

	var b strings.Builder
	title := a.Title
	if m.IsBookmarked(a.ID) {
		title = "★ " + title
	}
	b.WriteString(m.styles.Title.Render(title))
	b.WriteString("\n")
	b.WriteString(m.styles.Status.Render(a.Source + " • " + a.PublishedRelative))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Body.Render(a.Content))
	b.WriteString("\n\n")

	switch {
	case m.Summarizing:
		b.WriteString(m.styles.Status.Render("Summarizing..."))
	case m.SummaryErr != "":
		b.WriteString(m.styles.Error.Render(m.SummaryErr))
	case a.Summary != "":
		b.WriteString(m.styles.Summary.Render(a.Summary))
	default:
		b.WriteString(m.styles.Status.Render("Press s to summarize"))
	}

	if a.SourceURL != "" {
		b.WriteString("\n\n")
		b.WriteString(m.styles.Status.Render(a.SourceURL))
	}

	box := m.styles.Box
	if m.Width > 4 {
		box = box.Width(m.Width - 4)
	}
	return box.Render(b.String())
}

func (m Model) renderSettings() string {
	var b strings.Builder

	theme := "off"
	if m.DarkMode {
		theme = "on"
	}
	b.WriteString(m.styles.Body.Render("Dark mode: " + theme + " (d to toggle)"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Body.Render("Categories:"))
	b.WriteString("\n")
	for i, c := range headlines.Categories {
		mark := "[ ]"
		if slices.Contains(m.Selected, string(c)) {
			mark = "[x]"
		}
		b.WriteString(m.styles.Item.Render(fmt.Sprintf("%s %d %s", mark, i+1, c)))
		b.WriteString("\n")
	}
	return b.String()
}
