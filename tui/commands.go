package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pevans/newspulse/feed"
	"github.com/pevans/newspulse/headlines"
	"github.com/pevans/newspulse/summarizer"
)

// fetchFeed creates a command that runs a request started with Begin
func fetchFeed(ctx context.Context, session *feed.Session, req feed.Request) tea.Cmd {
	return func() tea.Msg {
		articles, err := session.Fetch(ctx, req)
		return FetchedMsg{
			Request:  req,
			Articles: articles,
			Err:      err,
		}
	}
}

// summarizeArticle creates a command that summarizes an article
func summarizeArticle(ctx context.Context, summ summarizer.Summarizer, article headlines.Article) tea.Cmd {
	return func() tea.Msg {
		summary, err := summ.SummarizeArticle(ctx, article)
		return SummaryMsg{
			ID:      article.ID,
			Summary: summary,
			Err:     err,
		}
	}
}
