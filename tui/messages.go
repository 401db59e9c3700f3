package tui

import (
	"github.com/pevans/newspulse/feed"
	"github.com/pevans/newspulse/headlines"
)

// FetchedMsg carries the outcome of a feed request.
type FetchedMsg struct {
	Request  feed.Request
	Articles []headlines.Article
	Err      error
}

// SummaryMsg carries the outcome of an article summary.
type SummaryMsg struct {
	ID      string
	Summary string
	Err     error
}
