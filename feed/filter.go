package feed

import (
	"slices"
	"strings"

	"github.com/pevans/newspulse/headlines"
)

// RequestCategory returns the category to fetch for a selection: the single
// selected category, or All when zero or several are selected.
func RequestCategory(selected []string) string {
	var picked []string
	for _, c := range selected {
		if c != string(headlines.All) && !slices.Contains(picked, c) {
			picked = append(picked, c)
		}
	}
	if len(picked) == 1 {
		return picked[0]
	}
	return string(headlines.All)
}

// FilterVisible returns the articles shown for a selection, given the
// category the articles were fetched for. A feed fetched for one category is
// already filtered by the provider and is shown whole. A feed fetched for All
// is shown whole when All (or nothing) is selected; otherwise an article is
// shown when its title mentions any selected category, ignoring case.
func FilterVisible(articles []headlines.Article, selected []string, fetched string) []headlines.Article {
	if fetched != string(headlines.All) ||
		len(selected) == 0 || slices.Contains(selected, string(headlines.All)) {
		return append([]headlines.Article{}, articles...)
	}

	needles := make([]string, len(selected))
	for i, c := range selected {
		needles[i] = strings.ToLower(c)
	}

	visible := []headlines.Article{}
	for _, a := range articles {
		title := strings.ToLower(a.Title)
		for _, n := range needles {
			if strings.Contains(title, n) {
				visible = append(visible, a)
				break
			}
		}
	}
	return visible
}

// FilterBookmarked returns the bookmarked articles in feed order.
func FilterBookmarked(articles []headlines.Article, ids []string) []headlines.Article {
	marked := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		marked[id] = struct{}{}
	}

	out := []headlines.Article{}
	for _, a := range articles {
		if _, ok := marked[a.ID]; ok {
			out = append(out, a)
		}
	}
	return out
}
