package headlines

// Category is a display category of the news feed.
type Category string

// Known categories. All carries no provider filter.
const (
	All           Category = "All"
	Technology    Category = "Technology"
	Politics      Category = "Politics"
	Health        Category = "Health"
	Sports        Category = "Sports"
	Entertainment Category = "Entertainment"
)

// Categories lists the known categories in display order.
var Categories = []Category{All, Technology, Politics, Health, Sports, Entertainment}

// DefaultCategoryTokens maps display categories to the provider's category
// tokens.
var DefaultCategoryTokens = map[Category]string{
	Technology:    "technology",
	Politics:      "politics",
	Health:        "health",
	Sports:        "sports",
	Entertainment: "entertainment",
}

// ParseCategory returns the category named by s and whether it is known.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// copyTokens returns a private copy of a token table so later changes to the
// caller's map don't leak into a running client.
func copyTokens(tokens map[Category]string) map[Category]string {
	out := make(map[Category]string, len(tokens))
	for k, v := range tokens {
		out[k] = v
	}
	return out
}
