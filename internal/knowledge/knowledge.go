package knowledge

import "context"

// Item is one unit of fetched knowledge: a paper or a news article.
// Items are keyed by URL everywhere; the URL doubles as the identifier
// linking an item to its embedding.
type Item struct {
	Title     string   `json:"title"`
	Summary   string   `json:"summary"`
	Authors   []string `json:"authors"`
	URL       string   `json:"url"`
	Published string   `json:"published"`
}

// Reference points a reader back at the item a piece of context came from.
type Reference struct {
	Title   string   `json:"title"`
	Authors []string `json:"authors"`
	URL     string   `json:"url"`
}

// Context is what an agent feeds into its prompt. Retrieval is best-effort:
// a Context is always produced, degraded if necessary, never an error.
type Context struct {
	Content    string      `json:"content"`
	References []Reference `json:"references"`
}

// DegradedContent marks a context produced after a retrieval failure.
// Generation proceeds on the model's general knowledge instead of aborting.
const DegradedContent = "Error retrieving context. Using general knowledge."

func Degraded() Context {
	return Context{Content: DegradedContent, References: []Reference{}}
}

type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Source fetches fresh items from a domain-specific backend (literature
// search, news API). Results come back newest-first.
type Source interface {
	Search(ctx context.Context, query string, max int) ([]Item, error)
}
