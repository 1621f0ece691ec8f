package knowledge

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"inkwell/internal/cache"
	"inkwell/internal/middleware"
)

// Domain describes what an Engine fetches and how it talks about it.
type Domain struct {
	// Name scopes the engine's cache keys ("scientific", "financial").
	Name string
	// Query is the standing source query used on refresh, not the
	// caller's retrieval query ("cat:quant-ph", "finance OR economy").
	Query string
	// Header opens a formatted context block.
	Header string
	// Empty is returned as content when the knowledge base has no match.
	Empty string
	// MaxItems caps how many items one refresh fetches.
	MaxItems int
}

// Engine is a domain knowledge base: a source-backed item store with
// embeddings, persisted through the shared cache, queried by cosine
// similarity. One Engine instance per domain, shared by reference.
type Engine struct {
	domain    Domain
	source    Source
	embedder  Embedder
	cache     *cache.Cache
	freshness time.Duration
	topK      int
	logger    *QueryLogger

	// refreshMu serializes whole refresh cycles per domain so concurrent
	// stale reads do not trigger redundant source fetches.
	refreshMu sync.Mutex

	mu         sync.RWMutex
	items      map[string]Item
	embeddings map[string][]float32
}

type EngineOption func(*Engine)

func WithFreshness(d time.Duration) EngineOption {
	return func(e *Engine) { e.freshness = d }
}

func WithTopK(k int) EngineOption {
	return func(e *Engine) { e.topK = k }
}

func WithQueryLogger(l *QueryLogger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

func NewEngine(domain Domain, src Source, emb Embedder, c *cache.Cache, opts ...EngineOption) *Engine {
	e := &Engine{
		domain:     domain,
		source:     src,
		embedder:   emb,
		cache:      c,
		freshness:  24 * time.Hour,
		topK:       3,
		items:      map[string]Item{},
		embeddings: map[string][]float32{},
	}
	for _, opt := range opts {
		opt(e)
	}

	// Warm start from whatever a previous run left behind. A cold or
	// unreadable cache is not an error; the first retrieval refreshes.
	if _, err := c.Load(domain.Name+"_items", &e.items); err != nil {
		slog.Warn("ignoring unreadable item cache", "domain", domain.Name, "error", err)
		e.items = map[string]Item{}
	}
	if _, err := c.Load(domain.Name+"_embeddings", &e.embeddings); err != nil {
		slog.Warn("ignoring unreadable embedding cache", "domain", domain.Name, "error", err)
		e.embeddings = map[string][]float32{}
	}

	return e
}

func (e *Engine) Domain() string { return e.domain.Name }

// Context retrieves the most relevant cached items for query and formats
// them for prompt use. It never fails outward: any internal error is
// logged and collapses to the degraded context so generation can continue.
func (e *Engine) Context(ctx context.Context, query string) Context {
	start := time.Now()

	e.refreshIfStale(ctx)

	queryVec, err := e.embedder.Embed(ctx, query)
	if err != nil || len(queryVec) == 0 {
		slog.ErrorContext(ctx, "query embedding failed, degrading context",
			"domain", e.domain.Name, "error", err)
		e.logQuery(ctx, query, 0, true, start)
		return Degraded()
	}

	ranked := e.rank(queryVec)
	result := e.format(ranked)
	e.logQuery(ctx, query, len(ranked), false, start)
	return result
}

// Refresh replaces the knowledge base with up to MaxItems fresh items from
// the source. The swap is all-or-nothing: a fetch or embedding failure
// leaves the previous items and embeddings untouched.
func (e *Engine) Refresh(ctx context.Context) error {
	e.refreshMu.Lock()
	defer e.refreshMu.Unlock()

	fetched, err := e.source.Search(ctx, e.domain.Query, e.domain.MaxItems)
	if err != nil {
		return fmt.Errorf("fetching %s items: %w", e.domain.Name, err)
	}

	items := make(map[string]Item, len(fetched))
	embeddings := make(map[string][]float32, len(fetched))
	for _, item := range fetched {
		vec, err := e.embedder.Embed(ctx, item.Title+" "+item.Summary)
		if err != nil {
			return fmt.Errorf("embedding %q: %w", item.URL, err)
		}
		items[item.URL] = item
		embeddings[item.URL] = vec
	}

	e.mu.Lock()
	e.items = items
	e.embeddings = embeddings
	e.mu.Unlock()

	if err := e.cache.Save(e.domain.Name+"_items", items); err != nil {
		return fmt.Errorf("persisting %s items: %w", e.domain.Name, err)
	}
	if err := e.cache.Save(e.domain.Name+"_embeddings", embeddings); err != nil {
		return fmt.Errorf("persisting %s embeddings: %w", e.domain.Name, err)
	}

	slog.InfoContext(ctx, "knowledge base refreshed",
		"domain", e.domain.Name, "items", len(items))
	return nil
}

// refreshIfStale runs a synchronous refresh when the last_update stamp is
// absent or past the freshness window. The stamp is renewed even when the
// refresh fails, so a dead source is retried once per window rather than
// on every request.
func (e *Engine) refreshIfStale(ctx context.Context) {
	var stamp string
	ok, _ := e.cache.Load(e.domain.Name+"_last_update", &stamp)
	if ok {
		if last, err := time.Parse(time.RFC3339, stamp); err == nil && time.Since(last) < e.freshness {
			return
		}
	}

	if err := e.Refresh(ctx); err != nil {
		slog.ErrorContext(ctx, "knowledge base refresh failed, serving cached items",
			"domain", e.domain.Name, "error", err)
	}

	if err := e.cache.Save(e.domain.Name+"_last_update", time.Now().Format(time.RFC3339)); err != nil {
		slog.WarnContext(ctx, "failed to stamp last_update", "domain", e.domain.Name, "error", err)
	}
}

// rank scores every cached embedding against queryVec and returns the
// top-k matching items by descending cosine similarity. Embeddings whose
// URL has no item entry are skipped and do not count toward k.
func (e *Engine) rank(queryVec []float32) []Item {
	e.mu.RLock()
	defer e.mu.RUnlock()

	type scored struct {
		url string
		sim float64
	}
	scores := make([]scored, 0, len(e.embeddings))
	for url, vec := range e.embeddings {
		scores = append(scores, scored{url: url, sim: cosine(queryVec, vec)})
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].sim > scores[j].sim })

	top := make([]Item, 0, e.topK)
	for _, s := range scores {
		if len(top) == e.topK {
			break
		}
		item, ok := e.items[s.url]
		if !ok {
			// Orphaned embedding; ignore.
			continue
		}
		top = append(top, item)
	}
	return top
}

func (e *Engine) format(items []Item) Context {
	if len(items) == 0 {
		return Context{Content: e.domain.Empty, References: []Reference{}}
	}

	content := e.domain.Header + "\n\n"
	references := make([]Reference, 0, len(items))
	for _, item := range items {
		content += fmt.Sprintf("From '%s':\n%s\n\n", item.Title, item.Summary)
		references = append(references, Reference{
			Title:   item.Title,
			Authors: item.Authors,
			URL:     item.URL,
		})
	}

	return Context{
		Content:    content[:len(content)-2],
		References: references,
	}
}

func (e *Engine) logQuery(ctx context.Context, query string, results int, degraded bool, start time.Time) {
	if e.logger == nil {
		return
	}
	e.logger.Log(QueryLogEntry{
		Domain:        e.domain.Name,
		Query:         query,
		NumResults:    results,
		Degraded:      degraded,
		Duration:      time.Since(start),
		CorrelationID: middleware.GetCorrelationID(ctx),
	})
}

func cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
