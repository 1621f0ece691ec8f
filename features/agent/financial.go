package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"inkwell/internal/adapter/market"
)

// Quoter is the market-data capability the financial agent consumes.
type Quoter interface {
	Quote(ctx context.Context, symbol string) (*market.Quote, error)
}

// FinancialAgent combines news retrieval with structured market data.
type FinancialAgent struct {
	engine  Retriever
	quotes  Quoter
	models  ModelSelector
	prompts map[string]string
}

func NewFinancialAgent(engine Retriever, quotes Quoter, models ModelSelector) *FinancialAgent {
	return &FinancialAgent{
		engine:  engine,
		quotes:  quotes,
		models:  models,
		prompts: financialPrompts,
	}
}

func (a *FinancialAgent) Type() string { return TypeFinancial }

func (a *FinancialAgent) Process(ctx context.Context, task Task) (*Result, error) {
	marketData, err := a.relevantMarketData(ctx, task.Topic)
	if err != nil {
		slog.ErrorContext(ctx, "market data fetch failed", "topic", task.Topic, "error", err)
		return nil, fmt.Errorf("financial agent: %w", err)
	}

	newsCtx := a.engine.Context(ctx, task.Topic)

	tpl := selectPrompt(a.prompts, task.Platform)
	prompt := fillPrompt(tpl, map[string]string{
		"topic":       task.Topic,
		"market_data": formatMarketData(marketData),
		"news":        newsCtx.Content,
		"audience":    task.Audience,
	})

	text, err := a.models.For(TypeFinancial).Generate(ctx, prompt)
	if err != nil {
		slog.ErrorContext(ctx, "financial generation failed", "topic", task.Topic, "error", err)
		return nil, fmt.Errorf("financial agent: %w", err)
	}

	return &Result{
		Content: Content{
			Text:       text,
			Topic:      task.Topic,
			Platform:   task.Platform,
			MarketData: marketData,
			Sources:    newsCtx.References,
		},
		ContextUsed: newsCtx,
		AgentType:   TypeFinancial,
	}, nil
}

// relevantMarketData picks the quote symbols a topic calls for: crypto and
// forex topics get their pairs, everything else gets the major indices.
func (a *FinancialAgent) relevantMarketData(ctx context.Context, topic string) (map[string]market.Quote, error) {
	symbols := symbolsFor(topic)

	data := make(map[string]market.Quote, len(symbols))
	for _, symbol := range symbols {
		q, err := a.quotes.Quote(ctx, symbol)
		if err != nil {
			return nil, fmt.Errorf("quote %s: %w", symbol, err)
		}
		data[symbol] = *q
	}
	return data, nil
}

func symbolsFor(topic string) []string {
	t := strings.ToLower(topic)
	switch {
	case strings.Contains(t, "crypto"), strings.Contains(t, "bitcoin"):
		return []string{"BTC-USD", "ETH-USD"}
	case strings.Contains(t, "forex"):
		return []string{"EURUSD=X", "GBPUSD=X"}
	default:
		return []string{"^GSPC", "^IXIC", "^DJI"}
	}
}

func formatMarketData(data map[string]market.Quote) string {
	if len(data) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(data))
	for _, q := range data {
		parts = append(parts, fmt.Sprintf("%s: price %.2f, change %+.2f, volume %d", q.Symbol, q.Price, q.Change, q.Volume))
	}
	return strings.Join(parts, "; ")
}
