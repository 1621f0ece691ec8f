package knowledge

// ScientificDomain covers recent quantum physics literature.
func ScientificDomain(maxItems int) Domain {
	return Domain{
		Name:     "scientific",
		Query:    "cat:quant-ph",
		Header:   "Based on recent quantum physics research:",
		Empty:    "No relevant research papers found.",
		MaxItems: maxItems,
	}
}

// FinancialDomain covers recent finance and market news.
func FinancialDomain(maxItems int) Domain {
	return Domain{
		Name:     "financial",
		Query:    "finance OR economy OR stock market",
		Header:   "Based on recent financial news:",
		Empty:    "No relevant financial articles found.",
		MaxItems: maxItems,
	}
}
