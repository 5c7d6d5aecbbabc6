package dto

// SummaryArgs filters the read-path aggregation. Dates are YYYY-MM-DD.
type SummaryArgs struct {
	Pending  *bool
	Category *string
	ItemID   *string
	DateFrom *string
	DateTo   *string
	GroupBy  string // "category", "merchant", "day"
	Limit    int
}

type SummaryTotalResult struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Total    string `json:"total"` // decimal string, canonical sign
	Currency string `json:"currency,omitempty"`
}

type SummaryBreakdownItem struct {
	Key   string `json:"key"`
	Total string `json:"total"` // decimal string
	Count int    `json:"count"`
}

type SummaryBreakdownResult struct {
	GroupBy  string                 `json:"groupBy"`
	From     string                 `json:"from"`
	To       string                 `json:"to"`
	Currency string                 `json:"currency,omitempty"`
	Items    []SummaryBreakdownItem `json:"items"`
}
