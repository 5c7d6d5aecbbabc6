package services

import (
	"regexp"
	"strings"

	"github.com/pennyboard/pennyboard-backend/internal/dto"
)

// CategoryInput is the slice of a provider transaction the normalizer looks at.
type CategoryInput struct {
	MerchantName string
	Name         string
	Categories   []string
	Amount       float64
}

// categoryRule maps keyword substrings to one canonical label. Rules are
// evaluated in order and the first match wins, so specific keywords must
// come before broad ones ("uber eats" before "uber").
type categoryRule struct {
	keywords []string
	label    string
}

var categoryRules = []categoryRule{
	{keywords: []string{"uber eats", "doordash", "grubhub", "postmates", "seamless", "caviar"}, label: "Food"},
	{keywords: []string{"instacart", "whole foods", "trader joe", "safeway", "kroger", "aldi", "grocery"}, label: "Groceries"},
	{keywords: []string{"uber", "lyft", "taxi", "mta", "bart", "transit", "parking", "amtrak"}, label: "Transportation"},
	{keywords: []string{"shell", "chevron", "exxon", "mobil", "bp ", "gas station", "fuel"}, label: "Gas"},
	{keywords: []string{"netflix", "hulu", "spotify", "disney+", "hbo", "youtube premium", "apple.com/bill", "audible"}, label: "Subscriptions"},
	{keywords: []string{"starbucks", "dunkin", "peet", "coffee", "cafe"}, label: "Coffee"},
	{keywords: []string{"mcdonald", "chipotle", "restaurant", "pizza", "sushi", "taco", "burger", "grill", "diner"}, label: "Food"},
	{keywords: []string{"amazon", "amzn", "target", "walmart", "costco", "best buy", "ebay"}, label: "Shopping"},
	{keywords: []string{"cvs", "walgreens", "rite aid", "pharmacy", "dental", "clinic", "hospital"}, label: "Health"},
	{keywords: []string{"rent", "mortgage", "landlord"}, label: "Housing"},
	{keywords: []string{"pg&e", "con edison", "comcast", "xfinity", "verizon", "t-mobile", "at&t", "utility", "electric", "water bill"}, label: "Utilities"},
	{keywords: []string{"delta", "united", "american air", "southwest", "airbnb", "marriott", "hilton", "hotel", "expedia"}, label: "Travel"},
	{keywords: []string{"payroll", "direct dep", "deposit", "paycheck"}, label: "Income"},
	{keywords: []string{"transfer", "zelle", "venmo", "paypal", "cash app"}, label: "Transfers"},
	{keywords: []string{"interest", "dividend", "robinhood", "vanguard", "fidelity", "schwab"}, label: "Investments"},
	{keywords: []string{"gym", "fitness", "peloton", "yoga"}, label: "Fitness"},
}

// confSuffix matches a whitespace-preceded confirmation-code tail, e.g.
// "Conf#456" or "Confirmation XZ991".
var confSuffix = regexp.MustCompile(`(?i)\sconf.*$`)

// NormalizeCategory derives the single canonical category label for a
// transaction: ordered keyword overrides over the cleaned merchant text
// first, falling back to the provider's own taxonomy. Pure, no I/O.
func NormalizeCategory(in CategoryInput) string {
	text := in.MerchantName
	if text == "" {
		text = in.Name
	}
	text = confSuffix.ReplaceAllString(text, "")
	text = strings.TrimSpace(strings.ToLower(text))

	if text != "" {
		for _, rule := range categoryRules {
			for _, kw := range rule.keywords {
				if strings.Contains(text, kw) {
					return rule.label
				}
			}
		}
	}

	if len(in.Categories) > 0 {
		return strings.Join(in.Categories, " > ")
	}
	return "Uncategorized"
}

func categoryInputFor(pt dto.ProviderTransaction) CategoryInput {
	return CategoryInput{
		MerchantName: pt.MerchantName,
		Name:         pt.Name,
		Categories:   pt.Categories,
		Amount:       pt.Amount,
	}
}
