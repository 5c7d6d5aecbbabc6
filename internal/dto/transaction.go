package dto

type TransactionQuery struct {
	Pending  *bool
	Category *string
	ItemID   *string
	Merchant *string
	DateFrom *string
	DateTo   *string
	OrderBy  string
	Desc     bool
	Limit    int
}
