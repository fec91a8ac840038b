package domain

import "github.com/shopspring/decimal"

func init() {
	// Цены в JSON-документах и API хранятся числами, а не строками.
	decimal.MarshalJSONWithoutQuotes = true
}
